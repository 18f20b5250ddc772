package templatefile_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/subratasarker952/waitumusic-sub016/internal/adapters/templatefile"
	"github.com/subratasarker952/waitumusic-sub016/internal/domain/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	Convey("Given a YAML template", t, func() {
		path := writeFile(t, "club.yaml", `
name: club
groups:
  - family: vocals
    slots:
      - slotId: v1
        label: Lead Vocal
        applicable: true
  - family: Keys
    slots:
      - {slotId: k1, label: Keys L, applicable: true}
      - {slotId: k2, label: Keys R, applicable: true}
      - {slotId: k3, label: Spare, applicable: false, notes: bring DI}
`)

		cfg, err := templatefile.Load(path)

		Convey("It decodes every group and slot", func() {
			So(err, ShouldBeNil)
			So(cfg.Name, ShouldEqual, "club")
			So(cfg.Groups, ShouldHaveLength, 2)
			So(cfg.Groups[1].Family, ShouldEqual, "Keys")
			So(cfg.Groups[1].Slots, ShouldResemble, []model.SlotConfig{
				{SlotID: "k1", Label: "Keys L", Applicable: true},
				{SlotID: "k2", Label: "Keys R", Applicable: true},
				{SlotID: "k3", Label: "Spare", Applicable: false, Notes: "bring DI"},
			})
		})
	})

	Convey("Given a JSON template", t, func() {
		path := writeFile(t, "club.json", `{"groups":[{"family":"bass","slots":[{"slotId":"b1","label":"Bass DI","applicable":true}]}]}`)

		cfg, err := templatefile.Load(path)

		Convey("It is read the same way", func() {
			So(err, ShouldBeNil)
			So(cfg.Groups[0].Slots[0].SlotID, ShouldEqual, "b1")
		})
	})

	Convey("Given a template with an unknown family", t, func() {
		path := writeFile(t, "bad.yaml", `
groups:
  - family: brass
    slots: [{slotId: t1, label: Trumpet, applicable: true}]
`)

		_, err := templatefile.Load(path)

		Convey("It returns a configuration error", func() {
			So(model.IsConfigurationError(err), ShouldBeTrue)
			So(errors.Is(err, model.ErrUnknownFamily), ShouldBeTrue)
		})
	})

	Convey("Given unreadable input", t, func() {
		Convey("A missing file fails to load", func() {
			_, err := templatefile.Load(filepath.Join(t.TempDir(), "nope.yaml"))
			So(errors.Is(err, templatefile.ErrLoadTemplate), ShouldBeTrue)
		})

		Convey("An empty path fails to load", func() {
			_, err := templatefile.Load("")
			So(errors.Is(err, templatefile.ErrLoadTemplate), ShouldBeTrue)
		})

		Convey("A template without groups fails to load", func() {
			_, err := templatefile.Load(writeFile(t, "empty.yaml", "name: empty\n"))
			So(errors.Is(err, templatefile.ErrLoadTemplate), ShouldBeTrue)
		})
	})
}
