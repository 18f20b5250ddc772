package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
	"gopkg.in/yaml.v3"

	"github.com/subratasarker952/waitumusic-sub016/internal/adapters/http/api"
	service "github.com/subratasarker952/waitumusic-sub016/internal/app"
	"github.com/subratasarker952/waitumusic-sub016/internal/domain/model"
	"github.com/subratasarker952/waitumusic-sub016/internal/domain/types"
	"github.com/subratasarker952/waitumusic-sub016/pkg/logger"
	"github.com/subratasarker952/waitumusic-sub016/pkg/metrics"
)

const bandRequest = `
bookingId: jazz-night
assignments:
  - personId: ana
    displayName: Ana
    primaryTalent: Lead Vocals
  - personId: kit
    displayName: Kit
    roleLabel: Drummer
  - personId: sam
    displayName: Sam
    roleLabel: Sound Engineer
`

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestRenderCommand(t *testing.T) {
	Convey("Given a request file", t, func() {
		path := writeTemp(t, "band.yaml", bandRequest)

		Convey("When rendering the input list", func() {
			out, err := runCLI(t, "", "render", "--file", path)

			Convey("Then the table lists performers and warnings", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "Input list for jazz-night (standard), 32-channel mixer")
				So(out, ShouldContainSubstring, "Kick In")
				So(out, ShouldContainSubstring, "Kit")
				So(out, ShouldContainSubstring, "Not used this event")
				So(out, ShouldContainSubstring, "[unfilled_slot]")
				So(out, ShouldContainSubstring, "[excluded_person] Sam")
			})
		})

		Convey("When rendering with a small capacity", func() {
			out, err := runCLI(t, "", "render", "--file", path, "--capacity", "4")

			Convey("Then overflow is shown", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "Over capacity")
				So(out, ShouldContainSubstring, "[over_capacity]")
			})
		})

		Convey("When rendering as JSON", func() {
			out, err := runCLI(t, "", "render", "--file", path, "--json")

			Convey("Then the full response is printed", func() {
				So(err, ShouldBeNil)
				var resp types.AllocationResponse
				So(json.Unmarshal([]byte(out), &resp), ShouldBeNil)
				So(resp.Result.AssignedTo("kit"), ShouldHaveLength, 5)
				So(resp.Excluded, ShouldHaveLength, 1)
			})
		})

		Convey("When reading the request from stdin", func() {
			out, err := runCLI(t, bandRequest, "render", "--file", "-")

			Convey("Then it renders the same booking", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "jazz-night")
			})
		})

		Convey("When rendering against a template file", func() {
			tpl := writeTemp(t, "duo.yaml", `
name: duo
groups:
  - family: vocals
    slots: [{slotId: v1, label: Vox, applicable: true}]
`)
			out, err := runCLI(t, "", "render", "--file", path, "--template", tpl)

			Convey("Then the file's template is used", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "(duo)")
				So(out, ShouldContainSubstring, "[unassigned_person] Kit")
			})
		})
	})

	Convey("Given a running server", t, func() {
		svc := service.New(
			service.WithLogger(logger.Nop()),
			service.WithMetrics(metrics.NewManager(metrics.WithPrometheusRegistry(prometheus.NewRegistry()))),
		)
		mux := http.NewServeMux()
		api.NewServer(svc, 0).Register(context.Background(), mux)
		srv := httptest.NewServer(mux)
		defer srv.Close()

		path := writeTemp(t, "band.yaml", bandRequest)
		out, err := runCLI(t, "", "render", "--file", path, "--url", srv.URL)

		Convey("Then render allocates remotely", func() {
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "jazz-night")
			So(svc.GetStats()["allocations"], ShouldEqual, int64(1))
		})
	})

	Convey("Given invalid input", t, func() {
		Convey("A missing --file flag is an error", func() {
			_, err := runCLI(t, "", "render")
			So(err, ShouldNotBeNil)
		})

		Convey("A malformed mixer is reported", func() {
			path := writeTemp(t, "bad.yaml", `
assignments: []
mixer:
  groups:
    - family: brass
      slots: [{slotId: t1, applicable: true}]
`)
			_, err := runCLI(t, "", "render", "--file", path)
			So(model.IsConfigurationError(err), ShouldBeTrue)
		})
	})
}

func TestTemplateCommand(t *testing.T) {
	Convey("Given the template command", t, func() {
		Convey("When printing the built-in template", func() {
			out, err := runCLI(t, "", "template")

			var cfg model.MixerConfig
			So(yaml.Unmarshal([]byte(out), &cfg), ShouldBeNil)

			Convey("Then it round-trips as YAML", func() {
				So(err, ShouldBeNil)
				So(cfg.Name, ShouldEqual, "standard")
				So(cfg.Groups, ShouldHaveLength, 5)
				So(out, ShouldContainSubstring, "slotId: vocal-1")
			})
		})

		Convey("When asking for the basic drum kit", func() {
			out, err := runCLI(t, "", "template", "--drum-kit")

			Convey("Then the drums group has eight inputs", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "Floor Tom")
				So(out, ShouldContainSubstring, "slotId: drum-8")
			})
		})

		Convey("When validating a broken template file", func() {
			path := writeTemp(t, "bad.yaml", "groups:\n  - family: kazoo\n    slots: [{slotId: k1}]\n")
			_, err := runCLI(t, "", "template", "--file", path)

			Convey("Then the error is returned", func() {
				So(model.IsConfigurationError(err), ShouldBeTrue)
			})
		})
	})
}
