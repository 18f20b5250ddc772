package config_test

import (
	"errors"
	"runtime"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/subratasarker952/waitumusic-sub016/internal/config"
	"github.com/subratasarker952/waitumusic-sub016/internal/domain/model"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.MixerCapacity, convey.ShouldEqual, 32)
			convey.So(cfg.TemplatePath, convey.ShouldBeEmpty)
			convey.So(cfg.BatchConcurrency, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.MaxBatchSize, convey.ShouldEqual, 100)
			convey.So(cfg.SingleFamilyOrder, convey.ShouldBeEmpty)
		})

		convey.Convey("Then the defaults should validate", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"blank addr", func(c *config.Config) { c.Addr = "  " }, "addr must not be empty"},
		{"zero capacity", func(c *config.Config) { c.MixerCapacity = 0 }, "mixer_capacity"},
		{"zero concurrency", func(c *config.Config) { c.BatchConcurrency = 0 }, "batch_concurrency"},
		{"negative batch size", func(c *config.Config) { c.MaxBatchSize = -1 }, "max_batch_size"},
		{"unknown log format", func(c *config.Config) { c.LogFormat = "xml" }, "log_format"},
		{"unknown family", func(c *config.Config) { c.SingleFamilyOrder = []string{"vocals", "theremin"} }, "single_family_order"},
	}

	convey.Convey("Given invalid configs", t, func() {
		for _, tc := range cases {
			convey.Convey("When the config has a "+tc.name, func() {
				cfg := config.New()
				tc.mutate(cfg)
				err := cfg.Validate()

				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, tc.want)
			})
		}
	})
}

func TestConfig_Families(t *testing.T) {
	convey.Convey("Given a config with a family order", t, func() {
		cfg := config.New()
		cfg.SingleFamilyOrder = []string{"Guitars", "vocals", "bass"}

		convey.Convey("Then aliases should resolve to canonical families", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
			convey.So(cfg.Families(), convey.ShouldResemble, []model.Family{
				model.FamilyGuitar, model.FamilyVocals, model.FamilyBass,
			})
		})
	})
}
