package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"

	service "github.com/subratasarker952/waitumusic-sub016/internal/app"
	"github.com/subratasarker952/waitumusic-sub016/internal/domain/allocation"
	"github.com/subratasarker952/waitumusic-sub016/internal/domain/model"
	"github.com/subratasarker952/waitumusic-sub016/internal/domain/stageplot"
	"github.com/subratasarker952/waitumusic-sub016/internal/domain/types"
	"github.com/subratasarker952/waitumusic-sub016/pkg/logger"
	"github.com/subratasarker952/waitumusic-sub016/pkg/metrics"
)

func init() {
	// Initialize logging for tests
	err := logger.Init(logger.WithWriter(os.Stderr))
	if err != nil {
		panic(err)
	}
}

func band() []model.RawAssignment {
	return []model.RawAssignment{
		{PersonID: "ana", DisplayName: "Ana", PrimaryTalent: "Lead Vocals", IsPrimaryTalent: true},
		{PersonID: "ben", DisplayName: "Ben", PrimaryTalent: "Electric Guitar"},
		{PersonID: "cy", DisplayName: "Cy", PrimaryTalent: "Bass Guitar"},
		{PersonID: "dee", DisplayName: "Dee", PrimaryTalent: "Keyboards"},
		{PersonID: "eli", DisplayName: "Eli", RoleLabel: "Drummer"},
		{PersonID: "fay", DisplayName: "Fay", RoleLabel: "Tour Manager"},
	}
}

func newService(opts ...service.Option) (*service.Service, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	opts = append([]service.Option{
		service.WithLogger(logger.Nop()),
		service.WithMetrics(metrics.NewManager(metrics.WithPrometheusRegistry(reg))),
	}, opts...)
	return service.New(opts...), reg
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should use the standard template", func() {
			So(svc, ShouldNotBeNil)
			So(svc.Template().Name, ShouldEqual, "standard")
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, false)
			So(stats["capacity"], ShouldEqual, stageplot.DefaultCapacity)
			So(stats["singleFamilies"], ShouldResemble, []string{"vocals", "guitar", "bass", "percussion", "other"})
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc, _ := newService(
			service.WithCapacity(16),
			service.WithBatchConcurrency(2),
			service.WithMaxBatchSize(5),
			service.WithEngine(allocation.New(allocation.WithSingleFamilyOrder(model.FamilyGuitar))),
		)

		Convey("Then the stats should reflect them", func() {
			stats := svc.GetStats()
			So(stats["capacity"], ShouldEqual, 16)
			So(stats["batchConcurrency"], ShouldEqual, 2)
			So(stats["maxBatchSize"], ShouldEqual, 5)
			So(stats["singleFamilies"], ShouldResemble, []string{"guitar", "vocals", "bass", "percussion", "other"})
		})
	})
}

func TestService_Start(t *testing.T) {
	Convey("Given a service with a template file", t, func() {
		path := filepath.Join(t.TempDir(), "club.yaml")
		So(os.WriteFile(path, []byte(`
name: club
groups:
  - family: vocals
    slots: [{slotId: v1, label: Vocal, applicable: true}]
`), 0o600), ShouldBeNil)

		svc, _ := newService(service.WithTemplatePath(path))
		defer svc.Stop()

		Convey("When starting the service", func() {
			err := svc.Start(context.Background())

			Convey("Then the template should be loaded", func() {
				So(err, ShouldBeNil)
				So(svc.Template().Name, ShouldEqual, "club")
				So(svc.GetStats()["started"], ShouldEqual, true)
			})

			Convey("And starting again should be a no-op", func() {
				So(svc.Start(context.Background()), ShouldBeNil)
			})
		})
	})

	Convey("Given a service with a missing template file", t, func() {
		svc, _ := newService(service.WithTemplatePath(filepath.Join(t.TempDir(), "missing.yaml")))

		Convey("Then Start should fail", func() {
			So(svc.Start(context.Background()), ShouldNotBeNil)
			So(svc.GetStats()["started"], ShouldEqual, false)
		})
	})
}

func TestService_Allocate(t *testing.T) {
	Convey("Given a five-piece band and the standard template", t, func() {
		svc, reg := newService()
		ctx := context.Background()

		resp, err := svc.Allocate(ctx, types.AllocationRequest{BookingID: "b-1", Assignments: band()})

		Convey("Then every applicable slot but the second vocal is filled", func() {
			So(err, ShouldBeNil)
			So(resp.RequestID, ShouldNotBeEmpty)
			So(resp.BookingID, ShouldEqual, "b-1")
			So(resp.Template, ShouldEqual, "standard")
			So(resp.Result.Channels, ShouldHaveLength, 11)
			So(resp.Result.UnfilledSlots, ShouldHaveLength, 1)
			So(resp.Result.UnfilledSlots[0].SlotID, ShouldEqual, "vocal-2")
			So(resp.Result.UnassignedPeople, ShouldBeEmpty)
			So(resp.Result.AssignedTo("eli"), ShouldHaveLength, 5)
			So(resp.Result.AssignedTo("dee"), ShouldHaveLength, 2)
		})

		Convey("Then the tour manager is reported as excluded", func() {
			So(resp.Excluded, ShouldHaveLength, 1)
			So(resp.Excluded[0].PersonID, ShouldEqual, "fay")
		})

		Convey("Then the input list numbers applicable rows and lists unused ones", func() {
			So(resp.InputList.Rows, ShouldHaveLength, 11)
			So(resp.InputList.Rows[0].Channel, ShouldEqual, 1)
			So(resp.InputList.Rows[0].Family, ShouldEqual, model.FamilyDrums)
			So(resp.InputList.Unused, ShouldHaveLength, 2)
		})

		Convey("Then metrics and stats are recorded", func() {
			So(counterValue(reg, "rider_channels_allocations_total", "ok"), ShouldEqual, 1)
			So(svc.GetStats()["allocations"], ShouldEqual, int64(1))
			So(svc.GetStats()["failures"], ShouldEqual, int64(0))
		})

		Convey("Then a second run gets a new request id but the same result", func() {
			again, err := svc.Allocate(ctx, types.AllocationRequest{BookingID: "b-1", Assignments: band()})
			So(err, ShouldBeNil)
			So(again.RequestID, ShouldNotEqual, resp.RequestID)
			So(again.Result, ShouldResemble, resp.Result)
		})
	})

	Convey("Given a request with a malformed mixer", t, func() {
		svc, _ := newService()
		req := types.AllocationRequest{
			Assignments: band(),
			Mixer: &model.MixerConfig{Groups: []model.GroupConfig{
				{Family: "brass", Slots: []model.SlotConfig{{SlotID: "t1", Applicable: true}}},
			}},
		}

		_, err := svc.Allocate(context.Background(), req)

		Convey("Then a configuration error is returned", func() {
			So(model.IsConfigurationError(err), ShouldBeTrue)
			So(errors.Is(err, model.ErrUnknownFamily), ShouldBeTrue)
			So(svc.GetStats()["failures"], ShouldEqual, int64(1))
		})
	})

	Convey("Given a request whose mixer has no groups", t, func() {
		svc, _ := newService()
		req := types.AllocationRequest{Assignments: band(), Mixer: &model.MixerConfig{Name: "empty"}}

		_, err := svc.Allocate(context.Background(), req)

		Convey("Then it is rejected as an invalid template", func() {
			So(model.IsConfigurationError(err), ShouldBeTrue)
			So(errors.Is(err, model.ErrInvalidTemplate), ShouldBeTrue)
		})
	})

	Convey("Given a cancelled context", t, func() {
		svc, _ := newService()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := svc.Allocate(ctx, types.AllocationRequest{Assignments: band()})

		Convey("Then nothing is allocated", func() {
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
			So(svc.GetStats()["allocations"], ShouldEqual, int64(0))
		})
	})

	Convey("Given a small mixer capacity", t, func() {
		svc, _ := newService(service.WithCapacity(8))

		resp, err := svc.Allocate(context.Background(), types.AllocationRequest{Assignments: band()})

		Convey("Then rows past capacity overflow", func() {
			So(err, ShouldBeNil)
			So(resp.InputList.Rows, ShouldHaveLength, 8)
			So(resp.InputList.Overflow, ShouldHaveLength, 3)
		})
	})
}

// counterValue reads the value of the labelled counter name from reg.
func counterValue(reg *prometheus.Registry, name, label string) float64 {
	families, err := reg.Gather()
	if err != nil {
		return -1
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetValue() == label {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}
