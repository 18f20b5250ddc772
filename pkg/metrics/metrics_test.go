package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerAllocation(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(registry), WithNamespace("test"), WithSubsystem("alloc"))

		Convey("When recording allocation outcomes", func() {
			So(m.RecordAllocation(OutcomeOK, 0.4), ShouldBeNil)
			So(m.RecordAllocation(OutcomeOK, 0.2), ShouldBeNil)
			So(m.RecordAllocation(OutcomeConfigError, 0.1), ShouldBeNil)

			Convey("Then counters should be split by outcome", func() {
				So(testutil.ToFloat64(m.allocations.WithLabelValues(OutcomeOK)), ShouldEqual, 2)
				So(testutil.ToFloat64(m.allocations.WithLabelValues(OutcomeConfigError)), ShouldEqual, 1)
				So(testutil.CollectAndCount(m.allocationLatency), ShouldEqual, 1)
			})
		})

		Convey("When recording an unknown outcome", func() {
			err := m.RecordAllocation("maybe", 1)

			Convey("Then it should be rejected", func() {
				So(errors.Is(err, ErrUnknownOutcome), ShouldBeTrue)
			})
		})

		Convey("When recording shortfalls", func() {
			m.RecordShortfall(7, []string{"drums", "drums", "vocals"}, 2, 1)

			Convey("Then each counter should reflect the run", func() {
				So(testutil.ToFloat64(m.channelsAssigned), ShouldEqual, 7)
				So(testutil.ToFloat64(m.unfilledSlots.WithLabelValues("drums")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.unfilledSlots.WithLabelValues("vocals")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.unassignedPeople), ShouldEqual, 2)
				So(testutil.ToFloat64(m.excludedPeople), ShouldEqual, 1)
			})
		})

		Convey("When recording HTTP traffic", func() {
			m.RecordHTTPRequest("allocations", "POST", "200", 3)
			m.RecordErrorByEndpoint("allocations", "POST", "client_error")

			Convey("Then request and error counters should increase", func() {
				So(testutil.ToFloat64(m.httpRequests.WithLabelValues("allocations", "POST", "200")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.errorsByEndpoint.WithLabelValues("allocations", "POST", "client_error")), ShouldEqual, 1)
			})
		})

		Convey("When updating system gauges", func() {
			m.UpdateSystem(2048, 12, 0.5)

			Convey("Then the gauges hold the latest values", func() {
				So(testutil.ToFloat64(m.memoryUsage), ShouldEqual, 2048)
				So(testutil.ToFloat64(m.goroutineCount), ShouldEqual, 12)
				So(testutil.ToFloat64(m.gcPause), ShouldEqual, 0.5)
			})
		})
	})
}

func TestManagerDisabled(t *testing.T) {
	Convey("Given a disabled manager", t, func() {
		m := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()), WithMetricsEnabled(false))

		Convey("When recording", func() {
			So(m.RecordAllocation(OutcomeOK, 1), ShouldBeNil)
			m.RecordShortfall(3, []string{"bass"}, 1, 1)
			m.ObserveBatchSize(4)

			Convey("Then nothing should be counted", func() {
				So(testutil.ToFloat64(m.allocations.WithLabelValues(OutcomeOK)), ShouldEqual, 0)
				So(testutil.ToFloat64(m.channelsAssigned), ShouldEqual, 0)
			})
		})
	})
}

func TestGlobalRegistry(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Then it should be registered on the custom registry", func() {
			So(Global(), ShouldNotBeNil)
			So(RecordAllocation(OutcomeOK, 0.1), ShouldBeNil)
			ObserveBatchSize(2)
			RecordShortfall(1, nil, 0, 0)
			RecordHTTPRequest("healthz", "GET", "200", 1)
			RecordErrorByEndpoint("healthz", "GET", "not_found")
			UpdateSystem(1, 1, 0)

			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			names := make([]string, 0, len(families))
			for _, f := range families {
				names = append(names, f.GetName())
			}
			So(names, ShouldContain, "rider_channels_allocations_total")
			So(names, ShouldContain, "rider_channels_batch_size")
			So(names, ShouldContain, "rider_system_goroutines")
		})
	})
}
