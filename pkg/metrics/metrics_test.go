package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should use the service namespace", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "talentmatch")
				So(manager.subsystem, ShouldEqual, "engine")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options should apply", func() {
				So(manager.namespace, ShouldEqual, "test_namespace")
				So(manager.subsystem, ShouldEqual, "test_subsystem")
				So(manager.histogramBuckets, ShouldResemble, []float64{0.1, 0.5, 1.0})
				So(manager.constLabels["env"], ShouldEqual, "test")
			})
		})

		Convey("When empty values are passed", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithNamespace(""), WithSubsystem(""), WithHistogramBuckets(nil), WithPrometheusRegistry(registry))

			Convey("Then the defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "talentmatch")
				So(manager.subsystem, ShouldEqual, "engine")
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			})
		})
	})
}

func TestMatchmakingMetrics(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording ranking calls", func() {
			before := testutil.ToFloat64(globalManager.matchRequests.WithLabelValues("matches", OutcomeOK))
			RecordMatchRequest("matches", OutcomeOK, 12.5)
			RecordMatchRequest("matches", OutcomeOK, 3)
			after := testutil.ToFloat64(globalManager.matchRequests.WithLabelValues("matches", OutcomeOK))

			Convey("Then the outcome counter grows", func() {
				So(after-before, ShouldEqual, 2.0)
			})
		})

		Convey("When recording candidates", func() {
			scored := testutil.ToFloat64(globalManager.candidatesScored)
			matched := testutil.ToFloat64(globalManager.candidatesMatched)
			RecordCandidates(10, 4)

			Convey("Then both counters advance", func() {
				So(testutil.ToFloat64(globalManager.candidatesScored)-scored, ShouldEqual, 10.0)
				So(testutil.ToFloat64(globalManager.candidatesMatched)-matched, ShouldEqual, 4.0)
			})
		})

		Convey("When a store operation fails", func() {
			before := testutil.ToFloat64(globalManager.storeErrors.WithLabelValues("memory", "list_talents"))
			RecordStoreOperation("memory", "list_talents", 0.2, errors.New("boom"))
			RecordStoreOperation("memory", "list_talents", 0.1, nil)

			Convey("Then only the failure is counted as an error", func() {
				after := testutil.ToFloat64(globalManager.storeErrors.WithLabelValues("memory", "list_talents"))
				So(after-before, ShouldEqual, 1.0)
			})
		})

		Convey("When pool sizes change", func() {
			UpdatePoolSize("talents", 42)

			Convey("Then the gauge reflects the latest value", func() {
				So(testutil.ToFloat64(globalManager.poolSize.WithLabelValues("talents")), ShouldEqual, 42.0)
			})
		})
	})
}

func TestHTTPAndSystemMetrics(t *testing.T) {
	Convey("Given HTTP and system recorders", t, func() {
		Convey("Then they should not panic", func() {
			So(func() {
				RecordHTTPRequest("matches", "GET", "200")
				RecordHTTPRequestDuration("matches", "GET", "200", 5.0)
				RecordRateLimited("matches")
				RecordErrorByType("not_found", "medium")
				RecordErrorByEndpoint("matches", "GET", "not_found")
				RecordMatchScore(7)
				RecordSeeded("talents", 3)
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(12)
				RecordSystemGCPauseTime(0.3)
			}, ShouldNotPanic)
		})

		Convey("Then the registry exposes the service metrics", func() {
			RecordRateLimited("talents")
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			names := make([]string, 0, len(families))
			for _, f := range families {
				names = append(names, f.GetName())
			}
			So(names, ShouldContain, "talentmatch_engine_http_rate_limited_total")
		})
	})
}
