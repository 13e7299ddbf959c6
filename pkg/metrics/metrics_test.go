package metrics

import (
	"strings"
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

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "nexus")
				So(manager.subsystem, ShouldEqual, "site")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.feedbackSubmitted.Inc()

			Convey("Then metric names and labels follow the options", func() {
				So(testutil.ToFloat64(manager.feedbackSubmitted), ShouldEqual, 1)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				found := false
				for _, f := range families {
					if f.GetName() == "test_unit_feedback_submitted_total" {
						found = true
						So(f.GetMetric()[0].GetLabel()[0].GetName(), ShouldEqual, "env")
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When empty options are passed", func() {
			manager := NewManager(WithNamespace(""), WithSubsystem(""), WithHistogramBuckets(nil), WithPrometheusRegistry(prometheus.NewRegistry()))

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "nexus")
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording content metrics", func() {
			before := testutil.ToFloat64(globalManager.contentOperations.WithLabelValues("event", "create"))
			RecordContentOperation("event", "create")
			RecordRepositoryQueryLatency("event", 1.5)

			Convey("Then counters increase", func() {
				So(testutil.ToFloat64(globalManager.contentOperations.WithLabelValues("event", "create")), ShouldEqual, before+1)
			})
		})

		Convey("When recording uploads", func() {
			before := testutil.ToFloat64(globalManager.uploadBytes.WithLabelValues("banner"))
			RecordUpload("banner", 2048)

			Convey("Then bytes accumulate per kind", func() {
				So(testutil.ToFloat64(globalManager.uploadBytes.WithLabelValues("banner")), ShouldEqual, before+2048)
			})
		})

		Convey("When marking zero events past", func() {
			before := testutil.ToFloat64(globalManager.eventsMarkedPast)
			RecordEventsMarkedPast(0)
			RecordEventsMarkedPast(3)

			Convey("Then only positive counts are added", func() {
				So(testutil.ToFloat64(globalManager.eventsMarkedPast), ShouldEqual, before+3)
			})
		})

		Convey("When recording queue and worker metrics", func() {
			So(func() {
				UpdateQueueSize(10)
				UpdateQueueCapacity(100)
				UpdateQueueUtilization(0.1)
				RecordQueueEnqueue()
				RecordQueueDequeue()
				RecordQueueEnqueueError()
				RecordQueueProcessingLatency(3)
				UpdateWorkerCount(4)
				UpdateWorkerActiveCount(1)
				UpdateWorkerIdleCount(3)
				RecordWorkerJob("notify", 12)
				RecordWorkerError("notify")
			}, ShouldNotPanic)
			So(testutil.ToFloat64(globalManager.queueCapacity), ShouldEqual, 100)
		})

		Convey("When recording errors and system metrics", func() {
			So(func() {
				RecordErrorByComponent("api", "validation")
				RecordErrorByType("validation", "warning")
				RecordErrorByEndpoint("/api/events", "POST", "validation")
				RecordErrorLatency("api", "validation", 1)
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(12)
				RecordSystemGCPauseTime(0.3)
				RecordFeedbackSubmitted()
				RecordFeedbackDuplicate()
				RecordNotification("feedback", "sent")
				RecordUploadRejected("too_large")
				RecordHTTPRequest("/api/events", "GET", "200")
				RecordHTTPRequestDuration("/api/events", "GET", "200", 2)
			}, ShouldNotPanic)
		})
	})
}

func TestFamilyNames(t *testing.T) {
	Convey("Given recorded metrics", t, func() {
		RecordFeedbackSubmitted()

		Convey("When listing families", func() {
			names, err := FamilyNames()

			Convey("Then the namespaced names are returned sorted", func() {
				So(err, ShouldBeNil)
				So(len(names), ShouldBeGreaterThan, 0)
				So(strings.Join(names, ","), ShouldContainSubstring, "nexus_site_feedback_submitted_total")
			})
		})
	})
}
