package metrics

import (
	"fmt"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the site backend.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Content metrics
	contentOperations  *prometheus.CounterVec
	repositoryLatency  *prometheus.HistogramVec
	eventsMarkedPast   prometheus.Counter
	uploadsTotal       *prometheus.CounterVec
	uploadBytes        *prometheus.CounterVec
	uploadsRejected    *prometheus.CounterVec
	feedbackSubmitted  prometheus.Counter
	feedbackDuplicate  prometheus.Counter
	notificationsTotal *prometheus.CounterVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Queue metrics
	queueSize              prometheus.Gauge
	queueCapacity          prometheus.Gauge
	queueUtilization       prometheus.Gauge
	queueEnqueueRate       prometheus.Counter
	queueDequeueRate       prometheus.Counter
	queueEnqueueErrors     prometheus.Counter
	queueProcessingLatency prometheus.Histogram

	// Worker metrics
	workerCount             prometheus.Gauge
	workerActiveCount       prometheus.Gauge
	workerIdleCount         prometheus.Gauge
	workerProcessingLatency *prometheus.HistogramVec
	workerJobs              *prometheus.CounterVec
	workerErrorRate         *prometheus.CounterVec

	// Error metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "nexus",
		subsystem:        "site",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels, Buckets: buckets}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric
	auto := promauto.With(m.registry)

	m.contentOperations = auto.NewCounterVec(
		m.counterOpts("content_operations_total", "Content operations by entity and operation"),
		[]string{"entity", "op"},
	)
	m.repositoryLatency = auto.NewHistogramVec(
		m.histogramOpts("repository_query_latency_milliseconds", "Repository query latency in milliseconds", m.histogramBuckets),
		[]string{"entity"},
	)
	m.eventsMarkedPast = auto.NewCounter(m.counterOpts("events_marked_past_total", "Events flipped from upcoming to past by the status refresher"))
	m.uploadsTotal = auto.NewCounterVec(m.counterOpts("uploads_total", "Images stored by kind"), []string{"kind"})
	m.uploadBytes = auto.NewCounterVec(m.counterOpts("upload_bytes_total", "Bytes of images stored by kind"), []string{"kind"})
	m.uploadsRejected = auto.NewCounterVec(m.counterOpts("uploads_rejected_total", "Rejected uploads by reason"), []string{"reason"})
	m.feedbackSubmitted = auto.NewCounter(m.counterOpts("feedback_submitted_total", "Feedback entries stored"))
	m.feedbackDuplicate = auto.NewCounter(m.counterOpts("feedback_duplicate_total", "Feedback submissions dropped as duplicates"))
	m.notificationsTotal = auto.NewCounterVec(m.counterOpts("notifications_total", "Notifications by topic and outcome"), []string{"topic", "outcome"})

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.queueSize = auto.NewGauge(m.gaugeOpts("queue_size", "Current size of the job queue"))
	m.queueCapacity = auto.NewGauge(m.gaugeOpts("queue_capacity", "Maximum job queue capacity"))
	m.queueUtilization = auto.NewGauge(m.gaugeOpts("queue_utilization_ratio", "Queue utilization ratio (size / capacity)"))
	m.queueEnqueueRate = auto.NewCounter(m.counterOpts("queue_enqueue_total", "Total number of jobs enqueued"))
	m.queueDequeueRate = auto.NewCounter(m.counterOpts("queue_dequeue_total", "Total number of jobs dequeued"))
	m.queueEnqueueErrors = auto.NewCounter(m.counterOpts("queue_enqueue_errors_total", "Total number of rejected enqueues"))
	m.queueProcessingLatency = auto.NewHistogram(m.histogramOpts("queue_processing_latency_milliseconds", "Time jobs spend in the queue in milliseconds", m.histogramBuckets))

	m.workerCount = auto.NewGauge(m.gaugeOpts("worker_count", "Configured number of workers"))
	m.workerActiveCount = auto.NewGauge(m.gaugeOpts("worker_active_count", "Number of busy workers"))
	m.workerIdleCount = auto.NewGauge(m.gaugeOpts("worker_idle_count", "Number of idle workers"))
	m.workerProcessingLatency = auto.NewHistogramVec(
		m.histogramOpts("worker_processing_latency_milliseconds", "Job handling latency in milliseconds", m.histogramBuckets),
		[]string{"kind"},
	)
	m.workerJobs = auto.NewCounterVec(m.counterOpts("worker_jobs_total", "Jobs handled by kind"), []string{"kind"})
	m.workerErrorRate = auto.NewCounterVec(m.counterOpts("worker_errors_total", "Failed jobs by kind"), []string{"kind"})

	m.errorRateByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Total number of errors by component"),
		[]string{"component", "error_type"},
	)
	m.errorRateByType = auto.NewCounterVec(
		m.counterOpts("errors_by_type_total", "Total number of errors by type"),
		[]string{"error_type", "severity"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)
	m.errorLatency = auto.NewHistogramVec(
		m.histogramOpts("error_latency_milliseconds", "Latency of operations that resulted in errors", m.histogramBuckets),
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "Heap memory in use in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}))
}

// RecordContentOperation counts a create/update/delete on a content entity.
func RecordContentOperation(entity, op string) {
	globalManager.contentOperations.WithLabelValues(entity, op).Inc()
}

// RecordRepositoryQueryLatency records repository query latency for an entity.
func RecordRepositoryQueryLatency(entity string, latencyMs float64) {
	globalManager.repositoryLatency.WithLabelValues(entity).Observe(latencyMs)
}

// RecordEventsMarkedPast adds the number of events moved to the past status.
func RecordEventsMarkedPast(n int64) {
	if n > 0 {
		globalManager.eventsMarkedPast.Add(float64(n))
	}
}

// RecordUpload counts a stored image and its size.
func RecordUpload(kind string, bytes int64) {
	globalManager.uploadsTotal.WithLabelValues(kind).Inc()
	globalManager.uploadBytes.WithLabelValues(kind).Add(float64(bytes))
}

// RecordUploadRejected counts an upload refused before storage.
func RecordUploadRejected(reason string) {
	globalManager.uploadsRejected.WithLabelValues(reason).Inc()
}

// RecordFeedbackSubmitted increments the stored feedback counter.
func RecordFeedbackSubmitted() {
	globalManager.feedbackSubmitted.Inc()
}

// RecordFeedbackDuplicate increments the duplicate feedback counter.
func RecordFeedbackDuplicate() {
	globalManager.feedbackDuplicate.Inc()
}

// RecordNotification counts a notification attempt.
func RecordNotification(topic, outcome string) {
	globalManager.notificationsTotal.WithLabelValues(topic, outcome).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Queue Metrics Functions.

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateQueueUtilization sets the queue utilization ratio.
func UpdateQueueUtilization(utilization float64) {
	globalManager.queueUtilization.Set(utilization)
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueueRate.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	globalManager.queueDequeueRate.Inc()
}

// RecordQueueEnqueueError increments the enqueue error counter.
func RecordQueueEnqueueError() {
	globalManager.queueEnqueueErrors.Inc()
}

// RecordQueueProcessingLatency records how long a job waited in the queue.
func RecordQueueProcessingLatency(latencyMs float64) {
	globalManager.queueProcessingLatency.Observe(latencyMs)
}

// Worker Metrics Functions.

// UpdateWorkerCount sets the configured worker count.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// UpdateWorkerActiveCount sets the number of busy workers.
func UpdateWorkerActiveCount(count int) {
	globalManager.workerActiveCount.Set(float64(count))
}

// UpdateWorkerIdleCount sets the number of idle workers.
func UpdateWorkerIdleCount(count int) {
	globalManager.workerIdleCount.Set(float64(count))
}

// RecordWorkerJob counts a handled job and its latency.
func RecordWorkerJob(kind string, latencyMs float64) {
	globalManager.workerJobs.WithLabelValues(kind).Inc()
	globalManager.workerProcessingLatency.WithLabelValues(kind).Observe(latencyMs)
}

// RecordWorkerError increments the failed job counter.
func RecordWorkerError(kind string) {
	globalManager.workerErrorRate.WithLabelValues(kind).Inc()
}

// Error Metrics Functions.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// System Metrics Functions.

// UpdateSystemMemoryUsage sets the heap memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// FamilyNames lists the metric families currently exposed by the registry.
func FamilyNames() ([]string, error) {
	families, err := customRegistry.Gather()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatherFailed, err)
	}
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	sort.Strings(names)
	return names, nil
}
