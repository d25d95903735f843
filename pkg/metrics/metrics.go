package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	EmailsProcessedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingestion_emails_processed_total",
			Help: "Total number of inbound emails processed (count)",
		},
		[]string{"namespace", "municipality_id", "status"},
	)

	EmailProcessingDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ingestion_email_processing_duration_ms",
			Help:    "Processing duration for one inbound email in milliseconds",
			Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		},
		[]string{"status"},
	)

	TenantBatchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ingestion_tenant_batch_duration_ms",
			Help:    "Duration of one tenant's mailbox batch in milliseconds",
			Buckets: []float64{10, 50, 100, 500, 1000, 5000, 10000, 30000},
		},
		[]string{"namespace", "municipality_id"},
	)

	ErrandsCreatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingestion_errands_created_total",
			Help: "Total number of errands created from inbound email (count)",
		},
		[]string{"namespace", "municipality_id"},
	)

	AutoRepliesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingestion_auto_replies_total",
			Help: "Total number of auto-replies dispatched (count)",
		},
		[]string{"kind"},
	)

	StatusTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingestion_status_transitions_total",
			Help: "Total number of automatic errand status transitions (count)",
		},
		[]string{"from", "to"},
	)

	SchedulerRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingestion_scheduler_runs_total",
			Help: "Total number of scheduler ticks by outcome (count)",
		},
		[]string{"result"},
	)

	SchedulerRunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ingestion_scheduler_run_duration_ms",
			Help:    "Duration of one full scheduler run in milliseconds",
			Buckets: []float64{100, 500, 1000, 5000, 10000, 30000, 60000, 120000},
		},
	)

	LeaseAcquireTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lease_acquire_total",
			Help: "Total number of lease acquisition attempts by result (count)",
		},
		[]string{"name", "result"},
	)

	CircuitBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open) (state code)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker (count)",
		},
		[]string{"name", "state"},
	)

	CircuitBreakerFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_failures_total",
			Help: "Total number of failures through circuit breaker (count)",
		},
		[]string{"name"},
	)

	RateLimitRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_requests_total",
			Help: "Total number of requests checked against rate limit (count)",
		},
		[]string{"status"},
	)

	KafkaMessagesWrittenTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_written_total",
			Help: "Total number of messages written to Kafka (count)",
		},
		[]string{"service", "topic"},
	)

	KafkaWriteDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kafka_write_duration_ms",
			Help:    "Duration of writing messages to Kafka in milliseconds",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"service", "topic"},
	)

	BlobStoreRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blob_store_requests_total",
			Help: "Total number of blob store operations (count)",
		},
		[]string{"operation", "status"},
	)
)

func RegisterIngestionMetrics() {
	prometheus.MustRegister(EmailsProcessedTotal)
	prometheus.MustRegister(EmailProcessingDuration)
	prometheus.MustRegister(TenantBatchDuration)
	prometheus.MustRegister(ErrandsCreatedTotal)
	prometheus.MustRegister(AutoRepliesTotal)
	prometheus.MustRegister(StatusTransitionsTotal)
	prometheus.MustRegister(SchedulerRunsTotal)
	prometheus.MustRegister(SchedulerRunDuration)
	prometheus.MustRegister(LeaseAcquireTotal)
	prometheus.MustRegister(BlobStoreRequestsTotal)
}

func RegisterCircuitBreakerMetrics() {
	prometheus.MustRegister(CircuitBreakerState)
	prometheus.MustRegister(CircuitBreakerRequests)
	prometheus.MustRegister(CircuitBreakerFailures)
}

func RegisterHTTPMetrics() {
	prometheus.MustRegister(RateLimitRequestsTotal)
}

func RegisterBrokerMetrics() {
	prometheus.MustRegister(KafkaMessagesWrittenTotal)
	prometheus.MustRegister(KafkaWriteDuration)
}

func ObserveEmailProcessingDuration(duration time.Duration, status string) {
	EmailProcessingDuration.WithLabelValues(status).Observe(float64(duration.Milliseconds()))
}

func ObserveTenantBatchDuration(namespace, municipalityID string, duration time.Duration) {
	TenantBatchDuration.WithLabelValues(namespace, municipalityID).Observe(float64(duration.Milliseconds()))
}

func ObserveSchedulerRunDuration(duration time.Duration) {
	SchedulerRunDuration.Observe(float64(duration.Milliseconds()))
}

func IncKafkaMessagesWritten(service, topic string) {
	KafkaMessagesWrittenTotal.WithLabelValues(service, topic).Inc()
}

func ObserveKafkaWriteDuration(service, topic string, duration time.Duration) {
	KafkaWriteDuration.WithLabelValues(service, topic).Observe(float64(duration.Milliseconds()))
}
