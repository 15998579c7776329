package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Ingestion
	ReadingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telemetry_readings_total",
			Help: "Readings received, by outcome",
		},
		[]string{"status"}, // accepted, rejected, failed
	)

	ReadingRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telemetry_reading_rejections_total",
			Help: "Rejected readings by reason",
		},
		[]string{"reason"},
	)

	IngestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "telemetry_ingest_duration_seconds",
			Help:    "Time from receiving a reading until it is persisted and evaluated",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
	)

	VerdictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telemetry_verdicts_total",
			Help: "Evaluation verdicts by severity",
		},
		[]string{"severity"},
	)

	// Workers
	WorkerQueueSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "telemetry_worker_queue_size",
			Help: "Current number of queued alert jobs",
		},
	)

	WorkerQueueCapacity = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "telemetry_worker_queue_capacity",
			Help: "Capacity of the alert job queue",
		},
	)

	WorkerJobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telemetry_worker_jobs_total",
			Help: "Alert jobs by outcome",
		},
		[]string{"status"}, // processed, failed, dropped
	)

	WorkerPanicsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "telemetry_worker_panics_total",
			Help: "Panics recovered in workers and channel senders",
		},
	)

	// Alerting
	DedupDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telemetry_dedup_decisions_total",
			Help: "Dedup cache decisions",
		},
		[]string{"severity", "decision"}, // admitted, suppressed, error
	)

	AlertsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telemetry_alerts_total",
			Help: "Emitted alert events",
		},
		[]string{"severity"},
	)

	DeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telemetry_deliveries_total",
			Help: "Channel delivery results",
		},
		[]string{"channel", "status"},
	)

	DeliveryAttempts = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "telemetry_delivery_attempts",
			Help:    "Attempts needed per recipient delivery",
			Buckets: []float64{1, 2, 3, 4, 5},
		},
		[]string{"channel"},
	)

	// Retention
	RetentionRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telemetry_retention_runs_total",
			Help: "Retention runs by outcome",
		},
		[]string{"status"}, // completed, failed, rejected
	)

	RetentionDeletedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telemetry_retention_deleted_total",
			Help: "Readings deleted by retention stage",
		},
		[]string{"stage"},
	)

	RetentionStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "telemetry_retention_stage_duration_seconds",
			Help:    "Duration of retention stages",
			Buckets: prometheus.ExponentialBuckets(0.1, 4, 8),
		},
		[]string{"stage"},
	)

	// Outbound broadcast
	WebsocketClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "telemetry_websocket_clients",
			Help: "Connected websocket subscribers",
		},
	)
)
