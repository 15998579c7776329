package ingestion

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/diwise/iot-telemetry-alerts/internal/pkg/application/alerts"
	"github.com/diwise/iot-telemetry-alerts/internal/pkg/application/evaluator"
	"github.com/diwise/iot-telemetry-alerts/internal/pkg/infrastructure/metrics"
	"github.com/diwise/iot-telemetry-alerts/internal/pkg/infrastructure/storage"
	"github.com/diwise/iot-telemetry-alerts/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("iot-telemetry-alerts/ingestion")

var ErrInvalidReading = errors.New("invalid reading")

const (
	reasonMissingSensorID = "missing_sensor_id"
	reasonUnknownSensor   = "unknown_sensor"
	reasonInactiveSensor  = "inactive_sensor"
	reasonNotFinite       = "not_finite"
	reasonFutureTimestamp = "future_timestamp"
	reasonMetricMismatch  = "metric_mismatch"
)

func reject(reason, format string, args ...any) error {
	metrics.ReadingRejections.WithLabelValues(reason).Inc()
	metrics.ReadingsTotal.WithLabelValues("rejected").Inc()
	return fmt.Errorf("%w: %s", ErrInvalidReading, fmt.Sprintf(format, args...))
}

//go:generate moq -rm -out sensorstorage_mock.go . SensorStorage
type SensorStorage interface {
	GetSensor(ctx context.Context, sensorID string) (types.Sensor, error)
	GetAlertConfiguration(ctx context.Context, sensorID string) (types.AlertConfiguration, error)
	AddReading(ctx context.Context, r types.Reading) (int64, error)
}

//go:generate moq -rm -out ingestor_mock.go . Ingestor
type Ingestor interface {
	// Ingest validates and stores one reading and returns its verdict. Alerting
	// verdicts are handed to the alert workers, Ingest does not wait for delivery.
	Ingest(ctx context.Context, r types.Reading) (types.Verdict, error)
	Start(ctx context.Context)
	Stop(ctx context.Context) error
}

type ingestor struct {
	cfg       Config
	storage   SensorStorage
	evaluator evaluator.Evaluator
	alerts    alerts.AlertService
	pool      *pool
	now       func() time.Time
}

func New(cfg Config, s SensorStorage, e evaluator.Evaluator, a alerts.AlertService, m messaging.MsgContext) Ingestor {
	i := &ingestor{
		cfg:       cfg,
		storage:   s,
		evaluator: e,
		alerts:    a,
		now:       func() time.Time { return time.Now().UTC() },
	}

	i.pool = newPool(cfg, i.processAlert)

	m.RegisterTopicMessageHandler((&types.ReadingMessage{}).TopicName(), NewReadingHandler(i))

	return i
}

func (i *ingestor) Start(ctx context.Context) {
	i.pool.start(ctx)
}

func (i *ingestor) Stop(ctx context.Context) error {
	return i.pool.stop(ctx)
}

func (i *ingestor) Ingest(ctx context.Context, r types.Reading) (types.Verdict, error) {
	ctx, span := tracer.Start(ctx, "ingest")
	defer span.End()

	start := time.Now()
	defer func() { metrics.IngestDuration.Observe(time.Since(start).Seconds()) }()

	now := i.now()

	r.SensorID = types.NormalizeSensorID(r.SensorID)
	if r.SensorID == "" {
		return types.Verdict{}, reject(reasonMissingSensorID, "sensor id is empty")
	}

	log := logging.GetFromContext(ctx).With("sensor_id", r.SensorID)

	if !types.IsFinite(r.Value) {
		return types.Verdict{}, reject(reasonNotFinite, "value %v is not a finite number", r.Value)
	}

	if r.Timestamp.IsZero() {
		r.Timestamp = now
	}
	if r.Timestamp.After(now.Add(i.cfg.ClockSkew)) {
		return types.Verdict{}, reject(reasonFutureTimestamp, "timestamp %s is in the future", r.Timestamp.Format(time.RFC3339))
	}

	sensor, err := i.storage.GetSensor(ctx, r.SensorID)
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return types.Verdict{}, reject(reasonUnknownSensor, "sensor %s is not registered", r.SensorID)
		}
		return types.Verdict{}, fmt.Errorf("could not fetch sensor %s: %w", r.SensorID, err)
	}

	if !sensor.Active {
		return types.Verdict{}, reject(reasonInactiveSensor, "sensor %s is inactive", r.SensorID)
	}

	if r.Metric != "" && !strings.EqualFold(r.Metric, sensor.Metric) {
		return types.Verdict{}, reject(reasonMetricMismatch, "metric %s does not match registered metric %s", r.Metric, sensor.Metric)
	}
	r.Metric = sensor.Metric

	if r.Unit == "" {
		r.Unit = sensor.Unit
	}
	if r.LocationID == 0 {
		r.LocationID = sensor.LocationID
	}

	r.ID, err = i.storage.AddReading(ctx, r)
	if err != nil {
		metrics.ReadingsTotal.WithLabelValues("failed").Inc()
		return types.Verdict{}, fmt.Errorf("could not store reading: %w", err)
	}
	metrics.ReadingsTotal.WithLabelValues("stored").Inc()

	var cfg *types.AlertConfiguration
	c, err := i.storage.GetAlertConfiguration(ctx, r.SensorID)
	if err == nil {
		cfg = &c
	} else if !errors.Is(err, storage.ErrNoRows) {
		log.Error("could not load alert configuration, reading evaluated as unconfigured", "err", err.Error())
	}

	verdict := i.evaluator.Evaluate(r, cfg)
	metrics.VerdictsTotal.WithLabelValues(verdict.Severity.String()).Inc()

	if !verdict.Alerting() {
		return verdict, nil
	}

	e := alerts.Evaluation{Sensor: sensor, Reading: r, Verdict: verdict}
	if cfg != nil {
		e.Config = *cfg
	}

	if err := i.pool.enqueue(ctx, e); err != nil {
		metrics.WorkerJobsTotal.WithLabelValues("dropped").Inc()
		log.Warn("alert job dropped", "severity", verdict.Severity.String(), "reading_id", r.ID, "err", err.Error())
	}

	return verdict, nil
}

func (i *ingestor) processAlert(ctx context.Context, e alerts.Evaluation) {
	_, err := i.alerts.Process(ctx, e)
	if err != nil {
		logging.GetFromContext(ctx).Error("alert processing failed", "sensor_id", e.Verdict.SensorID, "err", err.Error())
	}
}
