package alerts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diwise/iot-telemetry-alerts/internal/pkg/application/dedup"
	"github.com/diwise/iot-telemetry-alerts/internal/pkg/application/notification"
	"github.com/diwise/iot-telemetry-alerts/internal/pkg/infrastructure/metrics"
	"github.com/diwise/iot-telemetry-alerts/internal/pkg/infrastructure/storage"
	"github.com/diwise/iot-telemetry-alerts/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("iot-telemetry-alerts/alerts")

var ErrMissingSensorID = errors.New("missing sensor id")

// Evaluation is everything known about a reading once it has been stored and evaluated.
type Evaluation struct {
	Sensor  types.Sensor
	Reading types.Reading
	Verdict types.Verdict
	Config  types.AlertConfiguration
}

//go:generate moq -rm -out alertservice_mock.go . AlertService
type AlertService interface {
	// Process turns an alerting verdict into an alert unless it is below the configured
	// minimum severity or suppressed by the cooldown. It returns nil when no alert was raised.
	Process(ctx context.Context, e Evaluation) (*types.AlertEvent, error)
	History(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.AlertEvent], error)
	Invalidate(ctx context.Context, sensorID string) error
	Prime(ctx context.Context) error
}

//go:generate moq -rm -out alertstorage_mock.go . AlertStorage
type AlertStorage interface {
	AddAlert(ctx context.Context, alert types.AlertEvent) error
	QueryAlerts(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.AlertEvent], error)
}

type alertSvc struct {
	storage    AlertStorage
	cache      dedup.Cache
	dispatcher notification.Dispatcher
	messenger  messaging.MsgContext
	cooldowns  dedup.CooldownConfig
	now        func() time.Time
}

func New(s AlertStorage, c dedup.Cache, d notification.Dispatcher, m messaging.MsgContext, cooldowns dedup.CooldownConfig) AlertService {
	svc := &alertSvc{
		storage:    s,
		cache:      c,
		dispatcher: d,
		messenger:  m,
		cooldowns:  cooldowns,
		now:        func() time.Time { return time.Now().UTC() },
	}

	svc.messenger.RegisterTopicMessageHandler((&types.CooldownsInvalidated{}).TopicName(), NewCooldownsInvalidatedHandler(c))

	return svc
}

func (svc *alertSvc) Process(ctx context.Context, e Evaluation) (*types.AlertEvent, error) {
	var err error

	ctx, span := tracer.Start(ctx, "process-verdict")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
	_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logging.GetFromContext(ctx), ctx)

	v := e.Verdict
	if !v.Alerting() || v.Severity < e.Config.MinSeverity {
		return nil, nil
	}

	log = log.With("sensor_id", v.SensorID, "severity", v.Severity.String())

	admitted, cacheErr := svc.cache.Admit(ctx, v.SensorID, v.Severity)
	if cacheErr != nil {
		log.Warn("dedup cache unavailable, admitting alert", "err", cacheErr.Error())
		admitted = true
	}

	if !admitted {
		metrics.DedupDecisions.WithLabelValues(v.Severity.String(), "suppressed").Inc()
		log.Debug("alert suppressed by cooldown")
		return nil, nil
	}
	metrics.DedupDecisions.WithLabelValues(v.Severity.String(), "admitted").Inc()

	event := types.AlertEvent{
		ID:         uuid.NewString(),
		SensorID:   v.SensorID,
		LocationID: e.Reading.LocationID,
		Metric:     v.Metric,
		Severity:   v.Severity,
		Value:      v.Value,
		Unit:       e.Reading.Unit,
		Message:    Message(v, e.Reading.Unit),
		ObservedAt: e.Reading.Timestamp,
		CreatedAt:  svc.now(),
		Tenant:     e.Sensor.Tenant,
	}

	event.Delivery = svc.dispatcher.Dispatch(logging.NewContextWithLogger(ctx, log), event, e.Config)

	err = svc.storage.AddAlert(ctx, event)
	if err != nil {
		err = fmt.Errorf("could not store alert %s: %w", event.ID, err)
		return &event, err
	}

	metrics.AlertsTotal.WithLabelValues(v.Severity.String()).Inc()
	log.Info("alert raised", "alert_id", event.ID, "value", v.Value)

	pubErr := svc.messenger.PublishOnTopic(ctx, &types.AlertCreated{
		Alert:     event,
		Tenant:    event.Tenant,
		Timestamp: event.CreatedAt,
	})
	if pubErr != nil {
		log.Error("failed to publish alert created", "alert_id", event.ID, "err", pubErr.Error())
	}

	return &event, nil
}

func (svc *alertSvc) History(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.AlertEvent], error) {
	return svc.storage.QueryAlerts(ctx, conditions...)
}

func (svc *alertSvc) Invalidate(ctx context.Context, sensorID string) error {
	sensorID = types.NormalizeSensorID(sensorID)
	if sensorID == "" {
		return ErrMissingSensorID
	}

	err := svc.cache.Invalidate(ctx, sensorID)
	if err != nil {
		return err
	}

	logging.GetFromContext(ctx).Info("cooldowns invalidated", "sensor_id", sensorID)

	return svc.messenger.PublishOnTopic(ctx, &types.CooldownsInvalidated{
		SensorID:  sensorID,
		Timestamp: svc.now(),
	})
}

const primePageSize = 500

// Prime feeds the cache with alerts raised within the longest cooldown so a
// restarted instance does not re-alert for conditions it already notified about.
func (svc *alertSvc) Prime(ctx context.Context) error {
	window := svc.cooldowns.Longest()
	if window <= 0 {
		return nil
	}

	since := svc.now().Add(-window)
	offset := 0
	primed := 0

	for {
		result, err := svc.storage.QueryAlerts(ctx, storage.WithSince(since), storage.WithOffset(offset), storage.WithLimit(primePageSize))
		if err != nil {
			return fmt.Errorf("could not query recent alerts: %w", err)
		}

		if len(result.Data) == 0 {
			break
		}

		if err = svc.cache.Prime(ctx, result.Data); err != nil {
			return err
		}

		primed += len(result.Data)
		offset += len(result.Data)

		if uint64(offset) >= result.TotalCount {
			break
		}
	}

	logging.GetFromContext(ctx).Info("dedup cache primed from alert history", "alerts", primed, "since", since)

	return nil
}

func Message(v types.Verdict, unit string) string {
	var threshold *float64
	switch v.Severity {
	case types.SeverityCritical:
		threshold = v.Thresholds.Critical
	case types.SeverityAlert:
		threshold = v.Thresholds.Warning
	}

	value := fmt.Sprintf("%g", v.Value)
	if unit != "" {
		value += " " + unit
	}

	if threshold == nil {
		return fmt.Sprintf("%s on %s is %s", v.Metric, v.SensorID, value)
	}

	direction := "at or above"
	if v.Polarity == types.Descending {
		direction = "at or below"
	}

	return fmt.Sprintf("%s on %s is %s, %s the %s threshold %g", v.Metric, v.SensorID, value, direction, levelName(v.Severity), *threshold)
}

func levelName(s types.Severity) string {
	if s == types.SeverityCritical {
		return "critical"
	}
	return "warning"
}
