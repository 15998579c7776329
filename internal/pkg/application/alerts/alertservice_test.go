package alerts

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/diwise/iot-telemetry-alerts/internal/pkg/application/dedup"
	"github.com/diwise/iot-telemetry-alerts/internal/pkg/application/notification"
	"github.com/diwise/iot-telemetry-alerts/internal/pkg/infrastructure/storage"
	"github.com/diwise/iot-telemetry-alerts/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/matryer/is"
)

func fp(f float64) *float64 { return &f }

func testEvaluation(severity types.Severity, value float64) Evaluation {
	return Evaluation{
		Sensor: types.Sensor{SensorID: "sensor-1", Metric: "temperature", Unit: "°C", LocationID: 12, Active: true, Tenant: "default"},
		Reading: types.Reading{
			SensorID:   "sensor-1",
			Metric:     "temperature",
			Value:      value,
			Unit:       "°C",
			Timestamp:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
			LocationID: 12,
		},
		Verdict: types.Verdict{
			SensorID:   "sensor-1",
			Metric:     "temperature",
			Severity:   severity,
			Value:      value,
			Polarity:   types.Ascending,
			Thresholds: types.Thresholds{Warning: fp(30), Critical: fp(35)},
			Source:     types.ThresholdsFromSensor,
		},
		Config: types.AlertConfiguration{
			SensorID:             "sensor-1",
			Active:               true,
			MinSeverity:          types.SeverityAlert,
			NotificationChannels: types.NotificationChannels{Email: true},
			Recipients:           []types.Recipient{{Name: "ops", Email: "ops@example.com", Tier: types.TierCritica}},
		},
	}
}

type testDeps struct {
	storage    *AlertStorageMock
	cache      *dedup.CacheMock
	dispatcher *notification.DispatcherMock
	messenger  *messaging.MsgContextMock
}

func testSetup(t *testing.T) (*is.I, context.Context, AlertService, *testDeps) {
	is := is.New(t)
	ctx := context.Background()

	d := &testDeps{
		storage: &AlertStorageMock{
			AddAlertFunc: func(ctx context.Context, alert types.AlertEvent) error {
				return nil
			},
		},
		cache: &dedup.CacheMock{
			AdmitFunc: func(ctx context.Context, sensorID string, severity types.Severity) (bool, error) {
				return true, nil
			},
			InvalidateFunc: func(ctx context.Context, sensorID string) error {
				return nil
			},
		},
		dispatcher: &notification.DispatcherMock{
			DispatchFunc: func(ctx context.Context, event types.AlertEvent, cfg types.AlertConfiguration) types.DeliveryReport {
				return types.DeliveryReport{
					types.ChannelEmail: {Channel: types.ChannelEmail, Status: types.DeliveryDelivered},
				}
			},
		},
		messenger: &messaging.MsgContextMock{
			RegisterTopicMessageHandlerFunc: func(routingKey string, handler messaging.TopicMessageHandler) error {
				return nil
			},
			PublishOnTopicFunc: func(ctx context.Context, message messaging.TopicMessage) error {
				return nil
			},
		},
	}

	svc := New(d.storage, d.cache, d.dispatcher, d.messenger, dedup.DefaultConfig())

	return is, ctx, svc, d
}

func TestProcessRaisesAlert(t *testing.T) {
	is, ctx, svc, d := testSetup(t)

	event, err := svc.Process(ctx, testEvaluation(types.SeverityCritical, 36.5))
	is.NoErr(err)
	is.True(event != nil)

	is.Equal(1, len(d.dispatcher.DispatchCalls()))
	is.Equal(1, len(d.storage.AddAlertCalls()))

	stored := d.storage.AddAlertCalls()[0].Alert
	is.Equal(event.ID, stored.ID)
	is.Equal("sensor-1", stored.SensorID)
	is.Equal(12, stored.LocationID)
	is.Equal(types.SeverityCritical, stored.Severity)
	is.Equal("default", stored.Tenant)
	is.Equal(types.DeliveryDelivered, stored.Delivery[types.ChannelEmail].Status)
	is.Equal("temperature on sensor-1 is 36.5 °C, at or above the critical threshold 35", stored.Message)

	is.Equal(1, len(d.messenger.PublishOnTopicCalls()))
	created, ok := d.messenger.PublishOnTopicCalls()[0].Message.(*types.AlertCreated)
	is.True(ok)
	is.Equal(event.ID, created.Alert.ID)
}

func TestProcessIgnoresSeverityBelowConfiguredMinimum(t *testing.T) {
	is, ctx, svc, d := testSetup(t)

	e := testEvaluation(types.SeverityAlert, 31)
	e.Config.MinSeverity = types.SeverityCritical

	event, err := svc.Process(ctx, e)
	is.NoErr(err)
	is.True(event == nil)
	is.Equal(0, len(d.cache.AdmitCalls()))
	is.Equal(0, len(d.dispatcher.DispatchCalls()))
}

func TestProcessIgnoresNormalVerdicts(t *testing.T) {
	is, ctx, svc, d := testSetup(t)

	event, err := svc.Process(ctx, testEvaluation(types.SeverityNormal, 20))
	is.NoErr(err)
	is.True(event == nil)
	is.Equal(0, len(d.storage.AddAlertCalls()))
}

func TestProcessSuppressedByCooldown(t *testing.T) {
	is, ctx, _, d := testSetup(t)

	cctx, cancel := context.WithCancel(ctx)
	defer cancel()

	svc := New(d.storage, dedup.NewMemoryCache(cctx, dedup.DefaultConfig(), time.Minute), d.dispatcher, d.messenger, dedup.DefaultConfig())

	first, err := svc.Process(ctx, testEvaluation(types.SeverityCritical, 36))
	is.NoErr(err)
	is.True(first != nil)

	second, err := svc.Process(ctx, testEvaluation(types.SeverityCritical, 37))
	is.NoErr(err)
	is.True(second == nil)

	warning, err := svc.Process(ctx, testEvaluation(types.SeverityAlert, 31))
	is.NoErr(err)
	is.True(warning != nil)

	is.Equal(2, len(d.storage.AddAlertCalls()))
	is.Equal(2, len(d.dispatcher.DispatchCalls()))
}

func TestProcessAdmitsWhenCacheFails(t *testing.T) {
	is, ctx, svc, d := testSetup(t)

	d.cache.AdmitFunc = func(ctx context.Context, sensorID string, severity types.Severity) (bool, error) {
		return false, errors.New("connection refused")
	}

	event, err := svc.Process(ctx, testEvaluation(types.SeverityAlert, 31))
	is.NoErr(err)
	is.True(event != nil)
	is.Equal(1, len(d.storage.AddAlertCalls()))
}

func TestProcessReturnsStorageErrors(t *testing.T) {
	is, ctx, svc, d := testSetup(t)

	d.storage.AddAlertFunc = func(ctx context.Context, alert types.AlertEvent) error {
		return storage.ErrStoreFailed
	}

	_, err := svc.Process(ctx, testEvaluation(types.SeverityAlert, 31))
	is.True(errors.Is(err, storage.ErrStoreFailed))
	is.Equal(0, len(d.messenger.PublishOnTopicCalls()))
}

func TestProcessIgnoresPublishFailures(t *testing.T) {
	is, ctx, svc, d := testSetup(t)

	d.messenger.PublishOnTopicFunc = func(ctx context.Context, message messaging.TopicMessage) error {
		return errors.New("broker down")
	}

	event, err := svc.Process(ctx, testEvaluation(types.SeverityAlert, 31))
	is.NoErr(err)
	is.True(event != nil)
}

func TestInvalidateClearsCacheAndPublishes(t *testing.T) {
	is, ctx, svc, d := testSetup(t)

	is.NoErr(svc.Invalidate(ctx, "sensor-1"))
	is.Equal("sensor-1", d.cache.InvalidateCalls()[0].SensorID)

	msg, ok := d.messenger.PublishOnTopicCalls()[0].Message.(*types.CooldownsInvalidated)
	is.True(ok)
	is.Equal("sensor-1", msg.SensorID)

	is.Equal(ErrMissingSensorID, svc.Invalidate(ctx, ""))
	is.Equal(ErrMissingSensorID, svc.Invalidate(ctx, "  "))
}

func TestInvalidateWithMixedCaseClearsStoredCooldowns(t *testing.T) {
	is, ctx, _, d := testSetup(t)

	cache := dedup.NewMemoryCache(ctx, dedup.DefaultConfig(), time.Minute)
	svc := New(d.storage, cache, d.dispatcher, d.messenger, dedup.DefaultConfig())

	admitted, err := cache.Admit(ctx, "s1", types.SeverityAlert)
	is.NoErr(err)
	is.True(admitted)

	admitted, _ = cache.Admit(ctx, "s1", types.SeverityAlert)
	is.True(!admitted)

	is.NoErr(svc.Invalidate(ctx, "S1"))

	admitted, err = cache.Admit(ctx, "s1", types.SeverityAlert)
	is.NoErr(err)
	is.True(admitted)

	msg := d.messenger.PublishOnTopicCalls()[0].Message.(*types.CooldownsInvalidated)
	is.Equal("s1", msg.SensorID)
}

func TestPrimeLoadsRecentHistory(t *testing.T) {
	is, ctx, svc, d := testSetup(t)

	history := make([]types.AlertEvent, 0, 700)
	for range 700 {
		history = append(history, types.AlertEvent{SensorID: "sensor-1", Severity: types.SeverityAlert, CreatedAt: time.Now().UTC()})
	}

	d.storage.QueryAlertsFunc = func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.AlertEvent], error) {
		c := &storage.Condition{}
		for _, f := range conditions {
			f(c)
		}

		page := history[min(c.Offset(), len(history)):min(c.Offset()+c.Limit(), len(history))]
		return types.Collection[types.AlertEvent]{Data: page, Count: uint64(len(page)), TotalCount: uint64(len(history))}, nil
	}

	primed := 0
	d.cache.PrimeFunc = func(ctx context.Context, alerts []types.AlertEvent) error {
		primed += len(alerts)
		return nil
	}

	is.NoErr(svc.Prime(ctx))
	is.Equal(700, primed)
	is.Equal(2, len(d.cache.PrimeCalls()))
}

func TestCooldownsInvalidatedHandler(t *testing.T) {
	is := is.New(t)

	cache := &dedup.CacheMock{
		InvalidateFunc: func(ctx context.Context, sensorID string) error {
			return nil
		},
	}

	msg := &messaging.IncomingTopicMessageMock{
		BodyFunc: func() []byte {
			b, _ := json.Marshal(types.CooldownsInvalidated{SensorID: "Sensor-9"})
			return b
		},
	}

	handler := NewCooldownsInvalidatedHandler(cache)
	handler(context.Background(), msg, slog.Default())

	is.Equal(1, len(cache.InvalidateCalls()))
	is.Equal("sensor-9", cache.InvalidateCalls()[0].SensorID)
}

func TestMessageForDescendingMetric(t *testing.T) {
	is := is.New(t)

	v := types.Verdict{
		SensorID:   "tank-3",
		Metric:     "level",
		Severity:   types.SeverityAlert,
		Value:      9,
		Polarity:   types.Descending,
		Thresholds: types.Thresholds{Warning: fp(10), Critical: fp(5)},
	}

	is.Equal("level on tank-3 is 9, at or below the warning threshold 10", Message(v, ""))
}
