package ingestion

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/diwise/iot-telemetry-alerts/internal/pkg/application/alerts"
	"github.com/diwise/iot-telemetry-alerts/internal/pkg/application/evaluator"
	"github.com/diwise/iot-telemetry-alerts/internal/pkg/infrastructure/storage"
	"github.com/diwise/iot-telemetry-alerts/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/matryer/is"
)

func fp(f float64) *float64 { return &f }

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testStorage() *SensorStorageMock {
	return &SensorStorageMock{
		GetSensorFunc: func(ctx context.Context, sensorID string) (types.Sensor, error) {
			switch sensorID {
			case "sensor-1":
				return types.Sensor{SensorID: "sensor-1", Metric: "temperature", Unit: "°C", LocationID: 12, Active: true, Tenant: "default"}, nil
			case "sensor-off":
				return types.Sensor{SensorID: "sensor-off", Metric: "temperature", Active: false}, nil
			}
			return types.Sensor{}, storage.ErrNoRows
		},
		GetAlertConfigurationFunc: func(ctx context.Context, sensorID string) (types.AlertConfiguration, error) {
			return types.AlertConfiguration{
				SensorID:             sensorID,
				Active:               true,
				MinSeverity:          types.SeverityAlert,
				Thresholds:           types.Thresholds{Warning: fp(30), Critical: fp(35)},
				NotificationChannels: types.NotificationChannels{WebSocket: true},
			}, nil
		},
		AddReadingFunc: func(ctx context.Context, r types.Reading) (int64, error) {
			return 1, nil
		},
	}
}

func testMessenger() *messaging.MsgContextMock {
	return &messaging.MsgContextMock{
		RegisterTopicMessageHandlerFunc: func(routingKey string, handler messaging.TopicMessageHandler) error {
			return nil
		},
	}
}

type processed struct {
	mu   sync.Mutex
	evts []alerts.Evaluation
	ch   chan alerts.Evaluation
}

func testAlerts() (*alerts.AlertServiceMock, *processed) {
	p := &processed{ch: make(chan alerts.Evaluation, 100)}
	return &alerts.AlertServiceMock{
		ProcessFunc: func(ctx context.Context, e alerts.Evaluation) (*types.AlertEvent, error) {
			p.mu.Lock()
			p.evts = append(p.evts, e)
			p.mu.Unlock()
			p.ch <- e
			return &types.AlertEvent{}, nil
		},
	}, p
}

func testSetup(t *testing.T, cfg Config, s *SensorStorageMock, a alerts.AlertService) (*is.I, context.Context, *ingestor) {
	is := is.New(t)
	ctx := context.Background()

	i := New(cfg, s, evaluator.New(&evaluator.EvaluatorConfig{}), a, testMessenger()).(*ingestor)
	i.now = func() time.Time { return now }

	return is, ctx, i
}

func reading(sensorID string, value float64) types.Reading {
	return types.Reading{SensorID: sensorID, Metric: "temperature", Value: value, Unit: "°C", Timestamp: now.Add(-time.Second)}
}

func TestIngestStoresEvaluatesAndQueuesAlerts(t *testing.T) {
	s := testStorage()
	a, p := testAlerts()
	is, ctx, i := testSetup(t, DefaultConfig(), s, a)

	i.Start(ctx)
	defer i.Stop(ctx)

	v, err := i.Ingest(ctx, reading("sensor-1", 36.2))
	is.NoErr(err)
	is.Equal(types.SeverityCritical, v.Severity)
	is.Equal(types.ThresholdsFromSensor, v.Source)
	is.Equal(1, len(s.AddReadingCalls()))

	select {
	case e := <-p.ch:
		is.Equal("sensor-1", e.Verdict.SensorID)
		is.Equal("default", e.Sensor.Tenant)
		is.True(e.Config.NotificationChannels.WebSocket)
	case <-time.After(2 * time.Second):
		t.Fatal("alert was never processed")
	}
}

func TestIngestMatchesSensorIDRegardlessOfCase(t *testing.T) {
	s := testStorage()
	a, _ := testAlerts()
	is, ctx, i := testSetup(t, DefaultConfig(), s, a)

	v, err := i.Ingest(ctx, reading(" Sensor-1 ", 21))
	is.NoErr(err)
	is.Equal("sensor-1", v.SensorID)
	is.Equal("sensor-1", s.GetSensorCalls()[0].SensorID)
	is.Equal("sensor-1", s.AddReadingCalls()[0].R.SensorID)
}

func TestIngestDoesNotWaitForAlertProcessing(t *testing.T) {
	s := testStorage()
	release := make(chan struct{})
	started := make(chan struct{}, 1)

	a := &alerts.AlertServiceMock{
		ProcessFunc: func(ctx context.Context, e alerts.Evaluation) (*types.AlertEvent, error) {
			started <- struct{}{}
			<-release
			return nil, nil
		},
	}

	is, ctx, i := testSetup(t, DefaultConfig(), s, a)
	i.Start(ctx)

	_, err := i.Ingest(ctx, reading("sensor-1", 40))
	is.NoErr(err)

	<-started

	_, err = i.Ingest(ctx, reading("sensor-1", 20))
	is.NoErr(err)
	is.Equal(2, len(s.AddReadingCalls()))

	close(release)
	is.NoErr(i.Stop(ctx))
}

func TestIngestRejectsInvalidReadings(t *testing.T) {
	future := reading("sensor-1", 20)
	future.Timestamp = now.Add(5 * time.Minute)

	mismatch := reading("sensor-1", 20)
	mismatch.Metric = "humidity"

	tests := map[string]types.Reading{
		"missing sensor id": reading(" ", 20),
		"nan":               reading("sensor-1", math.NaN()),
		"inf":               reading("sensor-1", math.Inf(1)),
		"future timestamp":  future,
		"unknown sensor":    reading("sensor-x", 20),
		"inactive sensor":   reading("sensor-off", 20),
		"metric mismatch":   mismatch,
	}

	for name, r := range tests {
		t.Run(name, func(t *testing.T) {
			s := testStorage()
			a, _ := testAlerts()
			is, ctx, i := testSetup(t, DefaultConfig(), s, a)

			_, err := i.Ingest(ctx, r)
			is.True(errors.Is(err, ErrInvalidReading))
			is.Equal(0, len(s.AddReadingCalls()))
		})
	}
}

func TestIngestAcceptsTimestampWithinClockSkew(t *testing.T) {
	s := testStorage()
	a, _ := testAlerts()
	is, ctx, i := testSetup(t, DefaultConfig(), s, a)

	r := reading("sensor-1", 20)
	r.Timestamp = now.Add(time.Minute)

	v, err := i.Ingest(ctx, r)
	is.NoErr(err)
	is.Equal(types.SeverityNormal, v.Severity)
}

func TestIngestFillsMissingFieldsFromSensor(t *testing.T) {
	s := testStorage()
	a, _ := testAlerts()
	is, ctx, i := testSetup(t, DefaultConfig(), s, a)

	_, err := i.Ingest(ctx, types.Reading{SensorID: "sensor-1", Value: 21})
	is.NoErr(err)

	stored := s.AddReadingCalls()[0].R
	is.Equal("temperature", stored.Metric)
	is.Equal("°C", stored.Unit)
	is.Equal(12, stored.LocationID)
	is.Equal(now, stored.Timestamp)
}

func TestIngestWithoutConfigurationIsNormal(t *testing.T) {
	s := testStorage()
	s.GetAlertConfigurationFunc = func(ctx context.Context, sensorID string) (types.AlertConfiguration, error) {
		return types.AlertConfiguration{}, storage.ErrNoRows
	}
	a, p := testAlerts()
	is, ctx, i := testSetup(t, DefaultConfig(), s, a)

	v, err := i.Ingest(ctx, reading("sensor-1", 1000))
	is.NoErr(err)
	is.Equal(types.SeverityNormal, v.Severity)
	is.Equal(1, len(s.AddReadingCalls()))
	is.Equal(0, len(p.ch))
}

func TestIngestReturnsStorageFailures(t *testing.T) {
	s := testStorage()
	s.AddReadingFunc = func(ctx context.Context, r types.Reading) (int64, error) {
		return 0, storage.ErrStoreFailed
	}
	a, _ := testAlerts()
	is, ctx, i := testSetup(t, DefaultConfig(), s, a)

	_, err := i.Ingest(ctx, reading("sensor-1", 40))
	is.True(errors.Is(err, storage.ErrStoreFailed))
	is.True(!errors.Is(err, ErrInvalidReading))
}

func TestFullQueueDropsAlertJobs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.QueueSize = 1
	cfg.EnqueueTimeout = 10 * time.Millisecond

	s := testStorage()
	a, p := testAlerts()
	is, ctx, i := testSetup(t, cfg, s, a)

	for range 3 {
		v, err := i.Ingest(ctx, reading("sensor-1", 40))
		is.NoErr(err)
		is.Equal(types.SeverityCritical, v.Severity)
	}

	is.Equal(3, len(s.AddReadingCalls()))
	is.Equal(1, len(i.pool.queue))

	i.Start(ctx)
	is.NoErr(i.Stop(ctx))

	is.Equal(1, len(p.evts))
}

func TestStopDrainsQueuedJobs(t *testing.T) {
	s := testStorage()
	a, p := testAlerts()
	is, ctx, i := testSetup(t, DefaultConfig(), s, a)

	for range 5 {
		_, err := i.Ingest(ctx, reading("sensor-1", 31))
		is.NoErr(err)
	}

	i.Start(ctx)
	is.NoErr(i.Stop(ctx))
	is.Equal(5, len(p.evts))

	_, err := i.Ingest(ctx, reading("sensor-1", 31))
	is.NoErr(err)
	is.Equal(5, len(p.evts))
}

func TestPanicInAlertProcessingIsRecovered(t *testing.T) {
	s := testStorage()
	calls := make(chan struct{}, 2)
	a := &alerts.AlertServiceMock{
		ProcessFunc: func(ctx context.Context, e alerts.Evaluation) (*types.AlertEvent, error) {
			calls <- struct{}{}
			panic("boom")
		},
	}

	cfg := DefaultConfig()
	cfg.Workers = 1
	is, ctx, i := testSetup(t, cfg, s, a)
	i.Start(ctx)

	_, err := i.Ingest(ctx, reading("sensor-1", 40))
	is.NoErr(err)
	_, err = i.Ingest(ctx, reading("sensor-1", 40))
	is.NoErr(err)

	is.NoErr(i.Stop(ctx))
	is.Equal(2, len(calls))
}

func TestReadingHandler(t *testing.T) {
	is := is.New(t)

	i := &IngestorMock{
		IngestFunc: func(ctx context.Context, r types.Reading) (types.Verdict, error) {
			return types.Verdict{}, nil
		},
	}

	msg := &messaging.IncomingTopicMessageMock{
		BodyFunc: func() []byte {
			b, _ := json.Marshal(types.NewReadingMessage(types.Reading{SensorID: "sensor-1", Metric: "temperature", Value: 21.5, Timestamp: now}))
			return b
		},
	}

	handler := NewReadingHandler(i)
	handler(context.Background(), msg, slog.Default())

	is.Equal(1, len(i.IngestCalls()))
	r := i.IngestCalls()[0].R
	is.Equal("sensor-1", r.SensorID)
	is.Equal(21.5, r.Value)
	is.Equal(now, r.Timestamp)
}

func TestReadingHandlerDiscardsMessagesWithoutValue(t *testing.T) {
	is := is.New(t)

	i := &IngestorMock{}

	msg := &messaging.IncomingTopicMessageMock{
		BodyFunc: func() []byte {
			return []byte(`{"sensorId":"sensor-1","metric":"temperature","timestamp":1700000000000}`)
		},
	}

	NewReadingHandler(i)(context.Background(), msg, slog.Default())

	is.Equal(0, len(i.IngestCalls()))
}
