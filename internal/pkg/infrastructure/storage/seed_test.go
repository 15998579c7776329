package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/diwise/iot-telemetry-alerts/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/matryer/is"
)

func setupSeedTest(t *testing.T, csv string) (context.Context, *is.I, *StoreMock, io.ReadCloser) {
	is := is.New(t)

	ctx := logging.NewContextWithLogger(context.Background(), slog.New(&recordingHandler{}))

	s := &StoreMock{
		IsSeedExistingConfigurationsEnabledFunc: func(ctx context.Context) bool {
			return false
		},
		GetAlertConfigurationFunc: func(ctx context.Context, sensorID string) (types.AlertConfiguration, error) {
			return types.AlertConfiguration{}, ErrNoRows
		},
		CreateOrUpdateSensorFunc: func(ctx context.Context, sensor types.Sensor) error {
			return nil
		},
		SetAlertConfigurationFunc: func(ctx context.Context, cfg types.AlertConfiguration) error {
			return nil
		},
	}

	return ctx, is, s, io.NopCloser(strings.NewReader(csv))
}

func loggedRecords(ctx context.Context) []slog.Record {
	h := logging.GetFromContext(ctx).Handler().(*recordingHandler)
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.records
}

func TestSeedSensorsWithAlertConfiguration(t *testing.T) {
	ctx, is, s, csv := setupSeedTest(t, seedCsv)

	err := SeedSensors(ctx, s, csv, []string{"default"}, nil)
	is.NoErr(err)

	is.Equal(1, len(s.CreateOrUpdateSensorCalls()))
	sensor := s.CreateOrUpdateSensorCalls()[0].Sensor
	is.Equal("tank-7", sensor.SensorID)
	is.Equal("level", sensor.Metric)
	is.Equal(12, sensor.LocationID)

	cfg := s.SetAlertConfigurationCalls()[0].Cfg
	is.Equal(20.0, *cfg.Thresholds.Warning)
	is.Equal(10.0, *cfg.Thresholds.Critical)
	is.True(cfg.NotificationChannels.Email)
	is.True(cfg.NotificationChannels.SMS)
	is.True(!cfg.NotificationChannels.Push)
	is.Equal(2, len(cfg.Recipients))
	is.Equal(types.TierAlta, cfg.Recipients[0].Tier)
	is.Equal([]types.Channel{types.ChannelEmail, types.ChannelSMS}, cfg.Recipients[0].Channels)

	logged := loggedRecords(ctx)
	is.Equal("loaded sensors from file", logged[0].Message)
	is.Equal("tenant not allowed", logged[1].Message)
}

func TestSeedSensorsRejectsBrokenRows(t *testing.T) {
	ctx, is, s, csv := setupSeedTest(t, `sensor_id;metric;unit;location_id;active;tenant;name
;temperature;°C;1;true;default;no id
s2;temperature;°C;x;true;default;bad location
s3;temperature;°C;1;true;;no tenant`)

	err := SeedSensors(ctx, s, csv, nil, nil)
	is.True(errors.Is(err, ErrNoID))
	is.True(errors.Is(err, ErrMissingTenant))
	is.True(strings.Contains(err.Error(), "row 3"))
	is.Equal(0, len(s.CreateOrUpdateSensorCalls()))
}

func TestSeedSensorsStopsOnStoreError(t *testing.T) {
	ctx, is, s, csv := setupSeedTest(t, seedCsv)

	s.CreateOrUpdateSensorFunc = func(ctx context.Context, sensor types.Sensor) error {
		return ErrStoreFailed
	}

	err := SeedSensors(ctx, s, csv, nil, nil)
	is.Equal(ErrStoreFailed, err)
	is.Equal(1, len(s.CreateOrUpdateSensorCalls()))
	is.Equal(0, len(s.SetAlertConfigurationCalls()))

	logged := loggedRecords(ctx)
	is.Equal("could not create or update sensor", logged[len(logged)-1].Message)
}

func TestSeedSensorsKeepsStoredConfigurations(t *testing.T) {
	ctx, is, s, csv := setupSeedTest(t, seedCsv)

	s.GetAlertConfigurationFunc = func(ctx context.Context, sensorID string) (types.AlertConfiguration, error) {
		return types.AlertConfiguration{SensorID: sensorID, Active: true}, nil
	}

	err := SeedSensors(ctx, s, csv, []string{"default"}, nil)
	is.NoErr(err)

	is.Equal(1, len(s.CreateOrUpdateSensorCalls()))
	is.Equal("tank-7", s.GetAlertConfigurationCalls()[0].SensorID)
	is.Equal(0, len(s.SetAlertConfigurationCalls()))
}

func TestSeedSensorsReplacesStoredConfigurationsWhenEnabled(t *testing.T) {
	ctx, is, s, csv := setupSeedTest(t, seedCsv)

	s.IsSeedExistingConfigurationsEnabledFunc = func(ctx context.Context) bool {
		return true
	}

	err := SeedSensors(ctx, s, csv, []string{"default"}, nil)
	is.NoErr(err)

	is.Equal(0, len(s.GetAlertConfigurationCalls()))
	is.Equal(1, len(s.SetAlertConfigurationCalls()))
}

func TestSeedSensorsValidatesEveryRowBeforeWriting(t *testing.T) {
	ctx, is, s, csv := setupSeedTest(t, `sensor_id;metric;unit;location_id;active;tenant;name;warning;critical
s1;temperature;°C;1;true;default;freezer;40;30
s2;temperature;°C;1;true;default;fridge;8;10`)

	errInverted := errors.New("critical must be above warning")

	validate := func(sensor types.Sensor, cfg types.AlertConfiguration) error {
		if cfg.Thresholds.IsSet() && *cfg.Thresholds.Critical < *cfg.Thresholds.Warning {
			return errInverted
		}
		return nil
	}

	err := SeedSensors(ctx, s, csv, nil, validate)
	is.True(errors.Is(err, errInverted))
	is.True(strings.Contains(err.Error(), "row 2"))
	is.Equal(0, len(s.CreateOrUpdateSensorCalls()))
	is.Equal(0, len(s.SetAlertConfigurationCalls()))
}

const seedCsv string = `sensor_id;metric;unit;location_id;active;tenant;name;warning;critical;channels;recipients
Tank-7;Level;%;12;true;default;north tank;20;10;email,sms;ops:ops@example.com:+46701234567:ALTA:email+sms,night:::CRITICA:sms
s-other;temperature;°C;3;true;other;elsewhere;;;;`

type recordingHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	r2 := slog.Record{
		Time:    r.Time,
		Level:   r.Level,
		PC:      r.PC,
		Message: r.Message,
	}
	r.Attrs(func(a slog.Attr) bool { r2.AddAttrs(a); return true })

	h.mu.Lock()
	h.records = append(h.records, r2)
	h.mu.Unlock()
	return nil
}

func (h *recordingHandler) WithAttrs(as []slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler         { return h }
