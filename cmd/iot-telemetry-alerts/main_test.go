package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/diwise/iot-telemetry-alerts/internal/pkg/application/alertconfig"
	"github.com/diwise/iot-telemetry-alerts/internal/pkg/application/dedup"
	"github.com/diwise/iot-telemetry-alerts/internal/pkg/application/evaluator"
	"github.com/diwise/iot-telemetry-alerts/pkg/types"
	"github.com/matryer/is"
)

func TestConfigOverlaysDefaults(t *testing.T) {
	is := is.New(t)

	cfg, err := parseExternalConfigFile(context.Background(), io.NopCloser(strings.NewReader(configYaml)))
	is.NoErr(err)

	is.Equal(2, len(cfg.MetricTypes))
	is.Equal(types.Descending, cfg.MetricTypes[1].Polarity)
	is.Equal(35.0, *cfg.MetricTypes[0].Thresholds.Critical)

	is.Equal(10*time.Minute, cfg.Cooldowns.Alert)
	is.Equal(dedup.DefaultConfig().Critical, cfg.Cooldowns.Critical)

	is.Equal(8, cfg.Ingestion.Workers)
	is.Equal(2*time.Minute, cfg.Ingestion.ClockSkew)

	is.Equal("Europe/Stockholm", cfg.Retention.Timezone)
	is.Equal("0 3 * * *", cfg.Retention.Schedule)
	is.True(!cfg.Retention.Purge.Enabled)
	is.Equal(2, cfg.Notification.MaxRetries)
}

func TestInvalidConfigIsRejected(t *testing.T) {
	is := is.New(t)

	_, err := parseExternalConfigFile(context.Background(), io.NopCloser(strings.NewReader(`
cooldowns:
  alert: 1m
  critical: 5m
retention:
  schedule: "every now and then"
`)))
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), "critical cooldown"))
}

func TestEmptyConfigUsesDefaults(t *testing.T) {
	is := is.New(t)

	cfg, err := parseExternalConfigFile(context.Background(), io.NopCloser(strings.NewReader("")))
	is.NoErr(err)
	is.Equal(defaultAppConfig().Retention, cfg.Retention)
}

func TestOpenOptional(t *testing.T) {
	is := is.New(t)

	f, err := openOptional(filepath.Join(t.TempDir(), "missing.csv"))
	is.NoErr(err)
	is.True(f == nil)

	f, err = openOptional("")
	is.NoErr(err)
	is.True(f == nil)
}

func TestSplitList(t *testing.T) {
	is := is.New(t)

	is.Equal([]string{"kafka-1:9092", "kafka-2:9092"}, splitList(" kafka-1:9092, ,kafka-2:9092"))
	is.Equal(0, len(splitList("")))
}

func TestSeedValidatorChecksThresholdsPerPolarity(t *testing.T) {
	is := is.New(t)

	fp := func(f float64) *float64 { return &f }

	validate := seedValidator(evaluator.New(&evaluator.EvaluatorConfig{
		MetricTypes: []evaluator.MetricType{{Name: "level", Polarity: types.Descending}},
	}))

	inverted := types.AlertConfiguration{SensorID: "s1", Thresholds: types.Thresholds{Warning: fp(40), Critical: fp(30)}}

	err := validate(types.Sensor{SensorID: "s1", Metric: "temperature"}, inverted)
	is.True(errors.Is(err, alertconfig.ErrInvalidConfiguration))

	err = validate(types.Sensor{SensorID: "s1", Metric: "level"}, inverted)
	is.NoErr(err)
}

func TestControlHandler(t *testing.T) {
	is := is.New(t)

	server := httptest.NewServer(controlHandler())
	defer server.Close()

	resp, err := http.Get(server.URL + "/health")
	is.NoErr(err)
	resp.Body.Close()
	is.Equal(http.StatusNoContent, resp.StatusCode)

	resp, err = http.Get(server.URL + "/metrics")
	is.NoErr(err)
	defer resp.Body.Close()
	is.Equal(http.StatusOK, resp.StatusCode)
}

const configYaml string = `
metrictypes:
  - name: temperature
    unit: °C
    polarity: ascending
    thresholds:
      warning: 30
      critical: 35
  - name: level
    unit: "%"
    polarity: descending
    thresholds:
      warning: 20
      critical: 10
cooldowns:
  alert: 10m
ingestion:
  workers: 8
retention:
  timezone: Europe/Stockholm
  purge:
    enabled: false
`
