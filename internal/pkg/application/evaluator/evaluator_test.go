package evaluator

import (
	"errors"
	"math"
	"testing"

	"github.com/diwise/iot-telemetry-alerts/pkg/types"
	"github.com/matryer/is"
	"go.yaml.in/yaml/v2"
)

func f(v float64) *float64 {
	return &v
}

func testSetup(t *testing.T) (*is.I, Evaluator) {
	is := is.New(t)

	cfg := &EvaluatorConfig{}
	is.NoErr(yaml.Unmarshal([]byte(configYaml), cfg))
	is.NoErr(cfg.Validate())

	return is, New(cfg)
}

func sensorConfig(warning, critical float64) *types.AlertConfiguration {
	return &types.AlertConfiguration{
		SensorID:   "s1",
		Active:     true,
		Thresholds: types.Thresholds{Warning: f(warning), Critical: f(critical)},
	}
}

func TestScenarioAscendingThresholds(t *testing.T) {
	is, e := testSetup(t)
	cfg := sensorConfig(30, 40)

	reading := func(v float64) types.Reading {
		return types.Reading{SensorID: "s1", Metric: "temperature", Value: v}
	}

	is.Equal(types.SeverityNormal, e.Evaluate(reading(25), cfg).Severity)
	is.Equal(types.SeverityAlert, e.Evaluate(reading(35), cfg).Severity)
	is.Equal(types.SeverityCritical, e.Evaluate(reading(45), cfg).Severity)
}

func TestBoundaryValuesAreAlerting(t *testing.T) {
	is, e := testSetup(t)
	cfg := sensorConfig(30, 40)

	is.Equal(types.SeverityAlert, e.Evaluate(types.Reading{Metric: "temperature", Value: 30}, cfg).Severity)
	is.Equal(types.SeverityCritical, e.Evaluate(types.Reading{Metric: "temperature", Value: 40}, cfg).Severity)
	is.Equal(types.SeverityNormal, e.Evaluate(types.Reading{Metric: "temperature", Value: math.Nextafter(30, 0)}, cfg).Severity)
}

func TestNoActiveConfigurationIsAlwaysNormal(t *testing.T) {
	is, e := testSetup(t)

	inactive := sensorConfig(30, 40)
	inactive.Active = false

	for _, v := range []float64{-1000, 0, 35, 45, 1e9} {
		r := types.Reading{SensorID: "s1", Metric: "temperature", Value: v}

		is.Equal(types.SeverityNormal, e.Evaluate(r, nil).Severity)
		is.Equal(types.SeverityNormal, e.Evaluate(r, inactive).Severity)
	}
}

func TestAscendingMetricIsMonotonic(t *testing.T) {
	is, e := testSetup(t)
	cfg := sensorConfig(30, 40)

	previous := types.SeverityNormal
	for v := -50.0; v <= 100.0; v += 0.25 {
		s := e.Evaluate(types.Reading{Metric: "weight", Value: v}, cfg).Severity
		is.True(s >= previous)
		previous = s
	}
	is.Equal(types.SeverityCritical, previous)
}

func TestDescendingMetricInvertsComparison(t *testing.T) {
	is, e := testSetup(t)

	cfg := &types.AlertConfiguration{Active: true}

	is.Equal(types.SeverityNormal, e.Evaluate(types.Reading{Metric: "battery", Value: 80}, cfg).Severity)
	is.Equal(types.SeverityAlert, e.Evaluate(types.Reading{Metric: "battery", Value: 20}, cfg).Severity)
	is.Equal(types.SeverityCritical, e.Evaluate(types.Reading{Metric: "battery", Value: 10}, cfg).Severity)
	is.Equal(types.SeverityCritical, e.Evaluate(types.Reading{Metric: "battery", Value: 3}, cfg).Severity)
}

func TestThresholdResolutionChain(t *testing.T) {
	is, e := testSetup(t)

	override := sensorConfig(5, 6)
	v := e.Evaluate(types.Reading{Metric: "temperature", Value: 5.5}, override)
	is.Equal(types.ThresholdsFromSensor, v.Source)
	is.Equal(types.SeverityAlert, v.Severity)

	partial := &types.AlertConfiguration{Active: true, Thresholds: types.Thresholds{Warning: f(1)}}
	v = e.Evaluate(types.Reading{Metric: "temperature", Value: 5.5}, partial)
	is.Equal(types.ThresholdsFromMetric, v.Source)
	is.Equal(types.SeverityNormal, v.Severity)

	v = e.Evaluate(types.Reading{Metric: "noise", Value: 1e6}, &types.AlertConfiguration{Active: true})
	is.Equal(types.ThresholdsNone, v.Source)
	is.Equal(types.SeverityNormal, v.Severity)
}

func TestEvaluateIsIdempotent(t *testing.T) {
	is, e := testSetup(t)
	cfg := sensorConfig(30, 40)
	r := types.Reading{SensorID: "s1", Metric: "temperature", Value: 35}

	is.Equal(e.Evaluate(r, cfg), e.Evaluate(r, cfg))
}

func TestValidateThresholds(t *testing.T) {
	is := is.New(t)

	is.NoErr(ValidateThresholds(types.Thresholds{}, types.Ascending))
	is.NoErr(ValidateThresholds(types.Thresholds{Warning: f(30), Critical: f(40)}, types.Ascending))
	is.NoErr(ValidateThresholds(types.Thresholds{Warning: f(20), Critical: f(10)}, types.Descending))

	err := ValidateThresholds(types.Thresholds{Warning: f(40), Critical: f(30)}, types.Ascending)
	is.True(errors.Is(err, ErrInvalidThresholds))

	err = ValidateThresholds(types.Thresholds{Warning: f(30)}, types.Ascending)
	is.True(errors.Is(err, ErrInvalidThresholds))
}

func TestValidateRejectsBadMetricTypes(t *testing.T) {
	is := is.New(t)

	cfg := EvaluatorConfig{MetricTypes: []MetricType{{Name: "x", Polarity: "sideways"}}}
	is.True(cfg.Validate() != nil)

	cfg = EvaluatorConfig{MetricTypes: []MetricType{{Name: "x"}, {Name: "X"}}}
	is.True(cfg.Validate() != nil)
}

const configYaml string = `
metrictypes:
  - name: temperature
    unit: °C
    polarity: ascending
    thresholds:
      warning: 8
      critical: 12
  - name: battery
    unit: "%"
    polarity: descending
    thresholds:
      warning: 25
      critical: 10
  - name: weight
    unit: kg
`
