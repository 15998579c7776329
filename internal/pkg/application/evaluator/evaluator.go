package evaluator

import (
	"fmt"
	"strings"

	"github.com/diwise/iot-telemetry-alerts/pkg/types"
)

type MetricType struct {
	Name       string           `yaml:"name"`
	Unit       string           `yaml:"unit"`
	Polarity   types.Polarity   `yaml:"polarity"`
	Thresholds types.Thresholds `yaml:"thresholds"`
}

type EvaluatorConfig struct {
	MetricTypes []MetricType `yaml:"metrictypes"`
}

var ErrInvalidThresholds = fmt.Errorf("invalid thresholds")

func (c EvaluatorConfig) Validate() error {
	seen := map[string]bool{}

	for _, mt := range c.MetricTypes {
		name := strings.ToLower(mt.Name)
		if name == "" {
			return fmt.Errorf("metric type without name")
		}
		if seen[name] {
			return fmt.Errorf("duplicate metric type %s", mt.Name)
		}
		seen[name] = true

		if mt.Polarity != "" && mt.Polarity != types.Ascending && mt.Polarity != types.Descending {
			return fmt.Errorf("metric type %s has unknown polarity %q", mt.Name, mt.Polarity)
		}

		if err := ValidateThresholds(mt.Thresholds, mt.Polarity); err != nil {
			return fmt.Errorf("metric type %s: %w", mt.Name, err)
		}
	}

	return nil
}

// ValidateThresholds checks that a threshold pair is either unset or ordered so
// that critical is reached after warning in the direction the metric gets worse.
func ValidateThresholds(t types.Thresholds, p types.Polarity) error {
	if t.Warning == nil && t.Critical == nil {
		return nil
	}

	if !t.IsSet() {
		return fmt.Errorf("%w: both warning and critical must be set", ErrInvalidThresholds)
	}

	w, c := *t.Warning, *t.Critical
	if !types.IsFinite(w) || !types.IsFinite(c) {
		return fmt.Errorf("%w: thresholds must be finite", ErrInvalidThresholds)
	}

	if p == types.Descending {
		if c >= w {
			return fmt.Errorf("%w: critical (%g) must be below warning (%g) for descending metrics", ErrInvalidThresholds, c, w)
		}
		return nil
	}

	if c <= w {
		return fmt.Errorf("%w: critical (%g) must be above warning (%g)", ErrInvalidThresholds, c, w)
	}

	return nil
}

//go:generate moq -rm -out evaluator_mock.go . Evaluator
type Evaluator interface {
	Evaluate(r types.Reading, cfg *types.AlertConfiguration) types.Verdict
	Polarity(metric string) types.Polarity
}

type evaluator struct {
	metrics map[string]MetricType
}

func New(cfg *EvaluatorConfig) Evaluator {
	e := &evaluator{
		metrics: map[string]MetricType{},
	}

	if cfg != nil {
		for _, mt := range cfg.MetricTypes {
			e.metrics[strings.ToLower(mt.Name)] = mt
		}
	}

	return e
}

func (e *evaluator) Polarity(metric string) types.Polarity {
	if mt, ok := e.metrics[strings.ToLower(metric)]; ok && mt.Polarity != "" {
		return mt.Polarity
	}
	return types.Ascending
}

func (e *evaluator) Evaluate(r types.Reading, cfg *types.AlertConfiguration) types.Verdict {
	v := types.Verdict{
		SensorID: r.SensorID,
		Metric:   r.Metric,
		Severity: types.SeverityNormal,
		Value:    r.Value,
		Source:   types.ThresholdsNone,
	}

	if cfg == nil || !cfg.Active || !types.IsFinite(r.Value) {
		return v
	}

	v.Polarity = e.Polarity(r.Metric)
	v.Thresholds, v.Source = e.resolve(r.Metric, cfg)

	if v.Source == types.ThresholdsNone {
		return v
	}

	v.Severity = classify(r.Value, *v.Thresholds.Warning, *v.Thresholds.Critical, v.Polarity)

	return v
}

func (e *evaluator) resolve(metric string, cfg *types.AlertConfiguration) (types.Thresholds, types.ThresholdSource) {
	if cfg.Thresholds.IsSet() {
		return cfg.Thresholds, types.ThresholdsFromSensor
	}

	if mt, ok := e.metrics[strings.ToLower(metric)]; ok && mt.Thresholds.IsSet() {
		return mt.Thresholds, types.ThresholdsFromMetric
	}

	return types.Thresholds{}, types.ThresholdsNone
}

// classify compares inclusively, a value exactly on a threshold is alerting.
func classify(value, warning, critical float64, p types.Polarity) types.Severity {
	if p == types.Descending {
		value, warning, critical = -value, -warning, -critical
	}

	switch {
	case value >= critical:
		return types.SeverityCritical
	case value >= warning:
		return types.SeverityAlert
	default:
		return types.SeverityNormal
	}
}
