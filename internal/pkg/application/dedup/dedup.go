package dedup

import (
	"context"
	"fmt"
	"time"

	"github.com/diwise/iot-telemetry-alerts/pkg/types"
)

// Cache gates alert emission per (sensor, severity). It is not authoritative,
// losing its contents can at worst let one duplicate alert through.
//
//go:generate moq -rm -out dedup_mock.go . Cache
type Cache interface {
	// Admit atomically checks and refreshes the entry for (sensorID, severity)
	// and reports whether an alert may be emitted.
	Admit(ctx context.Context, sensorID string, severity types.Severity) (bool, error)
	Invalidate(ctx context.Context, sensorID string) error
	// Prime restores entries from previously emitted alerts, e.g. after a restart.
	Prime(ctx context.Context, alerts []types.AlertEvent) error
}

type CooldownConfig struct {
	Backend  string        `yaml:"backend"`
	Alert    time.Duration `yaml:"alert"`
	Critical time.Duration `yaml:"critical"`
	Prefix   string        `yaml:"prefix"`
}

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

func DefaultConfig() CooldownConfig {
	return CooldownConfig{
		Backend:  BackendMemory,
		Alert:    5 * time.Minute,
		Critical: 1 * time.Minute,
		Prefix:   "iot-telemetry-alerts:dedup:",
	}
}

func (c CooldownConfig) Validate() error {
	if c.Alert < 0 || c.Critical < 0 {
		return fmt.Errorf("cooldowns must not be negative")
	}
	if c.Critical > c.Alert {
		return fmt.Errorf("critical cooldown (%s) must not be longer than alert cooldown (%s)", c.Critical, c.Alert)
	}
	if c.Backend != "" && c.Backend != BackendMemory && c.Backend != BackendRedis {
		return fmt.Errorf("unknown dedup backend %q", c.Backend)
	}
	return nil
}

func (c CooldownConfig) For(s types.Severity) time.Duration {
	switch s {
	case types.SeverityAlert:
		return c.Alert
	case types.SeverityCritical:
		return c.Critical
	}
	return 0
}

func (c CooldownConfig) Longest() time.Duration {
	return max(c.Alert, c.Critical)
}

var alerting = []types.Severity{types.SeverityAlert, types.SeverityCritical}
