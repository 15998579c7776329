package alertconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/diwise/iot-telemetry-alerts/internal/pkg/application/evaluator"
	"github.com/diwise/iot-telemetry-alerts/internal/pkg/infrastructure/storage"
	"github.com/diwise/iot-telemetry-alerts/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
)

var (
	ErrSensorNotFound       = errors.New("sensor not found")
	ErrInvalidConfiguration = errors.New("invalid alert configuration")
)

//go:generate moq -rm -out configstorage_mock.go . ConfigStorage
type ConfigStorage interface {
	GetSensor(ctx context.Context, sensorID string) (types.Sensor, error)
	GetAlertConfiguration(ctx context.Context, sensorID string) (types.AlertConfiguration, error)
	SetAlertConfiguration(ctx context.Context, cfg types.AlertConfiguration) error
}

// Invalidator clears cooldowns so a changed configuration takes effect immediately.
type Invalidator interface {
	Invalidate(ctx context.Context, sensorID string) error
}

//go:generate moq -rm -out alertconfig_mock.go . AlertConfigService
type AlertConfigService interface {
	Get(ctx context.Context, sensorID string) (types.AlertConfiguration, error)
	Set(ctx context.Context, cfg types.AlertConfiguration) error
}

type svc struct {
	storage     ConfigStorage
	evaluator   evaluator.Evaluator
	invalidator Invalidator
}

func New(s ConfigStorage, e evaluator.Evaluator, i Invalidator) AlertConfigService {
	return &svc{storage: s, evaluator: e, invalidator: i}
}

func (s *svc) Get(ctx context.Context, sensorID string) (types.AlertConfiguration, error) {
	cfg, err := s.storage.GetAlertConfiguration(ctx, types.NormalizeSensorID(sensorID))
	if errors.Is(err, storage.ErrNoRows) {
		return types.AlertConfiguration{}, ErrSensorNotFound
	}
	return cfg, err
}

// Set replaces the configuration of a registered sensor. Replacing with an
// identical configuration is a no-op apart from clearing cooldowns.
func (s *svc) Set(ctx context.Context, cfg types.AlertConfiguration) error {
	cfg.SensorID = types.NormalizeSensorID(cfg.SensorID)

	sensor, err := s.storage.GetSensor(ctx, cfg.SensorID)
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return ErrSensorNotFound
		}
		return err
	}

	if err := Validate(cfg, s.evaluator.Polarity(sensor.Metric)); err != nil {
		return err
	}

	if err := s.storage.SetAlertConfiguration(ctx, cfg); err != nil {
		return err
	}

	log := logging.GetFromContext(ctx).With("sensor_id", cfg.SensorID)
	log.Info("alert configuration updated")

	if err := s.invalidator.Invalidate(ctx, cfg.SensorID); err != nil {
		log.Warn("could not invalidate cooldowns after configuration change", "err", err.Error())
	}

	return nil
}

func Validate(cfg types.AlertConfiguration, p types.Polarity) error {
	if cfg.SensorID == "" {
		return fmt.Errorf("%w: missing sensor id", ErrInvalidConfiguration)
	}

	if err := evaluator.ValidateThresholds(cfg.Thresholds, p); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	for _, r := range cfg.Recipients {
		if r.Name == "" {
			return fmt.Errorf("%w: recipient without name", ErrInvalidConfiguration)
		}
		if r.Tier < types.TierBaja || r.Tier > types.TierCritica {
			return fmt.Errorf("%w: recipient %s has no valid tier", ErrInvalidConfiguration, r.Name)
		}
		if r.Email == "" && r.Phone == "" && len(r.Channels) == 0 {
			return fmt.Errorf("%w: recipient %s has no way to be reached", ErrInvalidConfiguration, r.Name)
		}
	}

	return nil
}
