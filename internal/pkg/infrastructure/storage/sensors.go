package storage

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/diwise/iot-telemetry-alerts/pkg/types"
	"github.com/jackc/pgx/v5"
)

func (s *Storage) GetSensor(ctx context.Context, sensorID string) (types.Sensor, error) {
	var sensor types.Sensor
	var unit, name *string

	err := s.pool.QueryRow(ctx, `
		SELECT sensor_id, metric, unit, location_id, active, name, tenant
		FROM sensors
		WHERE sensor_id = @sensor_id
	`, pgx.NamedArgs{"sensor_id": sensorID}).Scan(&sensor.SensorID, &sensor.Metric, &unit, &sensor.LocationID, &sensor.Active, &name, &sensor.Tenant)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.Sensor{}, ErrNoRows
		}
		return types.Sensor{}, err
	}

	if unit != nil {
		sensor.Unit = *unit
	}
	if name != nil {
		sensor.Name = *name
	}

	return sensor, nil
}

func (s *Storage) CreateOrUpdateSensor(ctx context.Context, sensor types.Sensor) error {
	if sensor.SensorID == "" {
		return ErrNoID
	}
	if sensor.Tenant == "" {
		return ErrMissingTenant
	}

	args := pgx.NamedArgs{
		"sensor_id":   sensor.SensorID,
		"metric":      sensor.Metric,
		"unit":        sensor.Unit,
		"location_id": sensor.LocationID,
		"active":      sensor.Active,
		"name":        sensor.Name,
		"tenant":      sensor.Tenant,
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO sensors (sensor_id, metric, unit, location_id, active, name, tenant)
		VALUES (@sensor_id, @metric, @unit, @location_id, @active, @name, @tenant)
		ON CONFLICT (sensor_id) DO UPDATE
		SET metric = EXCLUDED.metric, unit = EXCLUDED.unit, location_id = EXCLUDED.location_id,
			active = EXCLUDED.active, name = EXCLUDED.name, tenant = EXCLUDED.tenant, modified_on = CURRENT_TIMESTAMP
	`, args)
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}

	return nil
}

func (s *Storage) GetAlertConfiguration(ctx context.Context, sensorID string) (types.AlertConfiguration, error) {
	var cfg types.AlertConfiguration
	var severity int
	var channels, recipients []byte

	err := s.pool.QueryRow(ctx, `
		SELECT sensor_id, active, min_severity, warning_threshold, critical_threshold, channels, recipients
		FROM alert_configurations
		WHERE sensor_id = @sensor_id
	`, pgx.NamedArgs{"sensor_id": sensorID}).Scan(&cfg.SensorID, &cfg.Active, &severity, &cfg.Thresholds.Warning, &cfg.Thresholds.Critical, &channels, &recipients)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.AlertConfiguration{}, ErrNoRows
		}
		return types.AlertConfiguration{}, err
	}

	cfg.MinSeverity = types.Severity(severity)

	err = json.Unmarshal(channels, &cfg.NotificationChannels)
	if err != nil {
		return types.AlertConfiguration{}, err
	}

	err = json.Unmarshal(recipients, &cfg.Recipients)
	if err != nil {
		return types.AlertConfiguration{}, err
	}

	return cfg, nil
}

func (s *Storage) SetAlertConfiguration(ctx context.Context, cfg types.AlertConfiguration) error {
	if cfg.SensorID == "" {
		return ErrNoID
	}

	if cfg.Recipients == nil {
		cfg.Recipients = []types.Recipient{}
	}

	channels, err := json.Marshal(cfg.NotificationChannels)
	if err != nil {
		return err
	}

	recipients, err := json.Marshal(cfg.Recipients)
	if err != nil {
		return err
	}

	args := pgx.NamedArgs{
		"sensor_id":          cfg.SensorID,
		"active":             cfg.Active,
		"min_severity":       int(cfg.MinSeverity),
		"warning_threshold":  cfg.Thresholds.Warning,
		"critical_threshold": cfg.Thresholds.Critical,
		"channels":           string(channels),
		"recipients":         string(recipients),
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO alert_configurations (sensor_id, active, min_severity, warning_threshold, critical_threshold, channels, recipients)
		VALUES (@sensor_id, @active, @min_severity, @warning_threshold, @critical_threshold, @channels, @recipients)
		ON CONFLICT (sensor_id) DO UPDATE
		SET active = EXCLUDED.active, min_severity = EXCLUDED.min_severity,
			warning_threshold = EXCLUDED.warning_threshold, critical_threshold = EXCLUDED.critical_threshold,
			channels = EXCLUDED.channels, recipients = EXCLUDED.recipients, modified_on = CURRENT_TIMESTAMP
	`, args)
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}

	return nil
}
