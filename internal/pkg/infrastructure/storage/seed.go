package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/diwise/iot-telemetry-alerts/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
)

// SeedSensors reads sensors and their alert configurations from a semicolon
// separated file with the columns
//
//	sensor_id;metric;unit;location_id;active;tenant;name;warning;critical;channels;recipients
//
// Recipients are comma separated entries of the form name:email:phone:TIER:channel+channel.
//
// Every row is validated before anything is written. A stored alert configuration
// is only replaced when the store has seeding of existing configurations enabled.
func SeedSensors(ctx context.Context, s Store, reader io.ReadCloser, validTenants []string, validate ConfigValidator) error {
	defer reader.Close()

	r := csv.NewReader(reader)
	r.Comma = ';'
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return err
	}

	log := logging.GetFromContext(ctx)

	records := make([]sensorRecord, 0, len(rows))
	var errs []error

	for i, row := range rows {
		if i == 0 && len(row) > 0 && row[0] == "sensor_id" {
			continue
		}

		rec, err := newSensorRecord(row)
		if err == nil && validate != nil {
			err = validate(rec.sensor, rec.config)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("row %d: %w", i+1, err))
			continue
		}

		records = append(records, rec)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	log.Info("loaded sensors from file", "count", len(records))

	seedExisting := s.IsSeedExistingConfigurationsEnabled(ctx)

	isAllowed := func(tenant string) bool {
		return len(validTenants) == 0 || slices.Contains(validTenants, tenant)
	}

	for _, rec := range records {
		if !isAllowed(rec.sensor.Tenant) {
			log.Warn("tenant not allowed", "sensor_id", rec.sensor.SensorID, "tenant", rec.sensor.Tenant)
			continue
		}

		err = s.CreateOrUpdateSensor(ctx, rec.sensor)
		if err != nil {
			log.Error("could not create or update sensor", "sensor_id", rec.sensor.SensorID, "err", err.Error())
			return err
		}

		if !seedExisting {
			_, err = s.GetAlertConfiguration(ctx, rec.sensor.SensorID)
			if err == nil {
				log.Debug("keeping stored alert configuration", "sensor_id", rec.sensor.SensorID)
				continue
			}
			if !errors.Is(err, ErrNoRows) {
				log.Error("could not fetch alert configuration", "sensor_id", rec.sensor.SensorID, "err", err.Error())
				return err
			}
		}

		err = s.SetAlertConfiguration(ctx, rec.config)
		if err != nil {
			log.Error("could not store alert configuration", "sensor_id", rec.sensor.SensorID, "err", err.Error())
			return err
		}
	}

	return nil
}

// ConfigValidator rejects seeded alert configurations the running service could not honour.
type ConfigValidator func(sensor types.Sensor, cfg types.AlertConfiguration) error

type sensorRecord struct {
	sensor types.Sensor
	config types.AlertConfiguration
}

func newSensorRecord(r []string) (sensorRecord, error) {
	if len(r) < 7 {
		return sensorRecord{}, fmt.Errorf("expected at least 7 columns, got %d", len(r))
	}

	col := func(i int) string {
		if i < len(r) {
			return strings.TrimSpace(r[i])
		}
		return ""
	}

	sensorID := types.NormalizeSensorID(col(0))
	if sensorID == "" {
		return sensorRecord{}, ErrNoID
	}

	locationID := 0
	if col(3) != "" {
		id, err := strconv.Atoi(col(3))
		if err != nil {
			return sensorRecord{}, fmt.Errorf("invalid location id %q", col(3))
		}
		locationID = id
	}

	if col(5) == "" {
		return sensorRecord{}, ErrMissingTenant
	}

	sensor := types.Sensor{
		SensorID:   sensorID,
		Metric:     strings.ToLower(col(1)),
		Unit:       col(2),
		LocationID: locationID,
		Active:     col(4) != "false",
		Tenant:     col(5),
		Name:       col(6),
	}

	cfg := types.AlertConfiguration{
		SensorID:    sensorID,
		Active:      sensor.Active,
		MinSeverity: types.SeverityAlert,
		Recipients:  []types.Recipient{},
	}

	parseThreshold := func(s string) (*float64, error) {
		if s == "" {
			return nil, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || !types.IsFinite(f) {
			return nil, fmt.Errorf("invalid threshold %q", s)
		}
		return &f, nil
	}

	var err error
	if cfg.Thresholds.Warning, err = parseThreshold(col(7)); err != nil {
		return sensorRecord{}, err
	}
	if cfg.Thresholds.Critical, err = parseThreshold(col(8)); err != nil {
		return sensorRecord{}, err
	}

	for _, c := range splitNonEmpty(col(9), ",") {
		ch, err := types.ParseChannel(c)
		if err != nil {
			return sensorRecord{}, err
		}
		switch ch {
		case types.ChannelEmail:
			cfg.NotificationChannels.Email = true
		case types.ChannelSMS:
			cfg.NotificationChannels.SMS = true
		case types.ChannelWebSocket:
			cfg.NotificationChannels.WebSocket = true
		case types.ChannelPush:
			cfg.NotificationChannels.Push = true
		}
	}

	for _, entry := range splitNonEmpty(col(10), ",") {
		rcpt, err := parseRecipient(entry)
		if err != nil {
			return sensorRecord{}, err
		}
		cfg.Recipients = append(cfg.Recipients, rcpt)
	}

	return sensorRecord{sensor: sensor, config: cfg}, nil
}

func parseRecipient(s string) (types.Recipient, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 4 {
		return types.Recipient{}, fmt.Errorf("invalid recipient %q", s)
	}

	tier, err := types.ParseTier(parts[3])
	if err != nil {
		return types.Recipient{}, err
	}

	rcpt := types.Recipient{
		Name:  parts[0],
		Email: parts[1],
		Phone: parts[2],
		Tier:  tier,
	}

	if len(parts) > 4 {
		for _, c := range splitNonEmpty(parts[4], "+") {
			ch, err := types.ParseChannel(c)
			if err != nil {
				return types.Recipient{}, err
			}
			rcpt.Channels = append(rcpt.Channels, ch)
		}
	}

	return rcpt, nil
}

func splitNonEmpty(s, sep string) []string {
	result := []string{}
	for _, p := range strings.Split(s, sep) {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}
