package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/diwise/iot-telemetry-alerts/pkg/types"
	"github.com/jackc/pgx/v5"
)

func (s *Storage) AddAlert(ctx context.Context, alert types.AlertEvent) error {
	if alert.ID == "" || alert.SensorID == "" {
		return ErrNoID
	}

	if alert.Tenant == "" {
		return ErrMissingTenant
	}

	delivery, err := json.Marshal(alert.Delivery)
	if err != nil {
		return err
	}

	args := pgx.NamedArgs{
		"alert_id":    alert.ID,
		"sensor_id":   alert.SensorID,
		"location_id": alert.LocationID,
		"metric":      alert.Metric,
		"severity":    int(alert.Severity),
		"value":       alert.Value,
		"unit":        alert.Unit,
		"message":     alert.Message,
		"observed_at": alert.ObservedAt.UTC(),
		"delivery":    string(delivery),
		"tenant":      alert.Tenant,
		"created_on":  alert.CreatedAt.UTC(),
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO alert_history (alert_id, sensor_id, location_id, metric, severity, value, unit, message, observed_at, delivery, tenant, created_on)
		VALUES (@alert_id, @sensor_id, @location_id, @metric, @severity, @value, @unit, @message, @observed_at, @delivery, @tenant, @created_on)
		ON CONFLICT (alert_id) DO NOTHING
	`, args)
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}

	return nil
}

func (s *Storage) QueryAlerts(ctx context.Context, conditions ...ConditionFunc) (types.Collection[types.AlertEvent], error) {
	condition := &Condition{}
	for _, f := range conditions {
		f(condition)
	}

	args := condition.NamedArgs()

	query := fmt.Sprintf(`
		SELECT alert_id, sensor_id, location_id, metric, severity, value, unit, message, observed_at, delivery, tenant, created_on, count(*) OVER () AS count
		FROM alert_history
		%s
		ORDER BY created_on %s
		%s
	`, condition.Where("created_on"), condition.SortOrder(), condition.OffsetLimit())

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return types.Collection[types.AlertEvent]{}, err
	}

	var alert_id, sensor_id, metric, message, tenant string
	var unit *string
	var location_id, severity int
	var value float64
	var observed_at, created_on time.Time
	var delivery []byte
	var count int64

	alerts := make([]types.AlertEvent, 0)

	_, err = pgx.ForEachRow(rows, []any{&alert_id, &sensor_id, &location_id, &metric, &severity, &value, &unit, &message, &observed_at, &delivery, &tenant, &created_on, &count}, func() error {
		alert := types.AlertEvent{
			ID:         alert_id,
			SensorID:   sensor_id,
			LocationID: location_id,
			Metric:     metric,
			Severity:   types.Severity(severity),
			Value:      value,
			Message:    message,
			ObservedAt: observed_at.UTC(),
			CreatedAt:  created_on.UTC(),
			Tenant:     tenant,
		}
		if unit != nil {
			alert.Unit = *unit
		}

		if len(delivery) > 0 {
			report := types.DeliveryReport{}
			if err := json.Unmarshal(delivery, &report); err == nil {
				alert.Delivery = report
			}
		}

		alerts = append(alerts, alert)

		return nil
	})
	if err != nil {
		return types.Collection[types.AlertEvent]{}, err
	}

	return types.Collection[types.AlertEvent]{
		Data:       alerts,
		Count:      uint64(len(alerts)),
		Limit:      uint64(condition.Limit()),
		Offset:     uint64(condition.Offset()),
		TotalCount: uint64(count),
	}, nil
}
