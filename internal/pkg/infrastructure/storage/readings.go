package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diwise/iot-telemetry-alerts/pkg/types"
	"github.com/jackc/pgx/v5"
)

func (s *Storage) AddReading(ctx context.Context, r types.Reading) (int64, error) {
	if r.SensorID == "" {
		return 0, ErrNoID
	}

	args := pgx.NamedArgs{
		"sensor_id":   r.SensorID,
		"metric":      r.Metric,
		"value":       r.Value,
		"unit":        r.Unit,
		"observed_at": r.Timestamp.UTC(),
		"location_id": r.LocationID,
	}

	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO readings (sensor_id, metric, value, unit, observed_at, location_id)
		VALUES (@sensor_id, @metric, @value, @unit, @observed_at, @location_id)
		RETURNING reading_id
	`, args).Scan(&id)
	if err != nil {
		return 0, errors.Join(ErrStoreFailed, err)
	}

	return id, nil
}

func (s *Storage) QueryReadings(ctx context.Context, conditions ...ConditionFunc) (types.Collection[types.Reading], error) {
	condition := &Condition{}
	for _, f := range conditions {
		f(condition)
	}

	args := condition.NamedArgs()

	query := fmt.Sprintf(`
		SELECT reading_id, sensor_id, metric, value, unit, observed_at, location_id, count(*) OVER () AS count
		FROM readings
		%s
		ORDER BY observed_at %s, reading_id %s
		%s
	`, condition.Where("observed_at"), condition.SortOrder(), condition.SortOrder(), condition.OffsetLimit())

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return types.Collection[types.Reading]{}, err
	}

	var reading_id, count int64
	var sensor_id, metric string
	var unit *string
	var value float64
	var observed_at time.Time
	var location_id int

	readings := make([]types.Reading, 0)

	_, err = pgx.ForEachRow(rows, []any{&reading_id, &sensor_id, &metric, &value, &unit, &observed_at, &location_id, &count}, func() error {
		r := types.Reading{
			ID:         reading_id,
			SensorID:   sensor_id,
			Metric:     metric,
			Value:      value,
			Timestamp:  observed_at.UTC(),
			LocationID: location_id,
		}
		if unit != nil {
			r.Unit = *unit
		}

		readings = append(readings, r)

		return nil
	})
	if err != nil {
		return types.Collection[types.Reading]{}, err
	}

	return types.Collection[types.Reading]{
		Data:       readings,
		Count:      uint64(len(readings)),
		Limit:      uint64(condition.Limit()),
		Offset:     uint64(condition.Offset()),
		TotalCount: uint64(count),
	}, nil
}
