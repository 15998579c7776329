package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

type Granularity string

const (
	Hourly Granularity = "hour"
	Daily  Granularity = "day"
)

func (g Granularity) Duration() time.Duration {
	if g == Daily {
		return 24 * time.Hour
	}
	return time.Hour
}

// Truncate aligns t (in UTC) to the start of its bucket.
func (g Granularity) Truncate(t time.Time) time.Time {
	t = t.UTC()
	if g == Daily {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	return t.Truncate(time.Hour)
}

// CompactionBuckets returns at most limit buckets within [from, to) that still hold
// more than one reading. Buckets already collapsed are never returned again.
func (s *Storage) CompactionBuckets(ctx context.Context, granularity Granularity, from, to time.Time, limit int) ([]Bucket, error) {
	if granularity != Hourly && granularity != Daily {
		return nil, fmt.Errorf("unsupported granularity %q", granularity)
	}

	args := pgx.NamedArgs{
		"granularity": string(granularity),
		"from":        from.UTC(),
		"to":          to.UTC(),
		"limit":       limit,
	}

	rows, err := s.pool.Query(ctx, `
		SELECT sensor_id, date_trunc(@granularity, observed_at AT TIME ZONE 'UTC') AS bucket, count(*) AS n
		FROM readings
		WHERE observed_at >= @from AND observed_at < @to
		GROUP BY sensor_id, bucket
		HAVING count(*) > 1
		ORDER BY bucket ASC, sensor_id ASC
		LIMIT @limit
	`, args)
	if err != nil {
		return nil, err
	}

	var sensor_id string
	var bucket time.Time
	var n int64

	buckets := make([]Bucket, 0, limit)

	_, err = pgx.ForEachRow(rows, []any{&sensor_id, &bucket, &n}, func() error {
		start := time.Date(bucket.Year(), bucket.Month(), bucket.Day(), bucket.Hour(), 0, 0, 0, time.UTC)
		buckets = append(buckets, Bucket{
			SensorID: sensor_id,
			Start:    start,
			End:      start.Add(granularity.Duration()),
			Count:    n,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return buckets, nil
}

// CollapseBucket keeps the latest reading in the bucket and deletes the rest.
func (s *Storage) CollapseBucket(ctx context.Context, b Bucket) (int64, error) {
	args := pgx.NamedArgs{
		"sensor_id": b.SensorID,
		"start":     b.Start.UTC(),
		"end":       b.End.UTC(),
	}

	tag, err := s.pool.Exec(ctx, `
		DELETE FROM readings
		WHERE sensor_id = @sensor_id AND observed_at >= @start AND observed_at < @end
		AND reading_id <> (
			SELECT reading_id FROM readings
			WHERE sensor_id = @sensor_id AND observed_at >= @start AND observed_at < @end
			ORDER BY observed_at DESC, reading_id DESC
			LIMIT 1
		)
	`, args)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func (s *Storage) PurgeReadings(ctx context.Context, before time.Time, limit int) (int64, error) {
	args := pgx.NamedArgs{
		"before": before.UTC(),
		"limit":  limit,
	}

	tag, err := s.pool.Exec(ctx, `
		DELETE FROM readings
		WHERE reading_id IN (
			SELECT reading_id FROM readings
			WHERE observed_at < @before
			ORDER BY observed_at ASC
			LIMIT @limit
		)
	`, args)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}
