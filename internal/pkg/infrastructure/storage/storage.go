package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diwise/iot-telemetry-alerts/pkg/types"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Config struct {
	host     string
	user     string
	password string
	port     string
	dbname   string
	sslmode  string

	seedExistingConfigurations bool
}

func (c Config) ConnStr() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", c.user, c.password, c.host, c.port, c.dbname, c.sslmode)
}

func NewConfig(host, user, password, port, dbname, sslmode string, seedExistingConfigurations bool) Config {
	return Config{
		host:     host,
		user:     user,
		password: password,
		port:     port,
		dbname:   dbname,
		sslmode:  sslmode,

		seedExistingConfigurations: seedExistingConfigurations,
	}
}

func NewPool(ctx context.Context, config Config) (*pgxpool.Pool, error) {
	p, err := pgxpool.New(ctx, config.ConnStr())
	if err != nil {
		return nil, err
	}

	err = p.Ping(ctx)
	if err != nil {
		return nil, err
	}

	return p, nil
}

var (
	ErrNoRows        = errors.New("no rows in result set")
	ErrStoreFailed   = errors.New("could not store data")
	ErrNoID          = errors.New("data contains no id")
	ErrMissingTenant = errors.New("missing tenant information")
)

// Bucket is one sensor's readings within [Start, End).
type Bucket struct {
	SensorID string
	Start    time.Time
	End      time.Time
	Count    int64
}

//go:generate moq -rm -out store_mock.go . Store
type Store interface {
	Initialize(ctx context.Context) error
	Close()
	IsSeedExistingConfigurationsEnabled(ctx context.Context) bool

	GetSensor(ctx context.Context, sensorID string) (types.Sensor, error)
	CreateOrUpdateSensor(ctx context.Context, sensor types.Sensor) error
	GetAlertConfiguration(ctx context.Context, sensorID string) (types.AlertConfiguration, error)
	SetAlertConfiguration(ctx context.Context, cfg types.AlertConfiguration) error

	AddReading(ctx context.Context, r types.Reading) (int64, error)
	QueryReadings(ctx context.Context, conditions ...ConditionFunc) (types.Collection[types.Reading], error)

	AddAlert(ctx context.Context, alert types.AlertEvent) error
	QueryAlerts(ctx context.Context, conditions ...ConditionFunc) (types.Collection[types.AlertEvent], error)

	CompactionBuckets(ctx context.Context, granularity Granularity, from, to time.Time, limit int) ([]Bucket, error)
	CollapseBucket(ctx context.Context, b Bucket) (int64, error)
	PurgeReadings(ctx context.Context, before time.Time, limit int) (int64, error)
}

type Storage struct {
	pool         *pgxpool.Pool
	seedExisting bool
}

func NewWithPool(pool *pgxpool.Pool) *Storage {
	return &Storage{pool: pool}
}

func New(ctx context.Context, config Config) (*Storage, error) {
	pool, err := NewPool(ctx, config)
	if err != nil {
		return nil, err
	}

	return &Storage{pool: pool, seedExisting: config.seedExistingConfigurations}, nil
}

// IsSeedExistingConfigurationsEnabled reports whether seeding may replace alert
// configurations that are already stored, such as ones changed through the API.
func (s *Storage) IsSeedExistingConfigurationsEnabled(ctx context.Context) bool {
	return s.seedExisting
}

func (s *Storage) Initialize(ctx context.Context) error {
	return s.CreateTables(ctx)
}

func (s *Storage) CreateTables(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS sensors (
			sensor_id	TEXT 	NOT NULL,
			metric		TEXT 	NOT NULL,
			unit		TEXT 	NULL,
			location_id	INT 	NOT NULL DEFAULT 0,
			active		BOOLEAN	NOT NULL DEFAULT TRUE,
			name		TEXT 	NULL,
			tenant		TEXT 	NOT NULL,
			created_on  timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			modified_on	timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT pkey_sensors PRIMARY KEY (sensor_id)
		);

		CREATE TABLE IF NOT EXISTS alert_configurations (
			sensor_id			TEXT 	NOT NULL,
			active				BOOLEAN	NOT NULL DEFAULT TRUE,
			min_severity		INT 	NOT NULL DEFAULT 1,
			warning_threshold	DOUBLE PRECISION NULL,
			critical_threshold	DOUBLE PRECISION NULL,
			channels			JSONB	NOT NULL,
			recipients			JSONB	NOT NULL,
			created_on  		timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			modified_on			timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT pkey_alert_configurations PRIMARY KEY (sensor_id)
		);

		CREATE TABLE IF NOT EXISTS readings (
			reading_id	BIGSERIAL,
			sensor_id	TEXT 	NOT NULL,
			metric		TEXT 	NOT NULL,
			value		DOUBLE PRECISION NOT NULL,
			unit		TEXT 	NULL,
			observed_at	timestamp with time zone NOT NULL,
			location_id	INT 	NOT NULL DEFAULT 0,
			created_on  timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT pkey_readings PRIMARY KEY (reading_id)
		);

		CREATE TABLE IF NOT EXISTS alert_history (
			alert_id	TEXT 	NOT NULL,
			sensor_id	TEXT 	NOT NULL,
			location_id	INT 	NOT NULL DEFAULT 0,
			metric		TEXT 	NOT NULL,
			severity 	INT 	NOT NULL,
			value		DOUBLE PRECISION NOT NULL,
			unit		TEXT 	NULL,
			message		TEXT 	NOT NULL,
			observed_at timestamp with time zone NOT NULL,
			delivery	JSONB	NULL,
			tenant		TEXT 	NOT NULL,
			created_on  timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT pkey_alert_history PRIMARY KEY (alert_id)
		);

		CREATE INDEX IF NOT EXISTS readings_sensor_observed_idx ON readings (sensor_id, observed_at);
		CREATE INDEX IF NOT EXISTS readings_observed_idx ON readings (observed_at);
		CREATE INDEX IF NOT EXISTS alert_history_sensor_severity_idx ON alert_history (sensor_id, severity, created_on DESC);
	`)
	if err != nil {
		return err
	}

	return nil
}

func (s *Storage) Close() {
	s.pool.Close()
}
