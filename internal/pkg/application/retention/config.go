package retention

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

type HourlyConfig struct {
	Enabled         bool `yaml:"enabled"`
	StartAfterHours int  `yaml:"startafterhours"`
	RangeDays       int  `yaml:"rangedays"`
}

type DailyConfig struct {
	Enabled        bool `yaml:"enabled"`
	StartAfterDays int  `yaml:"startafterdays"`
	RangeDays      int  `yaml:"rangedays"`
}

type PurgeConfig struct {
	Enabled    bool `yaml:"enabled"`
	MaxAgeDays int  `yaml:"maxagedays"`
}

type Config struct {
	Schedule string `yaml:"schedule"`
	Timezone string `yaml:"timezone"`

	Hourly HourlyConfig `yaml:"hourly"`
	Daily  DailyConfig  `yaml:"daily"`
	Purge  PurgeConfig  `yaml:"purge"`

	ChunkSize    int           `yaml:"chunksize"`
	ChunkTimeout time.Duration `yaml:"chunktimeout"`
	Yield        time.Duration `yaml:"yield"`

	LeaseKey string        `yaml:"leasekey"`
	LeaseTTL time.Duration `yaml:"leasettl"`
}

func DefaultConfig() Config {
	return Config{
		Schedule:     "0 3 * * *",
		Timezone:     "UTC",
		Hourly:       HourlyConfig{Enabled: true, StartAfterHours: 24, RangeDays: 7},
		Daily:        DailyConfig{Enabled: true, StartAfterDays: 7, RangeDays: 30},
		Purge:        PurgeConfig{Enabled: true, MaxAgeDays: 365},
		ChunkSize:    500,
		ChunkTimeout: 30 * time.Second,
		Yield:        100 * time.Millisecond,
		LeaseKey:     "iot-telemetry-alerts:retention:lease",
		LeaseTTL:     time.Hour,
	}
}

func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

func (c Config) Validate() error {
	if _, err := cron.ParseStandard(c.Schedule); err != nil {
		return fmt.Errorf("invalid retention schedule %q: %w", c.Schedule, err)
	}

	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid retention timezone %q: %w", c.Timezone, err)
	}

	if c.Hourly.Enabled && (c.Hourly.StartAfterHours < 1 || c.Hourly.RangeDays < 1) {
		return fmt.Errorf("hourly compaction needs startafterhours and rangedays of at least 1")
	}

	if c.Daily.Enabled && (c.Daily.StartAfterDays < 1 || c.Daily.RangeDays < 1) {
		return fmt.Errorf("daily compaction needs startafterdays and rangedays of at least 1")
	}

	if c.Purge.Enabled && c.Purge.MaxAgeDays < 1 {
		return fmt.Errorf("purge needs maxagedays of at least 1")
	}

	if c.ChunkSize < 1 || c.ChunkTimeout <= 0 || c.Yield < 0 {
		return fmt.Errorf("chunk size and chunk timeout must be positive")
	}

	return nil
}
