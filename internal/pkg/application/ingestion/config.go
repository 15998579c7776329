package ingestion

import (
	"fmt"
	"time"
)

type Config struct {
	ClockSkew      time.Duration `yaml:"clockskew"`
	Workers        int           `yaml:"workers"`
	QueueSize      int           `yaml:"queuesize"`
	EnqueueTimeout time.Duration `yaml:"enqueuetimeout"`
	JobTimeout     time.Duration `yaml:"jobtimeout"`
}

func DefaultConfig() Config {
	return Config{
		ClockSkew:      2 * time.Minute,
		Workers:        4,
		QueueSize:      1024,
		EnqueueTimeout: 100 * time.Millisecond,
		JobTimeout:     2 * time.Minute,
	}
}

func (c Config) Validate() error {
	if c.ClockSkew < 0 {
		return fmt.Errorf("clock skew must not be negative")
	}
	if c.Workers <= 0 {
		return fmt.Errorf("at least one worker is required")
	}
	if c.QueueSize <= 0 {
		return fmt.Errorf("queue size must be positive")
	}
	if c.EnqueueTimeout <= 0 || c.JobTimeout <= 0 {
		return fmt.Errorf("enqueue and job timeouts must be positive")
	}
	return nil
}
