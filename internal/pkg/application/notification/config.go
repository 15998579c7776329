package notification

import (
	"fmt"
	"time"

	"github.com/nyaruka/phonenumbers"
)

type ProviderConfig struct {
	URL     string        `yaml:"url"`
	Path    string        `yaml:"path"`
	Token   string        `yaml:"token"`
	Sender  string        `yaml:"sender"`
	Timeout time.Duration `yaml:"timeout"`
}

func (p ProviderConfig) Enabled() bool {
	return p.URL != ""
}

type DispatcherConfig struct {
	MaxRetries      int            `yaml:"maxretries"`
	InitialInterval time.Duration  `yaml:"initialinterval"`
	MaxInterval     time.Duration  `yaml:"maxinterval"`
	AttemptTimeout  time.Duration  `yaml:"attempttimeout"`
	DefaultRegion   string         `yaml:"defaultregion"`
	TierPolicy      TierPolicy     `yaml:"tierpolicy"`
	Email           ProviderConfig `yaml:"email"`
	SMS             ProviderConfig `yaml:"sms"`
}

func DefaultConfig() DispatcherConfig {
	return DispatcherConfig{
		MaxRetries:      2,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		AttemptTimeout:  10 * time.Second,
		DefaultRegion:   "SE",
		TierPolicy:      DefaultTierPolicy(),
		Email:           ProviderConfig{Path: "/messages", Timeout: 10 * time.Second},
		SMS:             ProviderConfig{Path: "/sms", Timeout: 10 * time.Second},
	}
}

func (c DispatcherConfig) Validate() error {
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("maxretries must be between 0 and 10, got %d", c.MaxRetries)
	}
	if c.InitialInterval <= 0 || c.MaxInterval < c.InitialInterval {
		return fmt.Errorf("invalid backoff intervals %s..%s", c.InitialInterval, c.MaxInterval)
	}
	if c.AttemptTimeout <= 0 {
		return fmt.Errorf("attempttimeout must be positive")
	}
	if phonenumbers.GetCountryCodeForRegion(c.DefaultRegion) == 0 {
		return fmt.Errorf("unknown default region %q", c.DefaultRegion)
	}

	return c.TierPolicy.Validate()
}
