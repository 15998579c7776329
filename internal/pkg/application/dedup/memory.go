package dedup

import (
	"context"
	"sync"
	"time"

	"github.com/diwise/iot-telemetry-alerts/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
)

type key struct {
	sensorID string
	severity types.Severity
}

type memoryCache struct {
	mu      sync.Mutex
	entries map[key]time.Time
	config  CooldownConfig
	now     func() time.Time
}

// NewMemoryCache returns a process local cache. Expired entries are dropped
// lazily on Admit and by a sweep every sweepInterval until ctx is done.
func NewMemoryCache(ctx context.Context, cfg CooldownConfig, sweepInterval time.Duration) Cache {
	c := newMemoryCache(cfg, time.Now)

	if sweepInterval > 0 {
		go c.run(ctx, sweepInterval)
	}

	return c
}

func newMemoryCache(cfg CooldownConfig, now func() time.Time) *memoryCache {
	return &memoryCache{
		entries: map[key]time.Time{},
		config:  cfg,
		now:     now,
	}
}

func (c *memoryCache) run(ctx context.Context, interval time.Duration) {
	log := logging.GetFromContext(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := c.sweep(); n > 0 {
				log.Debug("evicted expired dedup entries", "count", n)
			}
		}
	}
}

func (c *memoryCache) sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	n := 0

	for k, ts := range c.entries {
		if now.Sub(ts) >= c.config.For(k.severity) {
			delete(c.entries, k)
			n++
		}
	}

	return n
}

func (c *memoryCache) Admit(_ context.Context, sensorID string, severity types.Severity) (bool, error) {
	cooldown := c.config.For(severity)
	k := key{sensorID: sensorID, severity: severity}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()

	if ts, ok := c.entries[k]; ok && now.Sub(ts) < cooldown {
		return false, nil
	}

	if cooldown > 0 {
		c.entries[k] = now
	} else {
		delete(c.entries, k)
	}

	return true, nil
}

func (c *memoryCache) Invalidate(_ context.Context, sensorID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, s := range alerting {
		delete(c.entries, key{sensorID: sensorID, severity: s})
	}

	return nil
}

func (c *memoryCache) Prime(_ context.Context, alerts []types.AlertEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()

	for _, a := range alerts {
		cooldown := c.config.For(a.Severity)
		if cooldown <= 0 || now.Sub(a.CreatedAt) >= cooldown {
			continue
		}

		k := key{sensorID: a.SensorID, severity: a.Severity}
		if ts, ok := c.entries[k]; !ok || a.CreatedAt.After(ts) {
			c.entries[k] = a.CreatedAt
		}
	}

	return nil
}

func (c *memoryCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
