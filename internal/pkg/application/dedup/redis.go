package dedup

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/diwise/iot-telemetry-alerts/pkg/types"
	"github.com/go-redis/redis/v8"
)

// redisCache shares dedup state between instances. SET NX PX gives the
// check-and-set atomicity and lets Redis expire entries.
type redisCache struct {
	client *redis.Client
	config CooldownConfig
	now    func() time.Time
}

func NewRedisCache(client *redis.Client, cfg CooldownConfig) Cache {
	return &redisCache{
		client: client,
		config: cfg,
		now:    time.Now,
	}
}

func (c *redisCache) key(sensorID string, severity types.Severity) string {
	return fmt.Sprintf("%s%s:%s", c.config.Prefix, sensorID, severity.String())
}

func (c *redisCache) Admit(ctx context.Context, sensorID string, severity types.Severity) (bool, error) {
	cooldown := c.config.For(severity)
	if cooldown <= 0 {
		return true, nil
	}

	ok, err := c.client.SetNX(ctx, c.key(sensorID, severity), c.now().UnixMilli(), cooldown).Result()
	if err != nil {
		return false, fmt.Errorf("could not check dedup entry: %w", err)
	}

	return ok, nil
}

func (c *redisCache) Invalidate(ctx context.Context, sensorID string) error {
	keys := make([]string, 0, len(alerting))
	for _, s := range alerting {
		keys = append(keys, c.key(sensorID, s))
	}

	return c.client.Del(ctx, keys...).Err()
}

func (c *redisCache) Prime(ctx context.Context, alerts []types.AlertEvent) error {
	now := c.now()

	pipe := c.client.Pipeline()
	queued := 0

	for _, a := range alerts {
		remaining := c.config.For(a.Severity) - now.Sub(a.CreatedAt)
		if remaining <= 0 {
			continue
		}

		pipe.SetNX(ctx, c.key(a.SensorID, a.Severity), strconv.FormatInt(a.CreatedAt.UnixMilli(), 10), remaining)
		queued++
	}

	if queued == 0 {
		return nil
	}

	_, err := pipe.Exec(ctx)
	return err
}
