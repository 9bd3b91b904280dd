package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cooldown throttles repeated actions such as OTP resends.
// Key format: cooldown:<action>:<identifier>
type Cooldown struct {
	client *redis.Client
	window time.Duration
}

// NewCooldown creates a Cooldown whose windows last window.
func NewCooldown(client *redis.Client, window time.Duration) *Cooldown {
	return &Cooldown{client: client, window: window}
}

// Reserve opens a window for key with SET NX PX. When another caller holds
// the key it reports how long that window still runs.
func (c *Cooldown) Reserve(ctx context.Context, key string) (time.Duration, error) {
	ok, err := c.client.SetNX(ctx, c.key(key), "1", c.window).Result()
	if err != nil {
		return 0, fmt.Errorf("cooldown reserve: %w", err)
	}
	if ok {
		return 0, nil
	}
	d, err := c.client.PTTL(ctx, c.key(key)).Result()
	if err != nil {
		return 0, fmt.Errorf("cooldown check: %w", err)
	}
	// The key expired between the two commands, or was stored without a TTL.
	if d <= 0 {
		return c.window, nil
	}
	return d, nil
}

// Release drops the window for key.
func (c *Cooldown) Release(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.key(key)).Err()
}

func (c *Cooldown) key(key string) string {
	return "cooldown:" + key
}
