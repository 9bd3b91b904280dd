package storage

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/shopmanagement/portal/internal/core/ports"
)

const cooldownPrefix = "cooldown:"

// Cooldown keeps resend windows inside a Storage scope as unix-millisecond
// deadlines, so a file-backed CLI profile remembers them across runs.
type Cooldown struct {
	mu     sync.Mutex
	s      ports.Storage
	window time.Duration
	now    func() time.Time
}

var _ ports.Cooldown = (*Cooldown)(nil)

func NewCooldown(s ports.Storage, window time.Duration) *Cooldown {
	return &Cooldown{s: s, window: window, now: time.Now}
}

func (c *Cooldown) Reserve(ctx context.Context, key string) (time.Duration, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	left, err := c.remaining(ctx, key)
	if err != nil || left > 0 {
		return left, err
	}
	deadline := c.now().Add(c.window).UnixMilli()
	return 0, c.s.Set(ctx, cooldownPrefix+key, strconv.FormatInt(deadline, 10))
}

func (c *Cooldown) Release(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s.Delete(ctx, cooldownPrefix+key)
}

func (c *Cooldown) remaining(ctx context.Context, key string) (time.Duration, error) {
	v, ok, err := c.s.Get(ctx, cooldownPrefix+key)
	if err != nil || !ok {
		return 0, err
	}
	ms, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		// Unreadable deadlines are treated as expired.
		return 0, c.s.Delete(ctx, cooldownPrefix+key)
	}
	left := time.UnixMilli(ms).Sub(c.now())
	if left <= 0 {
		return 0, c.s.Delete(ctx, cooldownPrefix+key)
	}
	return left, nil
}
