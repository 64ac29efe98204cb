package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Cooldown allows one action per key per window.
type Cooldown interface {
	// Acquire reports whether the key was free and, if so, starts its window.
	Acquire(ctx context.Context, key string) (bool, error)
	// Release frees the key before its window ends.
	Release(ctx context.Context, key string) error
}

// NewCooldown keeps windows in Redis when rdb is set and in process otherwise.
func NewCooldown(rdb *redis.Client, window time.Duration) Cooldown {
	if rdb != nil {
		return &redisCooldown{rdb: rdb, window: window, prefix: "skilltwin:cooldown:"}
	}
	return newMemoryCooldown(window)
}

type redisCooldown struct {
	rdb    *redis.Client
	window time.Duration
	prefix string
}

func (c *redisCooldown) Acquire(ctx context.Context, key string) (bool, error) {
	ok, err := c.rdb.SetNX(ctx, c.prefix+key, 1, c.window).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire cooldown: %w", err)
	}
	return ok, nil
}

func (c *redisCooldown) Release(ctx context.Context, key string) error {
	if err := c.rdb.Del(ctx, c.prefix+key).Err(); err != nil {
		return fmt.Errorf("failed to release cooldown: %w", err)
	}
	return nil
}

type cooldownEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type memoryCooldown struct {
	mu        sync.Mutex
	entries   map[string]*cooldownEntry
	window    time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newMemoryCooldown(window time.Duration) *memoryCooldown {
	return &memoryCooldown{
		entries: make(map[string]*cooldownEntry),
		window:  window,
		now:     time.Now,
	}
}

func (c *memoryCooldown) Acquire(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if now.Sub(c.lastSweep) > c.window {
		c.sweep(now)
	}

	entry, ok := c.entries[key]
	if !ok {
		entry = &cooldownEntry{limiter: rate.NewLimiter(rate.Every(c.window), 1)}
		c.entries[key] = entry
	}
	if !entry.limiter.AllowN(now, 1) {
		return false, nil
	}
	entry.lastSeen = now
	return true, nil
}

func (c *memoryCooldown) Release(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// sweep drops keys whose window has fully elapsed. Callers hold mu.
func (c *memoryCooldown) sweep(now time.Time) {
	for key, entry := range c.entries {
		if now.Sub(entry.lastSeen) > c.window {
			delete(c.entries, key)
		}
	}
	c.lastSweep = now
}
