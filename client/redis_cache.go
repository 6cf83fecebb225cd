package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spendlens/purchase-parser/logger"
)

const (
	// seenKeyPrefix namespaces dedup keys in Redis.
	seenKeyPrefix = "purchase:seen:"

	memoryCacheCap  = 1000
	memoryCacheTrim = 100
)

// DedupCache remembers which message IDs were already processed so repeat
// deliveries short-circuit instead of re-running extraction.
type DedupCache interface {
	// MarkSeen records the ID atomically and reports whether it was new.
	MarkSeen(ctx context.Context, id string) (bool, error)
	Close() error
}

// NewDedupCache picks the backend: Redis when a URL is configured, the
// bounded in-process cache otherwise.
func NewDedupCache(redisURL string, ttl time.Duration) (DedupCache, error) {
	log := logger.New("dedup")

	if redisURL == "" {
		log.Info().Msg("using in-memory dedup cache")
		return newMemoryCache(ttl), nil
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	log.Info().Msg("using redis dedup cache")
	return &redisCache{rdb: rdb, ttl: ttl}, nil
}

type redisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// MarkSeen sets the key only if absent, so concurrent deliveries of the same
// message race safely: exactly one caller sees true.
func (c *redisCache) MarkSeen(ctx context.Context, id string) (bool, error) {
	set, err := c.rdb.SetNX(ctx, seenKeyPrefix+id, 1, c.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("dedup SETNX: %w", err)
	}
	return set, nil
}

func (c *redisCache) Close() error {
	return c.rdb.Close()
}

// memoryCache is the single-process fallback. Entries expire by TTL and the
// oldest hundred are dropped whenever the cache outgrows its cap.
type memoryCache struct {
	mu    sync.Mutex
	seen  map[string]time.Time
	order []string
	ttl   time.Duration
}

func newMemoryCache(ttl time.Duration) *memoryCache {
	return &memoryCache{
		seen: make(map[string]time.Time),
		ttl:  ttl,
	}
}

func (c *memoryCache) MarkSeen(_ context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	seenAt, exists := c.seen[id]
	if exists && now.Sub(seenAt) < c.ttl {
		return false, nil
	}

	if !exists {
		c.order = append(c.order, id)
	}
	c.seen[id] = now

	if len(c.order) > memoryCacheCap {
		drop := c.order[:memoryCacheTrim]
		c.order = append([]string(nil), c.order[memoryCacheTrim:]...)
		for _, old := range drop {
			delete(c.seen, old)
		}
	}

	return true, nil
}

func (c *memoryCache) Close() error {
	return nil
}
