package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultCacheTTL keeps cached totals around long enough for a browsing
// session; recomputes overwrite entries before they expire anyway.
const DefaultCacheTTL = time.Hour

// ScoreCache keeps recent totals in Redis so inline lookups during
// browsing never touch the score store.
type ScoreCache struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedisClient builds a redis client for the score cache.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func scoreKey(userID, propertyID string) string {
	return fmt.Sprintf("score:%s:%s", userID, propertyID)
}

// Put caches the total for a pair. Called after every upsert so the cache
// tracks the store.
func (c *ScoreCache) Put(ctx context.Context, userID, propertyID string, total int) error {
	ttl := c.TTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return c.Client.Set(ctx, scoreKey(userID, propertyID), total, ttl).Err()
}

// GetTotal returns the cached total and whether it was present. Any redis
// failure reads as a miss.
func (c *ScoreCache) GetTotal(ctx context.Context, userID, propertyID string) (int, bool) {
	total, err := c.Client.Get(ctx, scoreKey(userID, propertyID)).Int()
	if err != nil {
		return 0, false
	}
	return total, true
}
