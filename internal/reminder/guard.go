package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisGuard implements DispatchGuard with a SETNX key per date. The key
// outlives the process, so a crashed cycle that already dispatched is
// detected on restart without re-sending. Expiry keeps the keyspace clean.
type RedisGuard struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisGuard creates a guard on a dedicated redis client.
func NewRedisGuard(redisURL string) (*RedisGuard, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	return &RedisGuard{
		rdb: redis.NewClient(opts),
		ttl: 48 * time.Hour,
	}, nil
}

// Acquire claims the dispatch slot for the given date. Returns false when
// an earlier attempt already claimed it.
func (g *RedisGuard) Acquire(ctx context.Context, date string) (bool, error) {
	key := "reminder:dispatched:" + date
	return g.rdb.SetNX(ctx, key, time.Now().Unix(), g.ttl).Result()
}

// Close closes the underlying redis connection.
func (g *RedisGuard) Close() error {
	return g.rdb.Close()
}
