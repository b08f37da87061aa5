package history

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"riskgate/internal/validation/ports"
)

const redisKeyPrefix = "riskgate:history:"

// RedisStore implements ports.HistoryStore on a Redis sorted set per account,
// scored by timestamp. Redis serializes commands per connection, which gives
// the atomic per-account count/append contract across processes.
type RedisStore struct {
	client    *redis.Client
	retention time.Duration
}

// NewRedisStore creates a Redis-backed history store. A non-positive
// retention falls back to DefaultRetention.
func NewRedisStore(client *redis.Client, retention time.Duration) *RedisStore {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &RedisStore{client: client, retention: retention}
}

// Append adds the entry to the account's sorted set and prunes entries past
// retention in the same pipeline.
func (s *RedisStore) Append(ctx context.Context, entry ports.HistoryEntry) error {
	ts := entry.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	key := redisKeyPrefix + entry.AccountID
	cutoff := ts.Add(-s.retention)

	pipe := s.client.TxPipeline()
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(ts.UnixNano()),
		Member: entry.TransactionID,
	})
	pipe.ZRemRangeByScore(ctx, key, "-inf", strconv.FormatInt(cutoff.UnixNano(), 10))
	pipe.Expire(ctx, key, s.retention)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append history for %s: %w", entry.AccountID, err)
	}
	return nil
}

// CountInWindow counts entries scored after now-window.
func (s *RedisStore) CountInWindow(ctx context.Context, accountID string, window time.Duration) (int, error) {
	key := redisKeyPrefix + accountID
	cutoff := time.Now().Add(-window)

	count, err := s.client.ZCount(ctx, key,
		"("+strconv.FormatInt(cutoff.UnixNano(), 10), "+inf").Result()
	if err != nil {
		return 0, fmt.Errorf("count history for %s: %w", accountID, err)
	}
	return int(count), nil
}
