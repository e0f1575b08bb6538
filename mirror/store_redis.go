package mirror

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Julnar1/store-sentry-admin-dashboard/session"
)

// DefaultRedisKey is where the redis-backed store keeps the record.
const DefaultRedisKey = "sentry:session:mirror"

// RedisStore keeps the mirror record in a single redis hash, for
// deployments where the dashboard process is restarted often and local
// disk is not durable.
type RedisStore struct {
	rdb *redis.Client
	key string
}

// NewRedisStore creates a redis-backed mirror store. An empty key falls
// back to DefaultRedisKey.
func NewRedisStore(rdb *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{rdb: rdb, key: key}
}

func (s *RedisStore) Save(ctx context.Context, rec Record) error {
	fields := map[string]interface{}{
		"token":      string(rec.Token),
		"role":       string(rec.Role),
		"updated_at": rec.UpdatedAt.Format(time.RFC3339Nano),
	}
	if err := s.rdb.HSet(ctx, s.key, fields).Err(); err != nil {
		return fmt.Errorf("saving session mirror hash: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context) (Record, error) {
	fields, err := s.rdb.HGetAll(ctx, s.key).Result()
	if err != nil {
		return Record{}, fmt.Errorf("loading session mirror hash: %w", err)
	}
	if len(fields) == 0 {
		return Record{}, ErrNoStoredSession
	}

	rec := Record{
		Token: []byte(fields["token"]),
		Role:  session.Role(fields["role"]),
	}
	if ts, err := time.Parse(time.RFC3339Nano, fields["updated_at"]); err == nil {
		rec.UpdatedAt = ts
	}
	return rec, nil
}

func (s *RedisStore) Delete(ctx context.Context) error {
	if err := s.rdb.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("deleting session mirror hash: %w", err)
	}
	return nil
}
