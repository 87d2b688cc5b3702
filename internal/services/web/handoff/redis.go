package handoff

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/portfolio-tracker/internal/services/web/session"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "pt:handoff"

// RedisStore shares handoffs between web replicas. Take uses GETDEL so
// delivery stays single even when two replicas race on one key.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore builds a RedisStore; ttl <= 0 uses DefaultTTL.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) key(handoffKey string) string {
	return redisKeyPrefix + ":" + handoffKey
}

// Put stores identity under a new key with the store TTL.
func (s *RedisStore) Put(ctx context.Context, identity session.Identity) (string, error) {
	payload, err := json.Marshal(identity)
	if err != nil {
		return "", fmt.Errorf("encode handoff: %w", err)
	}
	key := NewKey()
	if err := s.client.Set(ctx, s.key(key), payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return key, nil
}

// Take atomically reads and deletes the identity stored under key.
func (s *RedisStore) Take(ctx context.Context, key string) (session.Identity, bool, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return session.Identity{}, false, nil
	}
	data, err := s.client.GetDel(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return session.Identity{}, false, nil
		}
		return session.Identity{}, false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	var identity session.Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		return session.Identity{}, false, fmt.Errorf("decode handoff: %w", err)
	}
	return identity, true, nil
}

// Ping reports whether the backing Redis answers.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
