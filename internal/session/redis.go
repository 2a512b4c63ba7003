package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionPrefix = "session:"
	sessionTTL    = 24 * time.Hour
)

// RedisStore backs the session Store with Redis. Each context is one
// JSON value under a session: key, so SET is the per-key atomic unit.
// Keys expire after 24h of inactivity.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: sessionTTL}
}

func sessionKey(id string) string {
	return sessionPrefix + id
}

// Get loads the context for id. A missing key yields an empty context.
func (s *RedisStore) Get(ctx context.Context, id string) (Context, error) {
	data, err := s.rdb.Get(ctx, sessionKey(id)).Bytes()
	if err == redis.Nil {
		return Context{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}

	var sc Context
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", id, err)
	}
	return sc, nil
}

// Update replaces the context for id and refreshes its TTL.
func (s *RedisStore) Update(ctx context.Context, id string, sc Context) error {
	data, err := json.Marshal(sc)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", id, err)
	}
	if err := s.rdb.Set(ctx, sessionKey(id), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session %s: %w", id, err)
	}
	return nil
}
