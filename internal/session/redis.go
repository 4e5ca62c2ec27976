package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/ai-24/word-warmup/internal/pkg/logger"
)

// RedisStore keeps session payloads in redis under "<kind>:<session id>".
type RedisStore struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

// NewRedisStore connects using REDIS_ADDR. Callers fall back to another Store
// implementation when the variable is unset.
func NewRedisStore(log *logger.Logger, addr string, ttl time.Duration) (*RedisStore, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisStore{
		log: log.With("store", "RedisSessionStore"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

func (s *RedisStore) Get(ctx context.Context, kind Kind, sessionID uuid.UUID, v interface{}) (bool, error) {
	raw, err := s.rdb.Get(ctx, storeKey(kind, sessionID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, err
	}
	return true, nil
}

func (s *RedisStore) Put(ctx context.Context, kind Kind, sessionID uuid.UUID, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, storeKey(kind, sessionID), raw, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, kind Kind, sessionID uuid.UUID) error {
	return s.rdb.Del(ctx, storeKey(kind, sessionID)).Err()
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
