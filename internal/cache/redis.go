package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "githistory"

// RedisConfig defines the connection settings of a shared cache.
type RedisConfig struct {
	Addr     string
	Username string
	Password string
	Database int
	TTL      time.Duration // zero keeps entries forever
}

// RedisStore shares cached commits through a Redis compatible server.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to the server and verifies it answers.
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	addr := cfg.Addr
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.Database,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisStore{client: client, ttl: cfg.TTL}, nil
}

func redisKey(repoKey, hash string) string {
	return fmt.Sprintf("%s:%s:%s", redisKeyPrefix, repoKey, hash)
}

// Get implements Store.
func (s *RedisStore) Get(ctx context.Context, repoKey, hash string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, redisKey(repoKey, hash)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return data, true, nil
}

// Put implements Store.
func (s *RedisStore) Put(ctx context.Context, repoKey, hash string, data []byte) error {
	if err := s.client.Set(ctx, redisKey(repoKey, hash), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Close closes the client connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var (
	_ Store = (*BoltStore)(nil)
	_ Store = (*RedisStore)(nil)
	_ Store = nopStore{}
)
