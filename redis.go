package kmlog

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps values in Redis or Valkey under "<prefix>:<key>"
type RedisStore struct {
	client *redis.Client
	prefix string
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore connects to the server at cfg.Addr and verifies the
// connection with a ping bounded by cfg.Timeout
func NewRedisStore(ctx context.Context, cfg StoreConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, cfg.timeout())
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &RedisStore{
		client: client,
		prefix: cfg.prefix(),
	}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, buildKey(s.prefix, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (s *RedisStore) Put(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, buildKey(s.prefix, key), value, 0).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
