package kmlog

import (
	"time"

	"go.uber.org/zap"
)

type (
	Config struct {
		Logger *zap.Logger
		Key    string
		Store  StoreConfig
	}

	StoreConfig struct {
		Backend  string
		Addr     string
		Password string
		Prefix   string
		Path     string
		DSN      string
		DB       int
		Timeout  time.Duration
	}
)

const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendBolt     = "bolt"
	BackendPostgres = "postgres"
)

const (
	DefaultKey            = "events"
	DefaultBackend        = BackendBolt
	DefaultRedisEndpoint  = "localhost:6379"
	DefaultRedisDB        = 0
	DefaultPrefix         = "kmlog"
	DefaultBoltPath       = "kmlog.db"
	DefaultPostgresDSN    = "postgres://localhost:5432/kmlog?sslmode=disable"
	DefaultConnectTimeout = 5 * time.Second
)

func DefaultConfig() Config {
	return Config{
		Key:   DefaultKey,
		Store: DefaultStoreConfig(),
	}
}

func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		Backend:  DefaultBackend,
		Addr:     DefaultRedisEndpoint,
		Password: "",
		DB:       DefaultRedisDB,
		Prefix:   DefaultPrefix,
		Path:     DefaultBoltPath,
		DSN:      DefaultPostgresDSN,
		Timeout:  DefaultConnectTimeout,
	}
}

func (c Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func (c Config) key() string {
	if c.Key == "" {
		return DefaultKey
	}
	return c.Key
}

func (c StoreConfig) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultConnectTimeout
	}
	return c.Timeout
}

func (c StoreConfig) prefix() string {
	if c.Prefix == "" {
		return DefaultPrefix
	}
	return c.Prefix
}
