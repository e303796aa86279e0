package kmlog

import (
	"context"
	"fmt"
)

// Store is the key-value persistence contract of an EventLog. The whole
// collection lives under a single key and is replaced on every write
type Store interface {
	// Get returns the value held by key, or ErrNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Put replaces the value held by key
	Put(ctx context.Context, key string, value []byte) error

	// Close releases any connection or file held by the Store
	Close() error
}

// NewStore opens the backend named by cfg.Backend
func NewStore(ctx context.Context, cfg StoreConfig) (Store, error) {
	switch cfg.Backend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendRedis:
		return NewRedisStore(ctx, cfg)
	case BackendBolt, "":
		return NewBoltStore(cfg)
	case BackendPostgres:
		return NewPostgresStore(ctx, cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

func buildKey(prefix, key string) string {
	return prefix + ":" + key
}
