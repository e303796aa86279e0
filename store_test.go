package kmlog_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kode4food/kmlog"
)

func testStoreRoundTrip(t *testing.T, store kmlog.Store) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, kmlog.ErrNotFound)

	assert.NoError(t, store.Put(ctx, kmlog.DefaultKey, []byte(`[]`)))
	val, err := store.Get(ctx, kmlog.DefaultKey)
	assert.NoError(t, err)
	assert.Equal(t, `[]`, string(val))

	blob := `[{"date":"2024-01-01","kilometer":100}]`
	assert.NoError(t, store.Put(ctx, kmlog.DefaultKey, []byte(blob)))
	val, err = store.Get(ctx, kmlog.DefaultKey)
	assert.NoError(t, err)
	assert.Equal(t, blob, string(val))
}

func testStoreEventLog(t *testing.T, store kmlog.Store) {
	t.Helper()
	l := newEventLog(t, store)
	evs := addScenario(t, l)

	reloaded := newEventLog(t, store)
	assert.Equal(t, evs, reloaded.Events())
}

func TestMemoryStore(t *testing.T) {
	store := kmlog.NewMemoryStore()
	defer func() { _ = store.Close() }()

	testStoreRoundTrip(t, store)
	testStoreEventLog(t, kmlog.NewMemoryStore())
}

func TestMemoryStoreCopies(t *testing.T) {
	store := kmlog.NewMemoryStore()
	ctx := context.Background()

	in := []byte("abc")
	assert.NoError(t, store.Put(ctx, "k", in))
	in[0] = 'x'

	out, err := store.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Equal(t, "abc", string(out))
	out[0] = 'y'

	out, err = store.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Equal(t, "abc", string(out))
}

func TestRedisStore(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	cfg := kmlog.DefaultStoreConfig()
	cfg.Backend = kmlog.BackendRedis
	cfg.Addr = server.Addr()
	cfg.Prefix = "odo"

	store, err := kmlog.NewStore(context.Background(), cfg)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	assert.IsType(t, &kmlog.RedisStore{}, store)
	testStoreRoundTrip(t, store)

	raw, err := server.Get("odo:" + kmlog.DefaultKey)
	assert.NoError(t, err)
	assert.JSONEq(t, `[{"date":"2024-01-01","kilometer":100}]`, raw)
}

func TestRedisStoreEventLog(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	cfg := kmlog.DefaultStoreConfig()
	cfg.Addr = server.Addr()

	store, err := kmlog.NewRedisStore(context.Background(), cfg)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	testStoreEventLog(t, store)
	assert.True(t, server.Exists(kmlog.DefaultPrefix+":"+kmlog.DefaultKey))
}

func TestRedisStoreUnreachable(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	addr := server.Addr()
	server.Close()

	cfg := kmlog.DefaultStoreConfig()
	cfg.Addr = addr
	cfg.Timeout = 200 * time.Millisecond

	_, err = kmlog.NewRedisStore(context.Background(), cfg)
	assert.Error(t, err)
}

func TestRedisStoreCorrupt(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	cfg := kmlog.DefaultStoreConfig()
	cfg.Addr = server.Addr()

	store, err := kmlog.NewRedisStore(context.Background(), cfg)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.NoError(t, server.Set(
		kmlog.DefaultPrefix+":"+kmlog.DefaultKey, "[{]",
	))

	l := newEventLog(t, store)
	assert.Equal(t, 0, l.Len())
}

func TestBoltStore(t *testing.T) {
	cfg := kmlog.DefaultStoreConfig()
	cfg.Backend = kmlog.BackendBolt
	cfg.Path = filepath.Join(t.TempDir(), "kmlog.db")

	store, err := kmlog.NewStore(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &kmlog.BoltStore{}, store)

	testStoreRoundTrip(t, store)
	assert.NoError(t, store.Close())
}

func TestBoltStoreReopen(t *testing.T) {
	cfg := kmlog.DefaultStoreConfig()
	cfg.Path = filepath.Join(t.TempDir(), "kmlog.db")

	store, err := kmlog.NewBoltStore(cfg)
	require.NoError(t, err)
	l := newEventLog(t, store)
	evs := addScenario(t, l)
	assert.NoError(t, store.Close())

	store, err = kmlog.NewBoltStore(cfg)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	reloaded := newEventLog(t, store)
	assert.Equal(t, evs, reloaded.Events())
}

func TestBoltStoreBadPath(t *testing.T) {
	cfg := kmlog.DefaultStoreConfig()
	cfg.Path = filepath.Join(t.TempDir(), "missing", "dir", "kmlog.db")

	_, err := kmlog.NewBoltStore(cfg)
	assert.Error(t, err)
}

func TestNewStore(t *testing.T) {
	cfg := kmlog.DefaultStoreConfig()
	cfg.Backend = kmlog.BackendMemory

	store, err := kmlog.NewStore(context.Background(), cfg)
	assert.NoError(t, err)
	assert.IsType(t, &kmlog.MemoryStore{}, store)

	cfg.Backend = "cassette"
	_, err = kmlog.NewStore(context.Background(), cfg)
	assert.ErrorIs(t, err, kmlog.ErrUnknownBackend)
	assert.Contains(t, err.Error(), "cassette")
}
