package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardboard/core/internal/ports"
)

// fakeRedis is an in-memory stand-in for the subset of commands the cache
// issues.
type fakeRedis struct {
	data    map[string]string
	ttls    map[string]time.Duration
	failGet error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.failGet != nil {
		return redis.NewStringResult("", f.failGet)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

type entry struct {
	Found  bool           `json:"found"`
	Config map[string]any `json:"config"`
}

func TestRedisCache_SetGet(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	c := NewRedisCache(client, "cardboard:")

	in := entry{Found: true, Config: map[string]any{"text": map[string]any{"content": "hi"}}}
	require.NoError(t, c.Set(ctx, "default_config:TEXT", in, time.Minute))

	assert.Contains(t, client.data, "cardboard:default_config:TEXT")
	assert.Equal(t, time.Minute, client.ttls["cardboard:default_config:TEXT"])

	var out entry
	require.NoError(t, c.Get(ctx, "default_config:TEXT", &out))
	assert.Equal(t, in, out)
}

func TestRedisCache_Miss(t *testing.T) {
	c := NewRedisCache(newFakeRedis(), "cardboard:")

	var out entry
	err := c.Get(context.Background(), "absent", &out)
	assert.ErrorIs(t, err, ports.ErrCacheMiss)
}

func TestRedisCache_GetFailure(t *testing.T) {
	client := newFakeRedis()
	client.failGet = errors.New("connection refused")
	c := NewRedisCache(client, "cardboard:")

	var out entry
	err := c.Get(context.Background(), "k", &out)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrCacheMiss)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestRedisCache_CorruptValue(t *testing.T) {
	client := newFakeRedis()
	client.data["cardboard:k"] = "{not json"
	c := NewRedisCache(client, "cardboard:")

	var out entry
	assert.Error(t, c.Get(context.Background(), "k", &out))
}

func TestRedisCache_Delete(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	c := NewRedisCache(client, "cardboard:")

	require.NoError(t, c.Set(ctx, "k", entry{}, 0))
	require.NoError(t, c.Delete(ctx, "k"))
	assert.NotContains(t, client.data, "cardboard:k")

	require.NoError(t, c.Delete(ctx, "k"), "deleting an absent key is not an error")
	assert.NoError(t, c.Ping(ctx))
}

func TestNoop(t *testing.T) {
	ctx := context.Background()
	var c ports.CacheRepository = Noop{}

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))

	var out string
	assert.ErrorIs(t, c.Get(ctx, "k", &out), ports.ErrCacheMiss)
	assert.NoError(t, c.Delete(ctx, "k"))
	assert.NoError(t, c.Ping(ctx))
}
