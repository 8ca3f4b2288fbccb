package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopCache(t *testing.T) {
	c := NewNoopCache()
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k", []string{"a"}, time.Minute))
	var got []string
	ok, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, c.Delete(ctx, "k"))
}

// TestRedisCache runs against a real server when REDIS_ADDR is set.
func TestRedisCache(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	c, err := NewRedisCache(RedisConfig{Addr: addr})
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	key := "test:filter:venue"
	require.NoError(t, c.Delete(ctx, key))

	var got []string
	ok, err := c.Get(ctx, key, &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, key, []string{"Blue Note", "Gazi"}, time.Minute))
	ok, err = c.Get(ctx, key, &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"Blue Note", "Gazi"}, got)
	require.NoError(t, c.Delete(ctx, key))
}
