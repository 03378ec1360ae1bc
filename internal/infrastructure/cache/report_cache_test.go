package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReportCache_TTLPorDefecto(t *testing.T) {
	c := NewRedisReportCache(nil, 0)
	assert.Equal(t, defaultTTL, c.ttl)

	c = NewRedisReportCache(nil, time.Minute)
	assert.Equal(t, time.Minute, c.ttl)
}

func TestVersionKey(t *testing.T) {
	assert.Equal(t, "reports:emp-1:version", versionKey("emp-1"))
}

func TestNewRedis_URLInvalida(t *testing.T) {
	_, err := NewRedis(context.Background(), "http://no-es-redis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse REDIS_URL")
}

func TestReportCache_ErroresDeConexion(t *testing.T) {
	// Puerto 1 cerrado: el cliente falla rápido y el error llega envuelto.
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })
	c := NewRedisReportCache(rdb, time.Minute)
	ctx := context.Background()

	_, err := c.Version(ctx, "emp-1")
	assert.ErrorContains(t, err, "redis get version")

	_, err = c.Get(ctx, "k", &struct{}{})
	assert.ErrorContains(t, err, "redis get")

	assert.ErrorContains(t, c.Set(ctx, "k", map[string]int{"a": 1}), "redis set")
	assert.ErrorContains(t, c.Invalidate(ctx, "emp-1"), "redis incr")
}
