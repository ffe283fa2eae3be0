package cache

import (
	"context"
	"distance-service/internal/ports"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisGeocodeCacheRoundTrip(t *testing.T) {
	mr, client := newTestRedis(t)
	c := NewRedisGeocodeCache(client, time.Hour)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "0|chicago")
	require.NoError(t, err)
	assert.False(t, ok)

	want := []ports.GeocodeResult{{DisplayName: "Chicago", Lat: "41.8781", Lon: "-87.6298"}}
	require.NoError(t, c.Put(ctx, "0|chicago", want))

	got, ok, err := c.Get(ctx, "0|chicago")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)

	assert.Equal(t, time.Hour, mr.TTL(redisKeyPrefix+"0|chicago"))
}

func TestRedisGeocodeCacheExpiry(t *testing.T) {
	mr, client := newTestRedis(t)
	c := NewRedisGeocodeCache(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "k", []ports.GeocodeResult{{DisplayName: "x", Lat: "1", Lon: "2"}}))
	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisGeocodeCacheCorruptPayload(t *testing.T) {
	mr, client := newTestRedis(t)
	c := NewRedisGeocodeCache(client, time.Minute)

	require.NoError(t, mr.Set(redisKeyPrefix+"k", "{not json"))

	_, _, err := c.Get(context.Background(), "k")
	assert.Error(t, err)
}

func TestNewRedisClientPing(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	_ = client.Close()

	gone, err := miniredis.Run()
	require.NoError(t, err)
	addr := gone.Addr()
	gone.Close()

	_, err = NewRedisClient(context.Background(), addr, "", 0)
	assert.Error(t, err)
}
