package database

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/piresc/shuttlefleet/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *RedisClient) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, &RedisClient{Client: client}
}

func TestNewRedisClient(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client, err := NewRedisClient(models.RedisConfig{Host: mr.Host(), Port: mustPort(t, mr), PoolSize: 2})

	require.NoError(t, err)
	assert.NoError(t, client.Ping(context.Background()))
	assert.NoError(t, client.Close())
}

func TestNewRedisClient_ConnectionError(t *testing.T) {
	client, err := NewRedisClient(models.RedisConfig{Host: "127.0.0.1", Port: 1})

	assert.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "failed to connect to redis")
}

func TestRedisClient_HSetWithTTL(t *testing.T) {
	mr, client := setupMiniredis(t)
	ctx := context.Background()

	err := client.HSetWithTTL(ctx, "vehicle:location:V1", map[string]interface{}{"lat": "29.7", "lng": "-95.3"}, time.Hour)
	require.NoError(t, err)

	values, err := client.HGetAll(ctx, "vehicle:location:V1")
	require.NoError(t, err)
	assert.Equal(t, "29.7", values["lat"])
	assert.Equal(t, time.Hour, mr.TTL("vehicle:location:V1"))
}

func TestRedisClient_GeoAddAndRadius(t *testing.T) {
	_, client := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, client.GeoAdd(ctx, "vehicles:geo", -95.3981, 29.7074, "V1"))
	require.NoError(t, client.GeoAdd(ctx, "vehicles:geo", -95.3368, 29.9902, "V2"))

	near, err := client.GeoRadius(ctx, "vehicles:geo", -95.3981, 29.7074, 5, "km")
	require.NoError(t, err)
	require.Len(t, near, 1)
	assert.Equal(t, "V1", near[0].Name)
}

func mustPort(t *testing.T, mr *miniredis.Miniredis) int {
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	return port
}
