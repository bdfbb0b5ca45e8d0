package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/piresc/shuttlefleet/internal/pkg/database"
	"github.com/piresc/shuttlefleet/internal/pkg/models"
	"github.com/piresc/shuttlefleet/services/fleet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLocationRepo(t *testing.T) (*miniredis.Miniredis, *LocationRepo) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, NewLocationRepo(&database.RedisClient{Client: client})
}

func TestLocationRepo_SaveAndGet(t *testing.T) {
	// Arrange
	mr, repo := setupLocationRepo(t)
	ctx := context.Background()
	at := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	hub, _ := models.PlaceByID(models.HubLocationID)

	// Act
	err := repo.SaveVehicleLocation(ctx, models.VehicleLocation{
		VehicleNumber: "V1",
		Location:      hub.Location,
		UpdatedAt:     at,
	}, "r1")
	require.NoError(t, err)
	got, err := repo.GetVehicleLocation(ctx, "V1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "V1", got.VehicleNumber)
	assert.InDelta(t, 29.7074, got.Location.Latitude, 1e-9)
	assert.InDelta(t, -95.3981, got.Location.Longitude, 1e-9)
	assert.Equal(t, "9vk1j0", got.Geohash)
	assert.True(t, at.Equal(got.UpdatedAt))
	assert.Equal(t, "r1", mr.HGet("vehicle:location:V1", "ride_id"))
	assert.Equal(t, LocationTTL, mr.TTL("vehicle:location:V1"))
}

func TestLocationRepo_GetUnknown(t *testing.T) {
	_, repo := setupLocationRepo(t)

	_, err := repo.GetVehicleLocation(context.Background(), "V9")
	assert.True(t, errors.Is(err, fleet.ErrNotFound))
}

func TestLocationRepo_NearbyVehicles(t *testing.T) {
	_, repo := setupLocationRepo(t)
	ctx := context.Background()
	hub, _ := models.PlaceByID(models.HubLocationID)
	museum, _ := models.PlaceByID("museum-fine-arts")
	airport, _ := models.PlaceByID("iah-airport")

	require.NoError(t, repo.SaveVehicleLocation(ctx, models.VehicleLocation{VehicleNumber: "V1", Location: museum.Location}, ""))
	require.NoError(t, repo.SaveVehicleLocation(ctx, models.VehicleLocation{VehicleNumber: "V2", Location: hub.Location}, ""))
	require.NoError(t, repo.SaveVehicleLocation(ctx, models.VehicleLocation{VehicleNumber: "V3", Location: airport.Location}, ""))

	nearby, err := repo.NearbyVehicles(ctx, hub.Location, 5)

	require.NoError(t, err)
	require.Len(t, nearby, 2)
	assert.Equal(t, "V2", nearby[0].VehicleNumber)
	assert.Equal(t, "V1", nearby[1].VehicleNumber)
}
