package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/piresc/shuttlefleet/internal/pkg/constants"
	"github.com/piresc/shuttlefleet/internal/pkg/database"
	"github.com/piresc/shuttlefleet/internal/pkg/models"
	"github.com/piresc/shuttlefleet/internal/utils"
	"github.com/piresc/shuttlefleet/services/fleet"
)

// LocationTTL bounds how long a vehicle's last position is kept without updates
const LocationTTL = 24 * time.Hour

// LocationRepo tracks live vehicle positions in Redis
type LocationRepo struct {
	redis *database.RedisClient
}

// NewLocationRepo creates a Redis-backed location tracker
func NewLocationRepo(redisClient *database.RedisClient) *LocationRepo {
	return &LocationRepo{redis: redisClient}
}

// SaveVehicleLocation writes the position hash and the GEO index entry of a vehicle
func (r *LocationRepo) SaveVehicleLocation(ctx context.Context, location models.VehicleLocation, rideID string) error {
	if location.Geohash == "" {
		location.Geohash = utils.EncodeLocation(location.Location, utils.GeohashPrecision)
	}
	if location.UpdatedAt.IsZero() {
		location.UpdatedAt = models.Now()
	}

	key := fmt.Sprintf(constants.KeyVehicleLocation, location.VehicleNumber)
	values := map[string]interface{}{
		constants.FieldLatitude:  strconv.FormatFloat(location.Location.Latitude, 'f', -1, 64),
		constants.FieldLongitude: strconv.FormatFloat(location.Location.Longitude, 'f', -1, 64),
		constants.FieldGeohash:   location.Geohash,
		constants.FieldTimestamp: location.UpdatedAt.Format(time.RFC3339Nano),
		constants.FieldRideID:    rideID,
	}
	if err := r.redis.HSetWithTTL(ctx, key, values, LocationTTL); err != nil {
		return fmt.Errorf("failed to store location of %s: %w", location.VehicleNumber, err)
	}

	if err := r.redis.GeoAdd(ctx, constants.KeyVehicleGeo,
		location.Location.Longitude, location.Location.Latitude, location.VehicleNumber); err != nil {
		return fmt.Errorf("failed to index location of %s: %w", location.VehicleNumber, err)
	}
	return nil
}

// GetVehicleLocation returns the last tracked position of a vehicle
func (r *LocationRepo) GetVehicleLocation(ctx context.Context, vehicleNumber string) (*models.VehicleLocation, error) {
	key := fmt.Sprintf(constants.KeyVehicleLocation, vehicleNumber)
	values, err := r.redis.HGetAll(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read location of %s: %w", vehicleNumber, err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("location of %s: %w", vehicleNumber, fleet.ErrNotFound)
	}

	lat, err := strconv.ParseFloat(values[constants.FieldLatitude], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude for %s: %w", vehicleNumber, err)
	}
	lng, err := strconv.ParseFloat(values[constants.FieldLongitude], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude for %s: %w", vehicleNumber, err)
	}
	updatedAt, _ := time.Parse(time.RFC3339Nano, values[constants.FieldTimestamp])

	return &models.VehicleLocation{
		VehicleNumber: vehicleNumber,
		Location:      models.Location{Latitude: lat, Longitude: lng},
		Geohash:       values[constants.FieldGeohash],
		UpdatedAt:     updatedAt,
	}, nil
}

// NearbyVehicles returns tracked vehicles within radiusKm of location, nearest first
func (r *LocationRepo) NearbyVehicles(ctx context.Context, location models.Location, radiusKm float64) ([]models.VehicleLocation, error) {
	results, err := r.redis.GeoRadius(ctx, constants.KeyVehicleGeo,
		location.Longitude, location.Latitude, radiusKm, "km")
	if err != nil {
		return nil, fmt.Errorf("failed to search nearby vehicles: %w", err)
	}

	out := make([]models.VehicleLocation, 0, len(results))
	for _, res := range results {
		loc := models.Location{Latitude: res.Latitude, Longitude: res.Longitude}
		out = append(out, models.VehicleLocation{
			VehicleNumber: res.Name,
			Location:      loc,
			Geohash:       utils.EncodeLocation(loc, utils.GeohashPrecision),
		})
	}
	return out, nil
}
