package usecase

import (
	"math/rand"
	"testing"
	"time"

	"github.com/piresc/shuttlefleet/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placeVehicle(id, number string, capacity int, placeID string) models.Vehicle {
	p, _ := models.PlaceByID(placeID)
	return models.Vehicle{
		ID:            id,
		ShuttleNumber: number,
		Capacity:      capacity,
		Status:        models.VehicleStatusAvailable,
		LocationLat:   p.Location.Latitude,
		LocationLng:   p.Location.Longitude,
	}
}

func TestNearestSelector_SelectVehicle(t *testing.T) {
	ride := models.Ride{PickupLocation: "galleria"}

	tests := []struct {
		name      string
		available []models.Vehicle
		wantID    string
	}{
		{
			name:      "no vehicles",
			available: nil,
			wantID:    "",
		},
		{
			name: "closest wins",
			available: []models.Vehicle{
				placeVehicle("v1", "V1", 8, models.HubLocationID),
				placeVehicle("v2", "V2", 8, "rice-village"),
				placeVehicle("v3", "V3", 8, "iah-airport"),
			},
			wantID: "v2",
		},
		{
			name: "tie goes to larger capacity",
			available: []models.Vehicle{
				placeVehicle("v1", "V1", 8, models.HubLocationID),
				placeVehicle("v2", "V2", 12, models.HubLocationID),
			},
			wantID: "v2",
		},
		{
			name: "full tie goes to lower shuttle number",
			available: []models.Vehicle{
				placeVehicle("v2", "V2", 8, models.HubLocationID),
				placeVehicle("v1", "V1", 8, models.HubLocationID),
			},
			wantID: "v1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NearestSelector{}.SelectVehicle(ride, tt.available)
			if tt.wantID == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestRandomSelector_SelectVehicle(t *testing.T) {
	selector := NewRandomSelector(rand.New(rand.NewSource(1)))
	available := []models.Vehicle{
		placeVehicle("v1", "V1", 8, models.HubLocationID),
		placeVehicle("v2", "V2", 8, models.HubLocationID),
		placeVehicle("v3", "V3", 8, models.HubLocationID),
	}

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		got := selector.SelectVehicle(models.Ride{}, available)
		require.NotNil(t, got)
		seen[got.ID] = true
	}

	assert.Len(t, seen, 3)
	assert.Nil(t, selector.SelectVehicle(models.Ride{}, nil))
}

func TestNewVehicleSelector(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	assert.IsType(t, NearestSelector{}, NewVehicleSelector("nearest", rng))
	assert.IsType(t, &RandomSelector{}, NewVehicleSelector("random", rng))
	assert.IsType(t, &RandomSelector{}, NewVehicleSelector("", rng))
}

func TestNextAssignment(t *testing.T) {
	older := testNow.Add(-time.Minute)
	snap := &models.Snapshot{
		Rides: []models.Ride{
			{ID: "r-new", Status: models.RideStatusPending, PickupLocation: models.HubLocationID, PendingTimestamp: models.TimePtr(testNow)},
			{ID: "r-done", Status: models.RideStatusCompleted, PickupLocation: models.HubLocationID},
			{ID: "r-old", Status: models.RideStatusPending, PickupLocation: models.HubLocationID, PendingTimestamp: models.TimePtr(older)},
		},
		Vehicles: []models.Vehicle{
			{ID: "v-busy", ShuttleNumber: "V0", Status: models.VehicleStatusInUse},
			placeVehicle("v1", "V1", 8, models.HubLocationID),
		},
	}

	ride, vehicle, ok := NextAssignment(snap, NearestSelector{})

	require.True(t, ok)
	assert.Equal(t, "r-old", ride.ID)
	assert.Equal(t, "v1", vehicle.ID)
}

func TestNextAssignment_NothingToDo(t *testing.T) {
	tests := []struct {
		name string
		snap *models.Snapshot
	}{
		{name: "nil snapshot"},
		{
			name: "no pending rides",
			snap: &models.Snapshot{
				Vehicles: []models.Vehicle{placeVehicle("v1", "V1", 8, models.HubLocationID)},
			},
		},
		{
			name: "no available vehicles",
			snap: &models.Snapshot{
				Rides:    []models.Ride{{ID: "r1", Status: models.RideStatusPending}},
				Vehicles: []models.Vehicle{{ID: "v1", Status: models.VehicleStatusMaintenance}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, ok := NextAssignment(tt.snap, NearestSelector{})
			assert.False(t, ok)
		})
	}
}
