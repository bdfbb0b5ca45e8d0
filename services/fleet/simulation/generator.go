package simulation

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/piresc/shuttlefleet/internal/pkg/logger"
	"github.com/piresc/shuttlefleet/internal/pkg/models"
	"github.com/piresc/shuttlefleet/internal/utils"
	"github.com/piresc/shuttlefleet/services/fleet"
)

// hubPickupShare is the fraction of generated rides that start at the hub
const hubPickupShare = 0.7

var specialRequests = []string{
	"Extra luggage space",
	"Child seat needed",
	"Wheelchair accessible vehicle",
	"Please call on arrival",
}

// RideGenerator produces guest bookings for the simulated demand stream
type RideGenerator struct {
	rng *rand.Rand
}

// NewRideGenerator creates a generator drawing from rng
func NewRideGenerator(rng *rand.Rand) *RideGenerator {
	return &RideGenerator{rng: rng}
}

// Next returns a booking that satisfies the hub rule: pickups at the hub go
// anywhere else, every other pickup returns to the hub.
func (g *RideGenerator) Next() models.CreateRideRequest {
	req := models.CreateRideRequest{
		GuestName:  utils.GenerateGuestName(g.rng),
		GuestRoom:  utils.GenerateRoomNumber(g.rng),
		GuestPhone: utils.GeneratePhoneNumber(g.rng),
		Priority:   models.RidePriorityNormal,
	}

	away := models.Places[1:]
	if g.rng.Float64() < hubPickupShare {
		req.PickupLocation = models.HubLocationID
		req.Destination = away[g.rng.Intn(len(away))].ID
	} else {
		req.PickupLocation = away[g.rng.Intn(len(away))].ID
		req.Destination = models.HubLocationID
	}

	if g.rng.Float64() < 0.1 {
		req.Priority = models.RidePriorityHigh
	}
	if g.rng.Float64() < 0.2 {
		req.SpecialRequests = specialRequests[g.rng.Intn(len(specialRequests))]
	}
	return req
}

// DemoFleetSize is the number of shuttles created by SeedDemoFleet
const DemoFleetSize = 4

// SeedDemoFleet creates parked shuttles and signed-in drivers at the hub when
// the store holds no vehicles yet
func SeedDemoFleet(ctx context.Context, store *fleet.Store, rng *rand.Rand) error {
	existing, err := store.Vehicles.List(ctx, models.SortNone, 1)
	if err != nil {
		return fmt.Errorf("failed to list vehicles: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	hub, _ := models.PlaceByID(models.HubLocationID)
	for i := 1; i <= DemoFleetSize; i++ {
		number := fmt.Sprintf("V%d", i)
		driver, err := store.Drivers.Create(ctx, models.Driver{
			FullName:      utils.GenerateGuestName(rng),
			Phone:         utils.GeneratePhoneNumber(rng),
			Status:        models.DriverStatusSignedIn,
			VehicleNumber: number,
		})
		if err != nil {
			return fmt.Errorf("failed to seed driver for %s: %w", number, err)
		}

		_, err = store.Vehicles.Create(ctx, models.Vehicle{
			ShuttleNumber:   number,
			Capacity:        8 + 4*(i%2),
			CurrentMileage:  float64(10000 + rng.Intn(40000)),
			FuelLevel:       0.5 + rng.Float64()/2,
			Status:          models.VehicleStatusAvailable,
			CurrentDriver:   driver.FullName,
			LocationLat:     hub.Location.Latitude,
			LocationLng:     hub.Location.Longitude,
			LocationUpdated: models.TimePtr(models.Now()),
		})
		if err != nil {
			return fmt.Errorf("failed to seed vehicle %s: %w", number, err)
		}
	}

	logger.Info("Seeded demo fleet", logger.Int("vehicles", DemoFleetSize))
	return nil
}
