package usecase

import (
	"math/rand"
	"sort"

	"github.com/piresc/shuttlefleet/internal/pkg/constants"
	"github.com/piresc/shuttlefleet/internal/pkg/models"
	"github.com/piresc/shuttlefleet/internal/utils"
	"github.com/piresc/shuttlefleet/services/fleet"
)

// RandomSelector picks uniformly among available vehicles
type RandomSelector struct {
	rng *rand.Rand
}

// NewRandomSelector creates a selector drawing from rng
func NewRandomSelector(rng *rand.Rand) *RandomSelector {
	return &RandomSelector{rng: rng}
}

func (s *RandomSelector) SelectVehicle(_ models.Ride, available []models.Vehicle) *models.Vehicle {
	if len(available) == 0 {
		return nil
	}
	v := available[s.rng.Intn(len(available))]
	return &v
}

// NearestSelector picks the vehicle closest to the pickup point.
// Ties go to the larger vehicle, then to the lower shuttle number.
type NearestSelector struct{}

func (NearestSelector) SelectVehicle(ride models.Ride, available []models.Vehicle) *models.Vehicle {
	if len(available) == 0 {
		return nil
	}
	pickup, ok := models.PlaceByID(ride.PickupLocation)
	if !ok {
		return nil
	}

	candidates := append([]models.Vehicle(nil), available...)
	dist := make(map[string]float64, len(candidates))
	for _, v := range candidates {
		dist[v.ID] = utils.CalculateDistance(v.Position(), pickup.Location)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if dist[a.ID] != dist[b.ID] {
			return dist[a.ID] < dist[b.ID]
		}
		if a.Capacity != b.Capacity {
			return a.Capacity > b.Capacity
		}
		return a.ShuttleNumber < b.ShuttleNumber
	})
	return &candidates[0]
}

// NewVehicleSelector returns the selector for an assignment policy name
func NewVehicleSelector(policy string, rng *rand.Rand) fleet.VehicleSelector {
	if policy == constants.PolicyNearest {
		return NearestSelector{}
	}
	return NewRandomSelector(rng)
}

// NextAssignment pairs the oldest pending ride with a vehicle chosen by selector.
// ok is false when there is nothing to assign.
func NextAssignment(snap *models.Snapshot, selector fleet.VehicleSelector) (models.Ride, models.Vehicle, bool) {
	if snap == nil {
		return models.Ride{}, models.Vehicle{}, false
	}
	pending := snap.PendingRides()
	available := snap.AvailableVehicles()
	if len(pending) == 0 || len(available) == 0 {
		return models.Ride{}, models.Vehicle{}, false
	}

	ride := pending[0]
	vehicle := selector.SelectVehicle(ride, available)
	if vehicle == nil {
		return models.Ride{}, models.Vehicle{}, false
	}
	return ride, *vehicle, true
}
