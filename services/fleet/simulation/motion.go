package simulation

import (
	"context"
	"sort"
	"time"

	"github.com/piresc/shuttlefleet/internal/pkg/logger"
	"github.com/piresc/shuttlefleet/internal/pkg/models"
	"github.com/piresc/shuttlefleet/internal/utils"
)

// SpeedKmPerSecond is the simulated shuttle speed: 0.00015 degrees per second at 111 km per degree
const SpeedKmPerSecond = 0.00015 * 111

// persistTimeout bounds a single fire-and-forget position write
const persistTimeout = 5 * time.Second

// Phase is the segment of a ride a vehicle is currently driving
type Phase string

const (
	PhaseToPickup      Phase = "to_pickup"
	PhaseToDestination Phase = "to_destination"
)

// RouteLeg is the in-memory travel state of one vehicle serving one ride
type RouteLeg struct {
	RideID      string
	VehicleID   string
	Phase       Phase
	Start       models.Location
	Pickup      models.Location
	Destination models.Location
	Progress    float64
	StartTime   time.Time

	// completing is set once the destination is reached and the grace timer is armed
	completing bool
}

// Target returns the point the current phase drives towards
func (l RouteLeg) Target() models.Location {
	if l.Phase == PhaseToPickup {
		return l.Pickup
	}
	return l.Destination
}

// LegProgress returns the completed fraction of a leg of distanceKm after elapsed
func LegProgress(distanceKm float64, elapsed time.Duration) float64 {
	if distanceKm <= 0 {
		return 1
	}
	estimated := distanceKm / SpeedKmPerSecond
	return utils.Clamp01(float64(elapsed.Milliseconds()) / (estimated * 1000))
}

// openLeg starts the to_pickup phase of vehicle serving ride. Any previous leg of the vehicle is dropped.
func (o *Orchestrator) openLeg(ride models.Ride, vehicle models.Vehicle) {
	pickup, _ := models.PlaceByID(ride.PickupLocation)
	destination, _ := models.PlaceByID(ride.Destination)

	o.legs[vehicle.ID] = &RouteLeg{
		RideID:      ride.ID,
		VehicleID:   vehicle.ID,
		Phase:       PhaseToPickup,
		Start:       vehicle.Position(),
		Pickup:      pickup.Location,
		Destination: destination.Location,
		StartTime:   o.sched.Now(),
	}
}

// dropLegOfRide forgets the leg serving rideID and any pending completion of it
func (o *Orchestrator) dropLegOfRide(rideID string) {
	for id, leg := range o.legs {
		if leg.RideID == rideID {
			delete(o.legs, id)
		}
	}
	if h, ok := o.graces[rideID]; ok {
		h.Cancel()
		delete(o.graces, rideID)
	}
}

// motionTick advances every open leg
func (o *Orchestrator) motionTick() {
	if len(o.legs) == 0 {
		return
	}

	ids := make([]string, 0, len(o.legs))
	for id := range o.legs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	now := o.sched.Now()
	for _, id := range ids {
		leg, ok := o.legs[id]
		if !ok || leg.completing {
			continue
		}
		o.advanceLeg(leg, now)
	}
}

func (o *Orchestrator) advanceLeg(leg *RouteLeg, now time.Time) {
	snap := o.engine.Snapshot()
	ride, ok := snap.FindRide(leg.RideID)
	if !ok || !phaseMatches(leg.Phase, ride.Status) {
		logger.Debug("Discarding stale route leg",
			logger.String("ride_id", leg.RideID),
			logger.String("vehicle_id", leg.VehicleID),
			logger.String("phase", string(leg.Phase)))
		delete(o.legs, leg.VehicleID)
		return
	}
	vehicle, ok := snap.FindVehicle(leg.VehicleID)
	if !ok {
		delete(o.legs, leg.VehicleID)
		return
	}

	target := leg.Target()
	leg.Progress = LegProgress(utils.CalculateDistance(leg.Start, target), now.Sub(leg.StartTime))
	position := utils.Interpolate(leg.Start, target, leg.Progress)
	o.moveVehicle(vehicle, position, ride.ID, now)

	if leg.Progress < 1 {
		return
	}

	switch leg.Phase {
	case PhaseToPickup:
		started, err := o.lifecycle.StartRide(o.serviceCtx, ride)
		if err != nil {
			logger.Warn("Failed to start ride at pickup", logger.String("ride_id", ride.ID), logger.Err(err))
			return
		}
		o.applyRide(started)
		leg.Phase = PhaseToDestination
		leg.Start = leg.Pickup
		leg.Progress = 0
		leg.StartTime = now
		o.afterWrite()
	case PhaseToDestination:
		leg.completing = true
		rideID := ride.ID
		o.graces[rideID] = o.sched.After(o.cfg.CompletionGrace, func() {
			delete(o.graces, rideID)
			o.finishRide(leg.VehicleID, rideID)
		})
	}
}

// finishRide completes a ride whose vehicle reached the destination and records simulated feedback.
// The leg survives a failed completion so the next motion tick retries it.
func (o *Orchestrator) finishRide(vehicleID, rideID string) {
	snap := o.engine.Snapshot()
	ride, ok := snap.FindRide(rideID)
	if !ok || ride.Status != models.RideStatusInProgress {
		o.dropLegOfRide(rideID)
		return
	}
	var vehicle *models.Vehicle
	if v, ok := snap.FindVehicle(vehicleID); ok {
		vehicle = &v
	}

	completed, freed, err := o.lifecycle.CompleteRide(o.serviceCtx, ride, vehicle)
	if err != nil {
		logger.Warn("Failed to complete ride, retrying on next motion tick",
			logger.String("ride_id", rideID),
			logger.String("vehicle_id", vehicleID),
			logger.Err(err))
		if leg, ok := o.legs[vehicleID]; ok && leg.RideID == rideID {
			leg.completing = false
		}
		return
	}
	o.dropLegOfRide(rideID)
	o.applyRide(completed, freed)
	if freed != nil {
		vehicle = freed
	}

	if _, err := o.lifecycle.RecordRating(o.serviceCtx, *completed, vehicle, o.ratings.Generate(*completed)); err != nil {
		logger.Warn("Failed to record simulated rating", logger.String("ride_id", rideID), logger.Err(err))
	}
	o.afterWrite()
}

// moveVehicle updates the read model at once and persists the position in the background.
// A lost write is overwritten by the next tick.
func (o *Orchestrator) moveVehicle(vehicle models.Vehicle, position models.Location, rideID string, now time.Time) {
	vehicle.LocationLat = position.Latitude
	vehicle.LocationLng = position.Longitude
	vehicle.LocationUpdated = models.TimePtr(now)
	o.engine.Apply(func(s *models.Snapshot) *models.Snapshot { return s.WithVehicle(vehicle) })

	ctx := o.serviceCtx
	o.writes.Go(func() {
		ctx, cancel := context.WithTimeout(ctx, persistTimeout)
		defer cancel()

		_, err := o.store.Vehicles.Update(ctx, vehicle.ID, models.Fields{
			"location_lat":     position.Latitude,
			"location_lng":     position.Longitude,
			"location_updated": now,
		})
		if err != nil {
			logger.Debug("Failed to persist vehicle position",
				logger.String("vehicle_number", vehicle.ShuttleNumber),
				logger.Err(err))
		}

		if o.locations == nil {
			return
		}
		err = o.locations.SaveVehicleLocation(ctx, models.VehicleLocation{
			VehicleNumber: vehicle.ShuttleNumber,
			Location:      position,
			UpdatedAt:     now,
		}, rideID)
		if err != nil {
			logger.Debug("Failed to track vehicle location",
				logger.String("vehicle_number", vehicle.ShuttleNumber),
				logger.Err(err))
		}
	})
}

func phaseMatches(phase Phase, status models.RideStatus) bool {
	switch phase {
	case PhaseToPickup:
		return status == models.RideStatusAssigned
	case PhaseToDestination:
		return status == models.RideStatusInProgress
	}
	return false
}
