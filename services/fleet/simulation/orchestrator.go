// Package simulation drives the dispatcher: it owns the simulation timers,
// the route legs of moving vehicles and the single execution context every
// fleet operation runs on.
package simulation

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	appctx "github.com/piresc/shuttlefleet/internal/pkg/context"
	"github.com/piresc/shuttlefleet/internal/pkg/logger"
	"github.com/piresc/shuttlefleet/internal/pkg/models"
	"github.com/piresc/shuttlefleet/internal/pkg/scheduler"
	"github.com/piresc/shuttlefleet/services/fleet"
	"github.com/piresc/shuttlefleet/services/fleet/syncer"
	"github.com/piresc/shuttlefleet/services/fleet/usecase"
	"github.com/sourcegraph/conc"
	"go.uber.org/atomic"
)

// Defaults applied to zero simulation settings
const (
	DefaultDuration           = time.Hour
	DefaultCountdownInterval  = time.Second
	DefaultRideCreationMin    = 15 * time.Second
	DefaultRideCreationMax    = 30 * time.Second
	DefaultAssignmentInterval = 8 * time.Second
	DefaultMotionInterval     = 2 * time.Second
	DefaultSyncInterval       = 10 * time.Second
	DefaultCompletionGrace    = 2 * time.Second
	DefaultSearchRadiusKm     = 5.0
	DefaultServiceActor       = "fleet-simulator"
)

// ServiceRole is the actor role of work the simulator does on its own behalf
const ServiceRole = "service"

// Deps are the collaborators of an Orchestrator
type Deps struct {
	Config    *models.Config
	Scheduler scheduler.Scheduler
	Store     *fleet.Store
	Lifecycle fleet.RideLifecycle
	Engine    *syncer.Engine
	Locations fleet.LocationRepo // optional
	Selector  fleet.VehicleSelector
	Ratings   fleet.RatingGenerator
	Rides     *RideGenerator
	Rand      *rand.Rand
}

// Orchestrator implements fleet.FleetUC.
//
// Fields below the scheduler line are only touched on the scheduler's
// execution context; everything read by State is atomic.
type Orchestrator struct {
	cfg        models.SimulationConfig
	sched      scheduler.Scheduler
	store      *fleet.Store
	lifecycle  fleet.RideLifecycle
	engine     *syncer.Engine
	locations  fleet.LocationRepo
	selector   fleet.VehicleSelector
	ratings    fleet.RatingGenerator
	rides      *RideGenerator
	rng        *rand.Rand
	serviceCtx context.Context
	writes     conc.WaitGroup

	active    atomic.Bool
	remaining atomic.Int64

	// scheduler
	tasks    scheduler.Group
	nextRide scheduler.Handle
	syncTask scheduler.Handle
	graces   map[string]scheduler.Handle
	legs     map[string]*RouteLeg
}

// NewOrchestrator wires a stopped simulation
func NewOrchestrator(d Deps) *Orchestrator {
	cfg := withDefaults(d.Config)
	rng := d.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	rides := d.Rides
	if rides == nil {
		rides = NewRideGenerator(rng)
	}
	selector := d.Selector
	if selector == nil {
		selector = usecase.NewRandomSelector(rng)
	}
	ratings := d.Ratings
	if ratings == nil {
		ratings = usecase.NewRandomRatingGenerator(rng)
	}

	o := &Orchestrator{
		cfg:       cfg,
		sched:     d.Scheduler,
		store:     d.Store,
		lifecycle: d.Lifecycle,
		engine:    d.Engine,
		locations: d.Locations,
		selector:  selector,
		ratings:   ratings,
		rides:     rides,
		rng:       rng,
		serviceCtx: appctx.WithActor(context.Background(), appctx.Actor{
			ID:   cfg.ServiceActor,
			Role: ServiceRole,
		}),
		graces: make(map[string]scheduler.Handle),
		legs:   make(map[string]*RouteLeg),
	}
	o.engine.OnExhausted(func(err error) {
		logger.Warn("Dispatcher snapshot is stale until the next successful sync",
			logger.Any("last_update", o.engine.Snapshot().LastUpdate),
			logger.Err(err))
	})
	return o
}

func withDefaults(c *models.Config) models.SimulationConfig {
	var cfg models.SimulationConfig
	if c != nil {
		cfg = c.Simulation
	}
	if cfg.ServiceActor == "" {
		cfg.ServiceActor = DefaultServiceActor
	}
	if cfg.Duration <= 0 {
		cfg.Duration = DefaultDuration
	}
	if cfg.CountdownInterval <= 0 {
		cfg.CountdownInterval = DefaultCountdownInterval
	}
	if cfg.RideCreationMin <= 0 {
		cfg.RideCreationMin = DefaultRideCreationMin
	}
	if cfg.RideCreationMax < cfg.RideCreationMin {
		cfg.RideCreationMax = cfg.RideCreationMin
		if cfg.RideCreationMin == DefaultRideCreationMin {
			cfg.RideCreationMax = DefaultRideCreationMax
		}
	}
	if cfg.AssignmentInterval <= 0 {
		cfg.AssignmentInterval = DefaultAssignmentInterval
	}
	if cfg.MotionInterval <= 0 {
		cfg.MotionInterval = DefaultMotionInterval
	}
	if cfg.SyncInterval <= 0 {
		cfg.SyncInterval = DefaultSyncInterval
	}
	if cfg.CompletionGrace <= 0 {
		cfg.CompletionGrace = DefaultCompletionGrace
	}
	if cfg.SearchRadiusKm <= 0 {
		cfg.SearchRadiusKm = DefaultSearchRadiusKm
	}
	return cfg
}

// Open pulls the first snapshot and starts the free-running sync, which keeps
// the read model fresh whether or not a simulation is running.
func (o *Orchestrator) Open(ctx context.Context) error {
	return o.sched.Call(ctx, func() {
		o.syncTick()
		o.syncTask = o.sched.Every(o.cfg.SyncInterval, o.syncTick)
	})
}

// Close stops the simulation and the free-running sync, then waits for
// position writes still in flight
func (o *Orchestrator) Close(ctx context.Context) {
	err := o.sched.Call(ctx, func() {
		o.stop()
		if o.syncTask != nil {
			o.syncTask.Cancel()
			o.syncTask = nil
		}
	})
	if err != nil && !errors.Is(err, scheduler.ErrStopped) {
		logger.Warn("Failed to stop simulation on close", logger.Err(err))
	}
	o.engine.Close()

	if r := o.writes.WaitAndRecover(); r != nil {
		logger.Error("Recovered panic in position writer", logger.Err(r.AsError()))
	}
}

// State returns the read model shown to dispatchers
func (o *Orchestrator) State() models.SimulationState {
	snap := o.engine.Snapshot()
	return models.SimulationState{
		IsActive:      o.active.Load(),
		TimeRemaining: int(o.remaining.Load()),
		Stats:         snap.Stats(),
		Vehicles:      snap.Vehicles,
		Rides:         snap.Rides,
		Alerts:        snap.Alerts,
		Drivers:       snap.Drivers,
		LastUpdate:    snap.LastUpdate,
		NetworkError:  o.engine.NetworkError(),
		LastError:     o.engine.LastError(),
	}
}

// Leg returns a copy of the route leg of a vehicle. Must run on the execution context.
func (o *Orchestrator) Leg(vehicleID string) (RouteLeg, bool) {
	leg, ok := o.legs[vehicleID]
	if !ok {
		return RouteLeg{}, false
	}
	return *leg, true
}

// Start resets the fleet and arms the simulation timers
func (o *Orchestrator) Start(ctx context.Context) error {
	var err error
	if callErr := o.sched.Call(ctx, func() { err = o.start() }); callErr != nil {
		return callErr
	}
	return err
}

func (o *Orchestrator) start() error {
	if o.active.Load() {
		return fleet.ErrSimulationRunning
	}

	snap := o.engine.Snapshot()
	if len(snap.Vehicles) == 0 {
		if fresh, err := o.engine.Sync(o.serviceCtx, 0, true); err == nil {
			snap = fresh
		}
	}
	if len(snap.Vehicles) == 0 {
		return fleet.ErrNoVehicles
	}

	for _, v := range snap.Vehicles {
		if v.Status == models.VehicleStatusAvailable {
			continue
		}
		reset, err := o.store.Vehicles.Update(o.serviceCtx, v.ID, models.Fields{
			"status": models.VehicleStatusAvailable,
		})
		if err != nil {
			logger.Warn("Failed to reset vehicle", logger.String("vehicle_number", v.ShuttleNumber), logger.Err(err))
			continue
		}
		o.applyVehicle(&reset)
	}

	for id := range o.legs {
		delete(o.legs, id)
	}
	o.remaining.Store(int64(o.cfg.Duration / time.Second))
	o.active.Store(true)

	o.tasks.Add(o.sched.Every(o.cfg.CountdownInterval, o.countdownTick))
	o.scheduleNextRide()
	o.tasks.Add(o.sched.Every(o.cfg.AssignmentInterval, o.assignmentTick))
	o.tasks.Add(o.sched.Every(o.cfg.MotionInterval, o.motionTick))

	logger.Info("Simulation started",
		logger.Int("vehicles", len(snap.Vehicles)),
		logger.Duration("duration", o.cfg.Duration))
	return nil
}

// Stop cancels every simulation timer and forgets route legs. Vehicle statuses are left as they are.
func (o *Orchestrator) Stop(ctx context.Context) error {
	return o.sched.Call(ctx, o.stop)
}

func (o *Orchestrator) stop() {
	o.tasks.CancelAll()
	if o.nextRide != nil {
		o.nextRide.Cancel()
		o.nextRide = nil
	}
	for id, h := range o.graces {
		h.Cancel()
		delete(o.graces, id)
	}
	for id := range o.legs {
		delete(o.legs, id)
	}

	if o.active.CompareAndSwap(true, false) {
		logger.Info("Simulation stopped", logger.Int64("time_remaining", o.remaining.Load()))
	}
	o.remaining.Store(0)
}

// Refresh forces a sync on behalf of the caller's actor
func (o *Orchestrator) Refresh(ctx context.Context) error {
	var err error
	if callErr := o.sched.Call(ctx, func() { _, err = o.engine.Sync(ctx, 0, true) }); callErr != nil {
		return callErr
	}
	return err
}

func (o *Orchestrator) countdownTick() {
	step := int64(o.cfg.CountdownInterval / time.Second)
	if step < 1 {
		step = 1
	}
	left := o.remaining.Sub(step)
	if left <= 0 {
		logger.Info("Simulation time elapsed")
		o.stop()
	}
}

func (o *Orchestrator) scheduleNextRide() {
	delay := o.cfg.RideCreationMin
	if spread := o.cfg.RideCreationMax - o.cfg.RideCreationMin; spread > 0 {
		delay += time.Duration(o.rng.Int63n(int64(spread) + 1))
	}
	o.nextRide = o.sched.After(delay, func() {
		o.nextRide = nil
		if !o.active.Load() {
			return
		}
		if _, err := o.createRide(o.serviceCtx, o.rides.Next()); err != nil {
			logger.Warn("Failed to create simulated ride", logger.Err(err))
		}
		o.scheduleNextRide()
	})
}

func (o *Orchestrator) assignmentTick() {
	pick := selectorFunc(func(ride models.Ride, available []models.Vehicle) *models.Vehicle {
		return o.selectVehicle(o.serviceCtx, ride, available)
	})
	ride, vehicle, ok := usecase.NextAssignment(o.engine.Snapshot(), pick)
	if !ok {
		return
	}
	if _, err := o.assign(o.serviceCtx, ride, vehicle); err != nil {
		logger.Warn("Assignment pass failed", logger.String("ride_id", ride.ID), logger.Err(err))
	}
}

type selectorFunc func(ride models.Ride, available []models.Vehicle) *models.Vehicle

func (f selectorFunc) SelectVehicle(ride models.Ride, available []models.Vehicle) *models.Vehicle {
	return f(ride, available)
}

// selectVehicle runs the assignment policy. Nearest-vehicle dispatch with a live
// tracker only considers vehicles the tracker reports within the search radius
// of the pickup, at their tracked positions. It falls back to the snapshot when
// the tracker fails or finds nobody.
func (o *Orchestrator) selectVehicle(ctx context.Context, ride models.Ride, available []models.Vehicle) *models.Vehicle {
	if _, nearest := o.selector.(usecase.NearestSelector); !nearest || o.locations == nil || len(available) == 0 {
		return o.selector.SelectVehicle(ride, available)
	}
	pickup, ok := models.PlaceByID(ride.PickupLocation)
	if !ok {
		return o.selector.SelectVehicle(ride, available)
	}

	nearby, err := o.locations.NearbyVehicles(ctx, pickup.Location, o.cfg.SearchRadiusKm)
	if err != nil {
		logger.Warn("Tracker search failed, using snapshot positions",
			logger.String("ride_id", ride.ID),
			logger.Err(err))
		return o.selector.SelectVehicle(ride, available)
	}

	tracked := make(map[string]models.Location, len(nearby))
	for _, loc := range nearby {
		tracked[loc.VehicleNumber] = loc.Location
	}
	byID := make(map[string]models.Vehicle, len(available))
	var candidates []models.Vehicle
	for _, v := range available {
		byID[v.ID] = v
		if pos, ok := tracked[v.ShuttleNumber]; ok {
			v.LocationLat = pos.Latitude
			v.LocationLng = pos.Longitude
			candidates = append(candidates, v)
		}
	}
	if len(candidates) == 0 {
		logger.Debug("No tracked vehicle near pickup, using snapshot positions",
			logger.String("ride_id", ride.ID),
			logger.Float64("radius_km", o.cfg.SearchRadiusKm))
		return o.selector.SelectVehicle(ride, available)
	}

	chosen := o.selector.SelectVehicle(ride, candidates)
	if chosen == nil {
		return nil
	}
	v := byID[chosen.ID]
	return &v
}

func (o *Orchestrator) syncTick() {
	_, err := o.engine.Sync(o.serviceCtx, 0, false)
	switch {
	case err == nil:
	case errors.Is(err, fleet.ErrSyncInProgress):
		logger.Debug("Skipping sync tick, pull in flight")
	default:
		logger.Warn("Sync tick failed", logger.Err(err))
	}
}

// CreateRide books a ride from the dispatcher console or the guest page
func (o *Orchestrator) CreateRide(ctx context.Context, req models.CreateRideRequest) (*models.Ride, error) {
	var (
		ride *models.Ride
		err  error
	)
	if callErr := o.sched.Call(ctx, func() { ride, err = o.createRide(ctx, req) }); callErr != nil {
		return nil, callErr
	}
	return ride, err
}

func (o *Orchestrator) createRide(ctx context.Context, req models.CreateRideRequest) (*models.Ride, error) {
	ride, err := o.lifecycle.CreateRide(ctx, req)
	if err != nil {
		return nil, err
	}
	o.applyRide(ride)
	o.afterWrite()
	return ride, nil
}

// AssignRide assigns a pending ride to vehicleID, or to the policy's choice when vehicleID is empty
func (o *Orchestrator) AssignRide(ctx context.Context, rideID, vehicleID string) (*models.Ride, error) {
	var (
		ride *models.Ride
		err  error
	)
	callErr := o.sched.Call(ctx, func() {
		snap := o.engine.Snapshot()
		current, ok := snap.FindRide(rideID)
		if !ok {
			err = fmt.Errorf("ride %s: %w", rideID, fleet.ErrNotFound)
			return
		}

		var vehicle models.Vehicle
		if vehicleID == "" {
			chosen := o.selectVehicle(ctx, current, snap.AvailableVehicles())
			if chosen == nil {
				err = fleet.ErrNoVehicleAvailable
				return
			}
			vehicle = *chosen
		} else if vehicle, ok = snap.FindVehicle(vehicleID); !ok {
			err = fmt.Errorf("vehicle %s: %w", vehicleID, fleet.ErrNotFound)
			return
		}

		ride, err = o.assign(ctx, current, vehicle)
	})
	if callErr != nil {
		return nil, callErr
	}
	return ride, err
}

func (o *Orchestrator) assign(ctx context.Context, ride models.Ride, vehicle models.Vehicle) (*models.Ride, error) {
	assigned, inUse, err := o.lifecycle.AssignRide(ctx, ride, vehicle)
	if err != nil {
		return nil, err
	}
	o.applyRide(assigned, inUse)
	o.openLeg(*assigned, *inUse)
	o.afterWrite()
	return assigned, nil
}

// StartRide marks a ride as picked up ahead of the simulated vehicle
func (o *Orchestrator) StartRide(ctx context.Context, rideID string) (*models.Ride, error) {
	var (
		ride *models.Ride
		err  error
	)
	callErr := o.sched.Call(ctx, func() {
		current, ok := o.engine.Snapshot().FindRide(rideID)
		if !ok {
			err = fmt.Errorf("ride %s: %w", rideID, fleet.ErrNotFound)
			return
		}
		if ride, err = o.lifecycle.StartRide(ctx, current); err != nil {
			return
		}
		o.applyRide(ride)
		for _, leg := range o.legs {
			if leg.RideID == rideID && leg.Phase == PhaseToPickup {
				leg.Phase = PhaseToDestination
				leg.Start = leg.Pickup
				leg.Progress = 0
				leg.StartTime = o.sched.Now()
			}
		}
		o.afterWrite()
	})
	if callErr != nil {
		return nil, callErr
	}
	return ride, err
}

// CompleteRide finishes an in-progress ride at once, skipping the simulated drive
func (o *Orchestrator) CompleteRide(ctx context.Context, rideID string) (*models.Ride, error) {
	var (
		ride *models.Ride
		err  error
	)
	callErr := o.sched.Call(ctx, func() {
		snap := o.engine.Snapshot()
		current, ok := snap.FindRide(rideID)
		if !ok {
			err = fmt.Errorf("ride %s: %w", rideID, fleet.ErrNotFound)
			return
		}
		var freed *models.Vehicle
		if ride, freed, err = o.lifecycle.CompleteRide(ctx, current, vehicleOf(snap, current)); err != nil {
			return
		}
		o.dropLegOfRide(rideID)
		o.applyRide(ride, freed)
		o.afterWrite()
	})
	if callErr != nil {
		return nil, callErr
	}
	return ride, err
}

// CancelRide cancels a pending or assigned ride and frees its vehicle
func (o *Orchestrator) CancelRide(ctx context.Context, rideID string) (*models.Ride, error) {
	var (
		ride *models.Ride
		err  error
	)
	callErr := o.sched.Call(ctx, func() {
		snap := o.engine.Snapshot()
		current, ok := snap.FindRide(rideID)
		if !ok {
			err = fmt.Errorf("ride %s: %w", rideID, fleet.ErrNotFound)
			return
		}
		var freed *models.Vehicle
		if ride, freed, err = o.lifecycle.CancelRide(ctx, current, vehicleOf(snap, current)); err != nil {
			return
		}
		o.dropLegOfRide(rideID)
		o.applyRide(ride, freed)
		o.afterWrite()
	})
	if callErr != nil {
		return nil, callErr
	}
	return ride, err
}

// CreateAlert raises an emergency alert
func (o *Orchestrator) CreateAlert(ctx context.Context, req models.CreateAlertRequest) (*models.EmergencyAlert, error) {
	var (
		alert *models.EmergencyAlert
		err   error
	)
	callErr := o.sched.Call(ctx, func() {
		if alert, err = o.lifecycle.CreateAlert(ctx, req); err != nil {
			return
		}
		o.applyAlert(alert)
		o.afterWrite()
	})
	if callErr != nil {
		return nil, callErr
	}
	return alert, err
}

// ResolveAlert resolves an active alert
func (o *Orchestrator) ResolveAlert(ctx context.Context, alertID string) (*models.EmergencyAlert, error) {
	var (
		alert *models.EmergencyAlert
		err   error
	)
	callErr := o.sched.Call(ctx, func() {
		current, findErr := o.findAlert(ctx, alertID)
		if findErr != nil {
			err = findErr
			return
		}
		if alert, err = o.lifecycle.ResolveAlert(ctx, current); err != nil {
			return
		}
		o.applyAlert(alert)
		o.afterWrite()
	})
	if callErr != nil {
		return nil, callErr
	}
	return alert, err
}

// findAlert looks in the snapshot first; resolved alerts are only in the store
func (o *Orchestrator) findAlert(ctx context.Context, alertID string) (models.EmergencyAlert, error) {
	for _, a := range o.engine.Snapshot().Alerts {
		if a.ID == alertID {
			return a, nil
		}
	}
	found, err := o.store.Alerts.Filter(ctx, models.Query{models.Eq("id", alertID)}, models.SortNone, 1)
	if err != nil {
		return models.EmergencyAlert{}, fmt.Errorf("failed to look up alert %s: %w", alertID, err)
	}
	if len(found) == 0 {
		return models.EmergencyAlert{}, fmt.Errorf("alert %s: %w", alertID, fleet.ErrNotFound)
	}
	return found[0], nil
}

// TrackRide resolves a public access token to the guest's view of the ride
func (o *Orchestrator) TrackRide(ctx context.Context, token string) (*models.RideTracking, error) {
	ride, err := o.rideByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	tracking := &models.RideTracking{
		RideCode:        ride.RideCode,
		Status:          ride.Status,
		PickupLocation:  ride.PickupLocation,
		Destination:     ride.Destination,
		VehicleNumber:   ride.VehicleNumber,
		AccessExpiresAt: ride.AccessExpiresAt,
		Timestamps: models.RideHistory{
			Pending:    ride.PendingTimestamp,
			Assigned:   ride.AssignedTimestamp,
			InProgress: ride.InProgressTimestamp,
			Completed:  ride.CompletedTimestamp,
		},
	}
	if ride.Status.IsActive() {
		tracking.VehicleLocation = o.vehiclePosition(ctx, ride.VehicleNumber)
	}
	return tracking, nil
}

// vehiclePosition prefers the live tracker and falls back to the snapshot
func (o *Orchestrator) vehiclePosition(ctx context.Context, number string) *models.Location {
	if o.locations != nil {
		live, err := o.locations.GetVehicleLocation(ctx, number)
		if err == nil {
			return &live.Location
		}
		if !errors.Is(err, fleet.ErrNotFound) {
			logger.Debug("Live location lookup failed", logger.String("vehicle_number", number), logger.Err(err))
		}
	}
	if v, ok := o.engine.Snapshot().FindVehicleByNumber(number); ok {
		pos := v.Position()
		return &pos
	}
	return nil
}

// RateRide records the guest's rating of a completed ride and revokes the token
func (o *Orchestrator) RateRide(ctx context.Context, token string, req models.RatingRequest) (*models.Rating, error) {
	var (
		rating *models.Rating
		err    error
	)
	callErr := o.sched.Call(ctx, func() {
		ride, findErr := o.rideByToken(ctx, token)
		if findErr != nil {
			err = findErr
			return
		}
		var revoked *models.Ride
		rating, revoked, err = o.lifecycle.SubmitRating(ctx, *ride, vehicleOf(o.engine.Snapshot(), *ride), req)
		if err != nil {
			return
		}
		o.applyRide(revoked)
		o.afterWrite()
	})
	if callErr != nil {
		return nil, callErr
	}
	return rating, err
}

// rideByToken finds the ride of a public token and rejects expired tokens
func (o *Orchestrator) rideByToken(ctx context.Context, token string) (*models.Ride, error) {
	if token == "" {
		return nil, fleet.ErrNotFound
	}
	ride, ok := o.engine.Snapshot().FindRideByToken(token)
	if !ok {
		found, err := o.store.Rides.Filter(ctx, models.Query{models.Eq("public_access_token", token)}, models.SortNone, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to look up ride: %w", err)
		}
		if len(found) == 0 {
			return nil, fleet.ErrNotFound
		}
		ride = found[0]
	}
	if ride.AccessExpired(o.sched.Now()) {
		return nil, fleet.ErrAccessExpired
	}
	return &ride, nil
}

func vehicleOf(snap *models.Snapshot, ride models.Ride) *models.Vehicle {
	v, ok := snap.FindVehicleByNumber(ride.VehicleNumber)
	if !ok {
		return nil
	}
	return &v
}

// applyRide writes store results into the read model
func (o *Orchestrator) applyRide(ride *models.Ride, vehicles ...*models.Vehicle) {
	o.engine.Apply(func(s *models.Snapshot) *models.Snapshot {
		if ride != nil {
			s = s.WithRide(*ride)
		}
		for _, v := range vehicles {
			if v != nil {
				s = s.WithVehicle(*v)
			}
		}
		return s
	})
}

func (o *Orchestrator) applyVehicle(v *models.Vehicle) {
	o.applyRide(nil, v)
}

func (o *Orchestrator) applyAlert(a *models.EmergencyAlert) {
	o.engine.Apply(func(s *models.Snapshot) *models.Snapshot { return s.WithAlert(*a) })
}

// afterWrite pulls a fresh snapshot when writes are configured to be followed by a resync
func (o *Orchestrator) afterWrite() {
	if !o.cfg.ForceSyncAfterWrite {
		return
	}
	if _, err := o.engine.Sync(o.serviceCtx, 0, true); err != nil {
		logger.Warn("Resync after write failed", logger.Err(err))
	}
}

var _ fleet.FleetUC = (*Orchestrator)(nil)
