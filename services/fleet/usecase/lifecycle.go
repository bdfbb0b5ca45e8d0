package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/shuttlefleet/internal/pkg/logger"
	"github.com/piresc/shuttlefleet/internal/pkg/models"
	"github.com/piresc/shuttlefleet/internal/utils"
	"github.com/piresc/shuttlefleet/services/fleet"
)

// DefaultAccessGrace is how long a completed ride stays reachable through its public token
const DefaultAccessGrace = 5 * time.Minute

// lifecycleUC implements fleet.RideLifecycle
type lifecycleUC struct {
	store       *fleet.Store
	events      fleet.EventGW
	now         func() time.Time
	rng         *rand.Rand
	accessGrace time.Duration
}

// NewLifecycle creates the ride state machine.
// rng is only used from the caller's execution context and need not be goroutine safe.
func NewLifecycle(
	cfg *models.Config,
	store *fleet.Store,
	events fleet.EventGW,
	now func() time.Time,
	rng *rand.Rand,
) fleet.RideLifecycle {
	grace := DefaultAccessGrace
	if cfg != nil && cfg.Simulation.AccessGrace > 0 {
		grace = cfg.Simulation.AccessGrace
	}
	if now == nil {
		now = models.Now
	}
	return &lifecycleUC{
		store:       store,
		events:      events,
		now:         now,
		rng:         rng,
		accessGrace: grace,
	}
}

// CreateRide validates the request and persists a pending ride
func (uc *lifecycleUC) CreateRide(ctx context.Context, req models.CreateRideRequest) (*models.Ride, error) {
	req, err := validateCreateRide(req)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	ride := models.Ride{
		RideCode:          utils.GenerateRideCode(uc.rng),
		PublicAccessToken: uuid.New().String(),
		GuestName:         req.GuestName,
		GuestRoom:         req.GuestRoom,
		GuestPhone:        req.GuestPhone,
		PickupLocation:    req.PickupLocation,
		Destination:       req.Destination,
		SpecialRequests:   req.SpecialRequests,
		Priority:          req.Priority,
		Status:            models.RideStatusPending,
		PendingTimestamp:  models.TimePtr(now),
	}

	created, err := uc.store.Rides.Create(ctx, ride)
	if err != nil {
		return nil, fmt.Errorf("failed to create ride: %w", err)
	}

	logger.Info("Ride created",
		logger.String("ride_id", created.ID),
		logger.String("ride_code", created.RideCode),
		logger.String("pickup", created.PickupLocation),
		logger.String("destination", created.Destination))
	uc.emit(ctx, models.EventRideCreated, created)
	return &created, nil
}

// AssignRide binds an available vehicle to a pending ride
func (uc *lifecycleUC) AssignRide(ctx context.Context, ride models.Ride, vehicle models.Vehicle) (*models.Ride, *models.Vehicle, error) {
	if ride.Status != models.RideStatusPending {
		return nil, nil, uc.invalid(ride, "assign")
	}
	if vehicle.Status != models.VehicleStatusAvailable {
		return nil, nil, fmt.Errorf("vehicle %s is %s: %w", vehicle.ShuttleNumber, vehicle.Status, fleet.ErrNoVehicleAvailable)
	}

	now := uc.now()
	assigned, err := uc.store.Rides.Update(ctx, ride.ID, models.Fields{
		"status":             models.RideStatusAssigned,
		"assigned_driver":    vehicle.CurrentDriver,
		"vehicle_number":     vehicle.ShuttleNumber,
		"assigned_timestamp": now,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to assign ride %s: %w", ride.ID, err)
	}

	inUse, err := uc.store.Vehicles.Update(ctx, vehicle.ID, models.Fields{
		"status": models.VehicleStatusInUse,
	})
	if err != nil {
		uc.rollbackAssignment(ctx, ride)
		return nil, nil, fmt.Errorf("failed to reserve vehicle %s: %w", vehicle.ShuttleNumber, err)
	}

	logger.Info("Ride assigned",
		logger.String("ride_id", assigned.ID),
		logger.String("vehicle_number", inUse.ShuttleNumber),
		logger.String("driver", inUse.CurrentDriver))
	uc.emit(ctx, models.EventRideAssigned, assigned)
	uc.emitVehicleChange(ctx, vehicle, inUse, assigned.ID)
	return &assigned, &inUse, nil
}

// StartRide marks an assigned ride as picked up
func (uc *lifecycleUC) StartRide(ctx context.Context, ride models.Ride) (*models.Ride, error) {
	if ride.Status != models.RideStatusAssigned {
		return nil, uc.invalid(ride, "start")
	}

	started, err := uc.store.Rides.Update(ctx, ride.ID, models.Fields{
		"status":                models.RideStatusInProgress,
		"in_progress_timestamp": uc.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start ride %s: %w", ride.ID, err)
	}

	logger.Info("Ride in progress", logger.String("ride_id", started.ID))
	uc.emit(ctx, models.EventRideInProgress, started)
	return &started, nil
}

// CompleteRide finishes an in-progress ride and frees its vehicle.
// vehicle may be nil when the ride's vehicle is no longer known.
func (uc *lifecycleUC) CompleteRide(ctx context.Context, ride models.Ride, vehicle *models.Vehicle) (*models.Ride, *models.Vehicle, error) {
	if ride.Status != models.RideStatusInProgress {
		return nil, nil, uc.invalid(ride, "complete")
	}

	now := uc.now()
	completed, err := uc.store.Rides.Update(ctx, ride.ID, models.Fields{
		"status":              models.RideStatusCompleted,
		"completed_timestamp": now,
		"completed_time":      now,
		"access_expires_at":   now.Add(uc.accessGrace),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to complete ride %s: %w", ride.ID, err)
	}

	logger.Info("Ride completed", logger.String("ride_id", completed.ID))
	uc.emit(ctx, models.EventRideCompleted, completed)
	return &completed, uc.release(ctx, vehicle, completed.ID), nil
}

// CancelRide cancels a pending or assigned ride and frees its vehicle
func (uc *lifecycleUC) CancelRide(ctx context.Context, ride models.Ride, vehicle *models.Vehicle) (*models.Ride, *models.Vehicle, error) {
	if ride.Status != models.RideStatusPending && ride.Status != models.RideStatusAssigned {
		return nil, nil, uc.invalid(ride, "cancel")
	}

	cancelled, err := uc.store.Rides.Update(ctx, ride.ID, models.Fields{
		"status":            models.RideStatusCancelled,
		"access_expires_at": uc.now().Add(uc.accessGrace),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to cancel ride %s: %w", ride.ID, err)
	}

	logger.Info("Ride cancelled",
		logger.String("ride_id", cancelled.ID),
		logger.String("previous_status", string(ride.Status)))
	uc.emit(ctx, models.EventRideCancelled, cancelled)

	if ride.Status != models.RideStatusAssigned {
		return &cancelled, nil, nil
	}
	return &cancelled, uc.release(ctx, vehicle, cancelled.ID), nil
}

// SubmitRating records the guest's rating of a completed ride and revokes public access
func (uc *lifecycleUC) SubmitRating(ctx context.Context, ride models.Ride, vehicle *models.Vehicle, req models.RatingRequest) (*models.Rating, *models.Ride, error) {
	created, err := uc.storeRating(ctx, ride, vehicle, req)
	if err != nil {
		return nil, nil, err
	}

	revoked, err := uc.store.Rides.Update(ctx, ride.ID, models.Fields{
		"access_expires_at": uc.now(),
	})
	if err != nil {
		logger.Warn("Failed to revoke public access after rating",
			logger.String("ride_id", ride.ID),
			logger.Err(err))
		revoked = ride
	}

	uc.emit(ctx, models.EventRatingSubmitted, *created)
	return created, &revoked, nil
}

// RecordRating persists feedback for a completed ride without touching the ride,
// so its public tracking window stays open
func (uc *lifecycleUC) RecordRating(ctx context.Context, ride models.Ride, vehicle *models.Vehicle, req models.RatingRequest) (*models.Rating, error) {
	created, err := uc.storeRating(ctx, ride, vehicle, req)
	if err != nil {
		return nil, err
	}
	uc.emit(ctx, models.EventRatingSubmitted, *created)
	return created, nil
}

func (uc *lifecycleUC) storeRating(ctx context.Context, ride models.Ride, vehicle *models.Vehicle, req models.RatingRequest) (*models.Rating, error) {
	if ride.Status != models.RideStatusCompleted {
		return nil, uc.invalid(ride, "rate")
	}
	if err := validateRating(req); err != nil {
		return nil, err
	}

	existing, err := uc.store.Ratings.Filter(ctx, models.Query{models.Eq("ride_id", ride.ID)}, models.SortNone, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to check ratings of ride %s: %w", ride.ID, err)
	}
	if len(existing) > 0 {
		return nil, fleet.ErrAlreadyRated
	}

	rating := models.Rating{
		RideID:            ride.ID,
		DriverID:          ride.AssignedDriver,
		Rating:            req.Rating,
		DriverRating:      req.DriverRating,
		VehicleRating:     req.VehicleRating,
		PunctualityRating: req.PunctualityRating,
		WouldRecommend:    req.WouldRecommend,
		Comments:          strings.TrimSpace(req.Comments),
		FlaggedForReview:  models.ShouldFlag(req.Rating),
	}
	if vehicle != nil {
		rating.VehicleID = vehicle.ID
	}

	created, err := uc.store.Ratings.Create(ctx, rating)
	if err != nil {
		return nil, fmt.Errorf("failed to store rating for ride %s: %w", ride.ID, err)
	}

	logger.Info("Rating submitted",
		logger.String("ride_id", ride.ID),
		logger.Int("rating", created.Rating),
		logger.Bool("flagged_for_review", created.FlaggedForReview))
	return &created, nil
}

// CreateAlert raises an emergency alert
func (uc *lifecycleUC) CreateAlert(ctx context.Context, req models.CreateAlertRequest) (*models.EmergencyAlert, error) {
	if !validAlertType(req.AlertType) {
		return nil, &fleet.ValidationError{Field: "alert_type", Reason: fmt.Sprintf("unknown alert type %q", req.AlertType)}
	}
	priority, err := normalizePriority(req.Priority)
	if err != nil {
		return nil, err
	}

	created, err := uc.store.Alerts.Create(ctx, models.EmergencyAlert{
		AlertType:     req.AlertType,
		Message:       strings.TrimSpace(req.Message),
		Priority:      priority,
		Status:        models.AlertStatusActive,
		VehicleNumber: req.VehicleNumber,
		RideID:        req.RideID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create alert: %w", err)
	}

	logger.Warn("Emergency alert raised",
		logger.String("alert_id", created.ID),
		logger.String("alert_type", string(created.AlertType)),
		logger.String("vehicle_number", created.VehicleNumber))
	uc.emit(ctx, models.EventAlertCreated, created)
	return &created, nil
}

// ResolveAlert closes an active alert
func (uc *lifecycleUC) ResolveAlert(ctx context.Context, alert models.EmergencyAlert) (*models.EmergencyAlert, error) {
	if alert.Status != models.AlertStatusActive {
		return nil, fmt.Errorf("alert %s: %w", alert.ID, fleet.ErrAlreadyResolved)
	}

	resolved, err := uc.store.Alerts.Update(ctx, alert.ID, models.Fields{
		"status":      models.AlertStatusResolved,
		"resolved_at": uc.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve alert %s: %w", alert.ID, err)
	}

	logger.Info("Emergency alert resolved", logger.String("alert_id", resolved.ID))
	uc.emit(ctx, models.EventAlertResolved, resolved)
	return &resolved, nil
}

// release returns a vehicle to the available pool. Failures are logged; the
// vehicle is then picked up as-is by the next sync.
func (uc *lifecycleUC) release(ctx context.Context, vehicle *models.Vehicle, rideID string) *models.Vehicle {
	if vehicle == nil {
		return nil
	}
	if vehicle.Status != models.VehicleStatusInUse {
		return vehicle
	}

	freed, err := uc.store.Vehicles.Update(ctx, vehicle.ID, models.Fields{
		"status": models.VehicleStatusAvailable,
	})
	if err != nil {
		logger.Error("Failed to release vehicle",
			logger.String("vehicle_number", vehicle.ShuttleNumber),
			logger.String("ride_id", rideID),
			logger.Err(err))
		return nil
	}

	uc.emitVehicleChange(ctx, *vehicle, freed, rideID)
	return &freed
}

func (uc *lifecycleUC) rollbackAssignment(ctx context.Context, ride models.Ride) {
	_, err := uc.store.Rides.Update(ctx, ride.ID, models.Fields{
		"status":             models.RideStatusPending,
		"assigned_driver":    "",
		"vehicle_number":     "",
		"assigned_timestamp": nil,
	})
	if err != nil {
		logger.Error("Failed to roll back ride assignment",
			logger.String("ride_id", ride.ID),
			logger.Err(err))
	}
}

func (uc *lifecycleUC) invalid(ride models.Ride, op string) error {
	err := &fleet.InvalidTransition{RideID: ride.ID, Op: op, From: ride.Status}
	logger.Warn("Invalid ride transition",
		logger.String("ride_id", ride.ID),
		logger.String("op", op),
		logger.String("status", string(ride.Status)))
	return err
}

func (uc *lifecycleUC) emitVehicleChange(ctx context.Context, before, after models.Vehicle, rideID string) {
	uc.emit(ctx, models.EventVehicleStatusChanged, models.VehicleStatusChange{
		VehicleID:     after.ID,
		ShuttleNumber: after.ShuttleNumber,
		From:          before.Status,
		To:            after.Status,
		RideID:        rideID,
	})
}

// emit publishes an event; delivery failures never abort the transition
func (uc *lifecycleUC) emit(ctx context.Context, eventType models.EventType, data interface{}) {
	if uc.events == nil {
		return
	}
	if err := uc.events.Publish(ctx, eventType, data); err != nil {
		var deliveryErr *fleet.WebhookDeliveryError
		if !errors.As(err, &deliveryErr) {
			err = &fleet.WebhookDeliveryError{Event: eventType, Cause: err}
		}
		logger.Warn("Event delivery failed",
			logger.String("event_type", string(eventType)),
			logger.Err(err))
	}
}

func validateCreateRide(req models.CreateRideRequest) (models.CreateRideRequest, error) {
	req.GuestName = strings.TrimSpace(req.GuestName)
	req.PickupLocation = strings.TrimSpace(req.PickupLocation)
	req.Destination = strings.TrimSpace(req.Destination)

	if req.GuestName == "" {
		return req, &fleet.ValidationError{Field: "guest_name", Reason: "is required"}
	}
	if req.PickupLocation == "" {
		return req, &fleet.ValidationError{Field: "pickup_location", Reason: "is required"}
	}
	if _, ok := models.PlaceByID(req.PickupLocation); !ok {
		return req, &fleet.ValidationError{Field: "pickup_location", Reason: fmt.Sprintf("unknown location %q", req.PickupLocation)}
	}

	if req.PickupLocation != models.HubLocationID {
		if req.Destination == "" {
			req.Destination = models.HubLocationID
		}
		if req.Destination != models.HubLocationID {
			return req, &fleet.ValidationError{Field: "destination", Reason: "rides from outside the hub must return to " + models.HubLocationID}
		}
	}

	if req.Destination == "" {
		return req, &fleet.ValidationError{Field: "destination", Reason: "is required"}
	}
	if _, ok := models.PlaceByID(req.Destination); !ok {
		return req, &fleet.ValidationError{Field: "destination", Reason: fmt.Sprintf("unknown location %q", req.Destination)}
	}
	if req.PickupLocation == req.Destination {
		return req, &fleet.ValidationError{Field: "destination", Reason: "must differ from pickup_location"}
	}

	priority, err := normalizePriority(req.Priority)
	if err != nil {
		return req, err
	}
	req.Priority = priority
	return req, nil
}

func normalizePriority(p models.RidePriority) (models.RidePriority, error) {
	switch p {
	case "":
		return models.RidePriorityNormal, nil
	case models.RidePriorityNormal, models.RidePriorityHigh:
		return p, nil
	}
	return "", &fleet.ValidationError{Field: "priority", Reason: fmt.Sprintf("unknown priority %q", p)}
}

func validateRating(req models.RatingRequest) error {
	if req.Rating < 1 || req.Rating > 5 {
		return &fleet.ValidationError{Field: "rating", Reason: "must be between 1 and 5"}
	}
	dims := []struct {
		field string
		score int
	}{
		{"driver_rating", req.DriverRating},
		{"vehicle_rating", req.VehicleRating},
		{"punctuality_rating", req.PunctualityRating},
	}
	for _, d := range dims {
		if d.score < 1 || d.score > 5 {
			return &fleet.ValidationError{Field: d.field, Reason: "must be between 1 and 5"}
		}
	}
	return nil
}

func validAlertType(t models.AlertType) bool {
	switch t {
	case models.AlertTypeSOS, models.AlertTypeAccident, models.AlertTypeMedical,
		models.AlertTypeBreakdown, models.AlertTypeSecurity, models.AlertTypeOther:
		return true
	}
	return false
}
