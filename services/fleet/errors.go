package fleet

import (
	"errors"
	"fmt"

	"github.com/piresc/shuttlefleet/internal/pkg/models"
)

var (
	// ErrNotFound is returned when a ride, vehicle, alert or token does not resolve
	ErrNotFound = errors.New("not found")
	// ErrNoVehicleAvailable is returned when an assignment finds no qualifying vehicle
	ErrNoVehicleAvailable = errors.New("no vehicle available")
	// ErrNoVehicles is returned when a simulation is started with an empty fleet
	ErrNoVehicles = errors.New("no vehicles registered")
	// ErrAccessExpired is returned when a public tracking token is past its expiry
	ErrAccessExpired = errors.New("public access expired")
	// ErrAlreadyRated is returned when a ride already has a rating
	ErrAlreadyRated = errors.New("ride already rated")
	// ErrAlreadyResolved is returned when resolving an alert that is no longer active
	ErrAlreadyResolved = errors.New("alert already resolved")
	// ErrSimulationRunning is returned by Start while a simulation is active
	ErrSimulationRunning = errors.New("simulation already running")
	// ErrSyncInProgress is returned by a non-forced sync while another pull is running
	ErrSyncInProgress = errors.New("sync already in progress")
	// ErrNoActor is returned when an operation needs an authenticated actor and none is in scope
	ErrNoActor = errors.New("no authenticated actor in scope")
)

// ValidationError reports bad ride or alert input. Nothing is persisted when it is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InvalidTransition reports a lifecycle operation attempted from the wrong state.
// The ride is left unchanged.
type InvalidTransition struct {
	RideID string
	Op     string
	From   models.RideStatus
}

func (e *InvalidTransition) Error() string {
	return fmt.Sprintf("cannot %s ride %s from status %q", e.Op, e.RideID, e.From)
}

// NetworkError is the terminal failure of a snapshot pull after all retries
type NetworkError struct {
	Attempts int
	Cause    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("sync failed after %d attempts: %v", e.Attempts, e.Cause)
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// WebhookDeliveryError reports a failed event publish
type WebhookDeliveryError struct {
	Event models.EventType
	Cause error
}

func (e *WebhookDeliveryError) Error() string {
	return fmt.Sprintf("failed to deliver %s: %v", e.Event, e.Cause)
}

func (e *WebhookDeliveryError) Unwrap() error {
	return e.Cause
}
