package fleet

import (
	"context"

	"github.com/piresc/shuttlefleet/internal/pkg/models"
)

// RideLifecycle applies ride state transitions and their side effects to the store.
// Every method checks its precondition against the entities passed in and returns
// the entities as written by the store.
// go:generate mockgen -destination=mocks/mock_lifecycle.go -package=mocks github.com/piresc/shuttlefleet/services/fleet RideLifecycle
type RideLifecycle interface {
	CreateRide(ctx context.Context, req models.CreateRideRequest) (*models.Ride, error)
	AssignRide(ctx context.Context, ride models.Ride, vehicle models.Vehicle) (*models.Ride, *models.Vehicle, error)
	StartRide(ctx context.Context, ride models.Ride) (*models.Ride, error)
	CompleteRide(ctx context.Context, ride models.Ride, vehicle *models.Vehicle) (*models.Ride, *models.Vehicle, error)
	CancelRide(ctx context.Context, ride models.Ride, vehicle *models.Vehicle) (*models.Ride, *models.Vehicle, error)
	SubmitRating(ctx context.Context, ride models.Ride, vehicle *models.Vehicle, req models.RatingRequest) (*models.Rating, *models.Ride, error)
	RecordRating(ctx context.Context, ride models.Ride, vehicle *models.Vehicle, req models.RatingRequest) (*models.Rating, error)
	CreateAlert(ctx context.Context, req models.CreateAlertRequest) (*models.EmergencyAlert, error)
	ResolveAlert(ctx context.Context, alert models.EmergencyAlert) (*models.EmergencyAlert, error)
}

// VehicleSelector picks the vehicle for a pending ride, or nil when none qualifies
type VehicleSelector interface {
	SelectVehicle(ride models.Ride, available []models.Vehicle) *models.Vehicle
}

// RatingGenerator produces the synthetic feedback recorded for simulated rides
type RatingGenerator interface {
	Generate(ride models.Ride) models.RatingRequest
}

// FleetUC is the dispatcher and guest facing API of the fleet service
// go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/shuttlefleet/services/fleet FleetUC
type FleetUC interface {
	State() models.SimulationState
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Refresh(ctx context.Context) error

	CreateRide(ctx context.Context, req models.CreateRideRequest) (*models.Ride, error)
	AssignRide(ctx context.Context, rideID, vehicleID string) (*models.Ride, error)
	StartRide(ctx context.Context, rideID string) (*models.Ride, error)
	CompleteRide(ctx context.Context, rideID string) (*models.Ride, error)
	CancelRide(ctx context.Context, rideID string) (*models.Ride, error)

	CreateAlert(ctx context.Context, req models.CreateAlertRequest) (*models.EmergencyAlert, error)
	ResolveAlert(ctx context.Context, alertID string) (*models.EmergencyAlert, error)

	TrackRide(ctx context.Context, token string) (*models.RideTracking, error)
	RateRide(ctx context.Context, token string, req models.RatingRequest) (*models.Rating, error)
}
