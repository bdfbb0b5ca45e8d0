package fleet

import (
	"context"

	"github.com/piresc/shuttlefleet/internal/pkg/models"
)

// Entity is a record kept by the entity store
type Entity interface {
	EntityID() string
}

// EntityRepo is the generic entity store API.
// A limit of zero returns every match.
type EntityRepo[T Entity] interface {
	List(ctx context.Context, sort models.Sort, limit int) ([]T, error)
	Filter(ctx context.Context, query models.Query, sort models.Sort, limit int) ([]T, error)
	Create(ctx context.Context, entity T) (T, error)
	Update(ctx context.Context, id string, fields models.Fields) (T, error)
	Delete(ctx context.Context, id string) error
}

// Store groups the entity repositories used by the dispatch core
type Store struct {
	Rides    EntityRepo[models.Ride]
	Vehicles EntityRepo[models.Vehicle]
	Drivers  EntityRepo[models.Driver]
	Alerts   EntityRepo[models.EmergencyAlert]
	Ratings  EntityRepo[models.Rating]
}

// LocationRepo keeps the live position of vehicles
// go:generate mockgen -destination=mocks/mock_location_repo.go -package=mocks github.com/piresc/shuttlefleet/services/fleet LocationRepo
type LocationRepo interface {
	SaveVehicleLocation(ctx context.Context, location models.VehicleLocation, rideID string) error
	GetVehicleLocation(ctx context.Context, vehicleNumber string) (*models.VehicleLocation, error)
	NearbyVehicles(ctx context.Context, location models.Location, radiusKm float64) ([]models.VehicleLocation, error)
}
