package models

import "time"

// VehicleStatus represents the operational status of a shuttle
type VehicleStatus string

const (
	VehicleStatusOffline     VehicleStatus = "offline"
	VehicleStatusAvailable   VehicleStatus = "available"
	VehicleStatusInUse       VehicleStatus = "in-use"
	VehicleStatusMaintenance VehicleStatus = "maintenance"
)

// Vehicle represents a fleet unit
type Vehicle struct {
	ID              string        `json:"id" db:"id"`
	ShuttleNumber   string        `json:"shuttle_number" db:"shuttle_number"`
	Capacity        int           `json:"capacity" db:"capacity"`
	CurrentMileage  float64       `json:"current_mileage" db:"current_mileage"`
	FuelLevel       float64       `json:"fuel_level" db:"fuel_level"`
	Status          VehicleStatus `json:"status" db:"status"`
	CurrentDriver   string        `json:"current_driver" db:"current_driver"`
	LocationLat     float64       `json:"location_lat" db:"location_lat"`
	LocationLng     float64       `json:"location_lng" db:"location_lng"`
	LocationUpdated *time.Time    `json:"location_updated,omitempty" db:"location_updated"`
	CreatedDate     time.Time     `json:"created_date" db:"created_date"`
	UpdatedDate     time.Time     `json:"updated_date" db:"updated_date"`
}

// EntityID returns the store identifier of the vehicle
func (v Vehicle) EntityID() string {
	return v.ID
}

// Position returns the last known position of the vehicle
func (v Vehicle) Position() Location {
	return Location{Latitude: v.LocationLat, Longitude: v.LocationLng}
}
