package models

import "time"

// DriverStatus represents the duty status of a driver
type DriverStatus string

const (
	DriverStatusSignedIn  DriverStatus = "signed-in"
	DriverStatusOnRide    DriverStatus = "on-ride"
	DriverStatusOnBreak   DriverStatus = "on-break"
	DriverStatusSignedOut DriverStatus = "signed-out"
)

// OnDutyDriverStatuses lists the statuses counted as active drivers
var OnDutyDriverStatuses = []DriverStatus{
	DriverStatusSignedIn,
	DriverStatusOnRide,
	DriverStatusOnBreak,
}

// Driver represents a roster entry observed by the dispatcher
type Driver struct {
	ID            string       `json:"id" db:"id"`
	FullName      string       `json:"full_name" db:"full_name"`
	Phone         string       `json:"phone" db:"phone"`
	Status        DriverStatus `json:"status" db:"status"`
	VehicleNumber string       `json:"vehicle_number" db:"vehicle_number"`
	CreatedDate   time.Time    `json:"created_date" db:"created_date"`
	UpdatedDate   time.Time    `json:"updated_date" db:"updated_date"`
}

// EntityID returns the store identifier of the driver
func (d Driver) EntityID() string {
	return d.ID
}
