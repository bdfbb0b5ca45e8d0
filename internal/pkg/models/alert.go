package models

import "time"

type AlertType string
type AlertStatus string

const (
	AlertTypeSOS       AlertType = "sos"
	AlertTypeAccident  AlertType = "accident"
	AlertTypeMedical   AlertType = "medical"
	AlertTypeBreakdown AlertType = "breakdown"
	AlertTypeSecurity  AlertType = "security"
	AlertTypeOther     AlertType = "other"

	AlertStatusActive   AlertStatus = "active"
	AlertStatusResolved AlertStatus = "resolved"
)

// EmergencyAlert is raised by a driver or dispatcher and resolved by a dispatcher
type EmergencyAlert struct {
	ID            string       `json:"id" db:"id"`
	AlertType     AlertType    `json:"alert_type" db:"alert_type"`
	Message       string       `json:"message" db:"message"`
	Priority      RidePriority `json:"priority" db:"priority"`
	Status        AlertStatus  `json:"status" db:"status"`
	VehicleNumber string       `json:"vehicle_number,omitempty" db:"vehicle_number"`
	RideID        string       `json:"ride_id,omitempty" db:"ride_id"`
	ResolvedAt    *time.Time   `json:"resolved_at,omitempty" db:"resolved_at"`
	CreatedDate   time.Time    `json:"created_date" db:"created_date"`
	UpdatedDate   time.Time    `json:"updated_date" db:"updated_date"`
}

// EntityID returns the store identifier of the alert
func (a EmergencyAlert) EntityID() string {
	return a.ID
}

// CreateAlertRequest carries the input for raising an emergency alert
type CreateAlertRequest struct {
	AlertType     AlertType    `json:"alert_type"`
	Message       string       `json:"message"`
	Priority      RidePriority `json:"priority"`
	VehicleNumber string       `json:"vehicle_number"`
	RideID        string       `json:"ride_id"`
}
