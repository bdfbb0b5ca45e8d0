package models

import (
	"time"
)

// EventType names an outbound notification
type EventType string

const (
	EventRideCreated          EventType = "ride.created"
	EventRideAssigned         EventType = "ride.assigned"
	EventRideInProgress       EventType = "ride.in_progress"
	EventRideCompleted        EventType = "ride.completed"
	EventRideCancelled        EventType = "ride.cancelled"
	EventAlertCreated         EventType = "alert.created"
	EventAlertResolved        EventType = "alert.resolved"
	EventVehicleStatusChanged EventType = "vehicle.status_changed"
	EventRatingSubmitted      EventType = "rating.submitted"
)

// Event is the envelope published to the webhook dispatcher
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	Tenant     string      `json:"tenant"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data"`
}

// VehicleStatusChange is the payload of vehicle.status_changed
type VehicleStatusChange struct {
	VehicleID     string        `json:"vehicle_id"`
	ShuttleNumber string        `json:"shuttle_number"`
	From          VehicleStatus `json:"from"`
	To            VehicleStatus `json:"to"`
	RideID        string        `json:"ride_id,omitempty"`
}
