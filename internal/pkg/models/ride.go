package models

import (
	"time"
)

// RideStatus represents the status of a ride
type RideStatus string

const (
	RideStatusPending    RideStatus = "pending"
	RideStatusAssigned   RideStatus = "assigned"
	RideStatusInProgress RideStatus = "in-progress"
	RideStatusCompleted  RideStatus = "completed"
	RideStatusCancelled  RideStatus = "cancelled"
)

// IsTerminal reports whether no further transition is possible from the status
func (s RideStatus) IsTerminal() bool {
	return s == RideStatusCompleted || s == RideStatusCancelled
}

// IsActive reports whether a vehicle is bound to a ride in this status
func (s RideStatus) IsActive() bool {
	return s == RideStatusAssigned || s == RideStatusInProgress
}

// RidePriority represents how urgently a ride should be served
type RidePriority string

const (
	RidePriorityNormal RidePriority = "normal"
	RidePriorityHigh   RidePriority = "high"
)

// Ride represents a guest transportation request
type Ride struct {
	ID                  string       `json:"id" db:"id"`
	RideCode            string       `json:"ride_code" db:"ride_code"`
	PublicAccessToken   string       `json:"public_access_token" db:"public_access_token"`
	GuestName           string       `json:"guest_name" db:"guest_name"`
	GuestRoom           string       `json:"guest_room" db:"guest_room"`
	GuestPhone          string       `json:"guest_phone" db:"guest_phone"`
	PickupLocation      string       `json:"pickup_location" db:"pickup_location"`
	Destination         string       `json:"destination" db:"destination"`
	SpecialRequests     string       `json:"special_requests" db:"special_requests"`
	Priority            RidePriority `json:"priority" db:"priority"`
	Status              RideStatus   `json:"status" db:"status"`
	AssignedDriver      string       `json:"assigned_driver" db:"assigned_driver"`
	VehicleNumber       string       `json:"vehicle_number" db:"vehicle_number"`
	PendingTimestamp    *time.Time   `json:"pending_timestamp,omitempty" db:"pending_timestamp"`
	AssignedTimestamp   *time.Time   `json:"assigned_timestamp,omitempty" db:"assigned_timestamp"`
	InProgressTimestamp *time.Time   `json:"in_progress_timestamp,omitempty" db:"in_progress_timestamp"`
	CompletedTimestamp  *time.Time   `json:"completed_timestamp,omitempty" db:"completed_timestamp"`
	CompletedTime       *time.Time   `json:"completed_time,omitempty" db:"completed_time"`
	AccessExpiresAt     *time.Time   `json:"access_expires_at,omitempty" db:"access_expires_at"`
	CreatedDate         time.Time    `json:"created_date" db:"created_date"`
	UpdatedDate         time.Time    `json:"updated_date" db:"updated_date"`
}

// EntityID returns the store identifier of the ride
func (r Ride) EntityID() string {
	return r.ID
}

// AccessExpired reports whether the public tracking token is no longer valid at now
func (r Ride) AccessExpired(now time.Time) bool {
	return r.AccessExpiresAt != nil && !now.Before(*r.AccessExpiresAt)
}

// CreateRideRequest carries the guest or dispatcher input for a new ride
type CreateRideRequest struct {
	GuestName       string       `json:"guest_name"`
	GuestRoom       string       `json:"guest_room"`
	GuestPhone      string       `json:"guest_phone"`
	PickupLocation  string       `json:"pickup_location"`
	Destination     string       `json:"destination"`
	SpecialRequests string       `json:"special_requests"`
	Priority        RidePriority `json:"priority"`
}

// AssignRideRequest selects the vehicle for a manual assignment.
// An empty VehicleID lets the assignment policy choose.
type AssignRideRequest struct {
	VehicleID string `json:"vehicle_id"`
}

// RideTracking is the public view of a ride reachable through its access token
type RideTracking struct {
	RideCode        string      `json:"ride_code"`
	Status          RideStatus  `json:"status"`
	PickupLocation  string      `json:"pickup_location"`
	Destination     string      `json:"destination"`
	VehicleNumber   string      `json:"vehicle_number,omitempty"`
	VehicleLocation *Location   `json:"vehicle_location,omitempty"`
	AccessExpiresAt *time.Time  `json:"access_expires_at,omitempty"`
	Timestamps      RideHistory `json:"timestamps"`
}

// RideHistory groups the lifecycle timestamps of a ride
type RideHistory struct {
	Pending    *time.Time `json:"pending,omitempty"`
	Assigned   *time.Time `json:"assigned,omitempty"`
	InProgress *time.Time `json:"in_progress,omitempty"`
	Completed  *time.Time `json:"completed,omitempty"`
}
