package models

import (
	"sort"
	"time"
)

// Snapshot is the in-memory copy of the fleet as of the last successful sync.
// A Snapshot is never mutated in place; the With* helpers return modified copies.
type Snapshot struct {
	Rides      []Ride           `json:"rides"`
	Vehicles   []Vehicle        `json:"vehicles"`
	Alerts     []EmergencyAlert `json:"alerts"`
	Drivers    []Driver         `json:"drivers"`
	LastUpdate *time.Time       `json:"last_update,omitempty"`
}

// FindRide returns the ride with the given id
func (s *Snapshot) FindRide(id string) (Ride, bool) {
	for _, r := range s.Rides {
		if r.ID == id {
			return r, true
		}
	}
	return Ride{}, false
}

// FindRideByToken returns the ride reachable through a public access token
func (s *Snapshot) FindRideByToken(token string) (Ride, bool) {
	if token == "" {
		return Ride{}, false
	}
	for _, r := range s.Rides {
		if r.PublicAccessToken == token {
			return r, true
		}
	}
	return Ride{}, false
}

// FindVehicle returns the vehicle with the given id
func (s *Snapshot) FindVehicle(id string) (Vehicle, bool) {
	for _, v := range s.Vehicles {
		if v.ID == id {
			return v, true
		}
	}
	return Vehicle{}, false
}

// FindVehicleByNumber returns the vehicle whose shuttle number matches
func (s *Snapshot) FindVehicleByNumber(number string) (Vehicle, bool) {
	if number == "" {
		return Vehicle{}, false
	}
	for _, v := range s.Vehicles {
		if v.ShuttleNumber == number {
			return v, true
		}
	}
	return Vehicle{}, false
}

// PendingRides returns pending rides oldest first by pending timestamp
func (s *Snapshot) PendingRides() []Ride {
	var pending []Ride
	for _, r := range s.Rides {
		if r.Status == RideStatusPending {
			pending = append(pending, r)
		}
	}
	sortRidesByPending(pending)
	return pending
}

// AvailableVehicles returns vehicles ready for assignment
func (s *Snapshot) AvailableVehicles() []Vehicle {
	var available []Vehicle
	for _, v := range s.Vehicles {
		if v.Status == VehicleStatusAvailable {
			available = append(available, v)
		}
	}
	return available
}

// WithRide returns a copy of the snapshot in which r replaces the ride with the
// same id, or is prepended when the ride is new
func (s *Snapshot) WithRide(r Ride) *Snapshot {
	next := s.clone()
	for i := range next.Rides {
		if next.Rides[i].ID == r.ID {
			next.Rides[i] = r
			return next
		}
	}
	next.Rides = append([]Ride{r}, next.Rides...)
	return next
}

// WithVehicle returns a copy of the snapshot with v replacing the vehicle of the same id
func (s *Snapshot) WithVehicle(v Vehicle) *Snapshot {
	next := s.clone()
	for i := range next.Vehicles {
		if next.Vehicles[i].ID == v.ID {
			next.Vehicles[i] = v
			return next
		}
	}
	next.Vehicles = append(next.Vehicles, v)
	return next
}

// WithAlert returns a copy of the snapshot reflecting a created or updated alert.
// Only active alerts are kept.
func (s *Snapshot) WithAlert(a EmergencyAlert) *Snapshot {
	next := s.clone()
	alerts := make([]EmergencyAlert, 0, len(next.Alerts)+1)
	if a.Status == AlertStatusActive {
		alerts = append(alerts, a)
	}
	for _, existing := range next.Alerts {
		if existing.ID != a.ID {
			alerts = append(alerts, existing)
		}
	}
	next.Alerts = alerts
	return next
}

func (s *Snapshot) clone() *Snapshot {
	if s == nil {
		return &Snapshot{}
	}
	return &Snapshot{
		Rides:      append([]Ride(nil), s.Rides...),
		Vehicles:   append([]Vehicle(nil), s.Vehicles...),
		Alerts:     append([]EmergencyAlert(nil), s.Alerts...),
		Drivers:    append([]Driver(nil), s.Drivers...),
		LastUpdate: s.LastUpdate,
	}
}

// Stats computes the dashboard counters for the snapshot
func (s *Snapshot) Stats() SimulationStats {
	var stats SimulationStats
	for _, r := range s.Rides {
		stats.TotalRides++
		switch r.Status {
		case RideStatusPending:
			stats.PendingRides++
		case RideStatusAssigned, RideStatusInProgress:
			stats.ActiveRides++
		case RideStatusCompleted:
			stats.CompletedRides++
		case RideStatusCancelled:
			stats.CancelledRides++
		}
	}
	for _, v := range s.Vehicles {
		switch v.Status {
		case VehicleStatusAvailable:
			stats.AvailableVehicles++
		case VehicleStatusInUse:
			stats.VehiclesInUse++
		}
	}
	stats.ActiveDrivers = len(s.Drivers)
	stats.ActiveAlerts = len(s.Alerts)
	return stats
}

// SimulationStats are the aggregate counters shown on the dispatcher console
type SimulationStats struct {
	TotalRides        int `json:"total_rides"`
	PendingRides      int `json:"pending_rides"`
	ActiveRides       int `json:"active_rides"`
	CompletedRides    int `json:"completed_rides"`
	CancelledRides    int `json:"cancelled_rides"`
	AvailableVehicles int `json:"available_vehicles"`
	VehiclesInUse     int `json:"vehicles_in_use"`
	ActiveDrivers     int `json:"active_drivers"`
	ActiveAlerts      int `json:"active_alerts"`
}

// SimulationState is the read model exposed to dispatcher clients
type SimulationState struct {
	IsActive      bool             `json:"is_active"`
	TimeRemaining int              `json:"time_remaining"`
	Stats         SimulationStats  `json:"stats"`
	Vehicles      []Vehicle        `json:"vehicles"`
	Rides         []Ride           `json:"rides"`
	Alerts        []EmergencyAlert `json:"alerts"`
	Drivers       []Driver         `json:"drivers"`
	LastUpdate    *time.Time       `json:"last_update,omitempty"`
	NetworkError  bool             `json:"network_error"`
	LastError     string           `json:"last_error,omitempty"`
}

func sortRidesByPending(rides []Ride) {
	sort.SliceStable(rides, func(i, j int) bool {
		a, b := rides[i].PendingTimestamp, rides[j].PendingTimestamp
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
}
