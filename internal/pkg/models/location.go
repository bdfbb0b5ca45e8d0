package models

import "time"

// HubLocationID is the home location every non-hub pickup returns to
const HubLocationID = "hotel-lobby"

// Location represents a geographic point
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Place is a named stop in the service area
type Place struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Location Location `json:"location"`
}

// Places is the fixed service-area catalog, hub first
var Places = []Place{
	{ID: HubLocationID, Name: "Hotel Lobby", Location: Location{Latitude: 29.7074, Longitude: -95.3981}},
	{ID: "museum-fine-arts", Name: "Museum of Fine Arts", Location: Location{Latitude: 29.7256, Longitude: -95.3905}},
	{ID: "medical-center", Name: "Texas Medical Center", Location: Location{Latitude: 29.7079, Longitude: -95.4018}},
	{ID: "rice-village", Name: "Rice Village", Location: Location{Latitude: 29.7174, Longitude: -95.4148}},
	{ID: "nrg-stadium", Name: "NRG Stadium", Location: Location{Latitude: 29.6847, Longitude: -95.4107}},
	{ID: "downtown-aquarium", Name: "Downtown Aquarium", Location: Location{Latitude: 29.7640, Longitude: -95.3670}},
	{ID: "galleria", Name: "The Galleria", Location: Location{Latitude: 29.7390, Longitude: -95.4634}},
	{ID: "hobby-airport", Name: "Hobby Airport", Location: Location{Latitude: 29.6454, Longitude: -95.2789}},
	{ID: "iah-airport", Name: "George Bush Intercontinental Airport", Location: Location{Latitude: 29.9902, Longitude: -95.3368}},
}

// PlaceByID looks up a catalog entry
func PlaceByID(id string) (Place, bool) {
	for _, p := range Places {
		if p.ID == id {
			return p, true
		}
	}
	return Place{}, false
}

// VehicleLocation is the live position of a vehicle as kept by the location tracker
type VehicleLocation struct {
	VehicleNumber string    `json:"vehicle_number"`
	Location      Location  `json:"location"`
	Geohash       string    `json:"geohash"`
	UpdatedAt     time.Time `json:"updated_at"`
}
