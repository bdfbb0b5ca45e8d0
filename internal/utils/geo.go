package utils

import (
	"math"

	"github.com/mmcloughlin/geohash"
	"github.com/piresc/shuttlefleet/internal/pkg/models"
)

// EarthRadiusKm is the mean Earth radius used by the haversine formula
const EarthRadiusKm = 6371.0

// GeohashPrecision is the number of characters kept for tracked vehicle positions (about 1.2 km cells)
const GeohashPrecision = 6

// CalculateDistance calculates the great-circle distance between two points in kilometers
func CalculateDistance(from, to models.Location) float64 {
	lat1 := from.Latitude * math.Pi / 180.0
	lon1 := from.Longitude * math.Pi / 180.0
	lat2 := to.Latitude * math.Pi / 180.0
	lon2 := to.Longitude * math.Pi / 180.0

	dLat := lat2 - lat1
	dLon := lon2 - lon1
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// Interpolate returns the point a fraction t of the way from start to end.
// t is clamped to [0,1].
func Interpolate(start, end models.Location, t float64) models.Location {
	t = Clamp01(t)
	return models.Location{
		Latitude:  start.Latitude + (end.Latitude-start.Latitude)*t,
		Longitude: start.Longitude + (end.Longitude-start.Longitude)*t,
	}
}

// Clamp01 limits v to the unit interval
func Clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// EncodeLocation converts a location to a geohash string
func EncodeLocation(location models.Location, precision uint) string {
	return geohash.EncodeWithPrecision(location.Latitude, location.Longitude, precision)
}
