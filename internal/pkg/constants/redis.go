package constants

// Redis key formats
const (
	// Live location tracker
	KeyVehicleLocation = "vehicle:location:%s" // Format: vehicle:location:{shuttle_number}
	KeyVehicleGeo      = "vehicles:geo"        // GEO set of the last known vehicle positions

	// Rate Limiting
	KeyRateLimit = "rate:limit:%s:%s" // Format: rate:limit:{resource}:{ip}
)

// Redis hash fields
const (
	FieldLatitude  = "lat"
	FieldLongitude = "lng"
	FieldGeohash   = "geohash"
	FieldTimestamp = "ts"
	FieldRideID    = "ride_id"
)
