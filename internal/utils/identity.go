package utils

import (
	"fmt"
	"math/rand"
	"strings"
)

// RideCodeLength is the number of characters in a human-readable ride code
const RideCodeLength = 6

const rideCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateRideCode returns a 6-character display code. Ambiguous glyphs
// (0/O, 1/I) are excluded so codes can be read out over the phone.
func GenerateRideCode(rng *rand.Rand) string {
	var b strings.Builder
	b.Grow(RideCodeLength)
	for i := 0; i < RideCodeLength; i++ {
		b.WriteByte(rideCodeAlphabet[rng.Intn(len(rideCodeAlphabet))])
	}
	return b.String()
}

// GeneratePhoneNumber returns a pseudo phone number in the fictional 555 exchange
func GeneratePhoneNumber(rng *rand.Rand) string {
	return fmt.Sprintf("+1-713-555-%04d", rng.Intn(10000))
}

var guestFirstNames = []string{"Avery", "Jordan", "Morgan", "Riley", "Casey", "Taylor", "Quinn", "Harper", "Rowan", "Emerson"}
var guestLastNames = []string{"Nguyen", "Garcia", "Patel", "Kim", "Okafor", "Silva", "Johansson", "Haddad", "Moreau", "Tanaka"}

// GenerateGuestName returns a plausible guest name for simulated bookings
func GenerateGuestName(rng *rand.Rand) string {
	return guestFirstNames[rng.Intn(len(guestFirstNames))] + " " + guestLastNames[rng.Intn(len(guestLastNames))]
}

// GenerateRoomNumber returns a room on floors 2 to 15
func GenerateRoomNumber(rng *rand.Rand) string {
	return fmt.Sprintf("%d%02d", 2+rng.Intn(14), 1+rng.Intn(30))
}
