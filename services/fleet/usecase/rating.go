package usecase

import (
	"math/rand"

	"github.com/piresc/shuttlefleet/internal/pkg/models"
)

var ratingComments = map[int][]string{
	1: {"Driver never showed at the pickup point.", "Very unpleasant ride."},
	2: {"Shuttle was late and not very clean.", "Long wait at pickup."},
	3: {"Ride was fine.", "Okay experience overall."},
	4: {"Good ride, friendly driver.", "Comfortable shuttle."},
	5: {"Excellent service!", "Driver was very helpful with our luggage."},
}

// RandomRatingGenerator produces plausible guest feedback for simulated rides.
// Most scores are 4 or 5; about one in ten is low enough to be flagged.
type RandomRatingGenerator struct {
	rng *rand.Rand
}

// NewRandomRatingGenerator creates a generator drawing from rng
func NewRandomRatingGenerator(rng *rand.Rand) *RandomRatingGenerator {
	return &RandomRatingGenerator{rng: rng}
}

func (g *RandomRatingGenerator) Generate(_ models.Ride) models.RatingRequest {
	var overall int
	switch roll := g.rng.Float64(); {
	case roll < 0.1:
		overall = 1 + g.rng.Intn(2)
	case roll < 0.3:
		overall = 3
	default:
		overall = 4 + g.rng.Intn(2)
	}

	comments := ratingComments[overall]
	return models.RatingRequest{
		Rating:            overall,
		DriverRating:      g.around(overall),
		VehicleRating:     g.around(overall),
		PunctualityRating: g.around(overall),
		WouldRecommend:    overall >= 4,
		Comments:          comments[g.rng.Intn(len(comments))],
	}
}

// around returns score shifted by at most one, kept within 1..5
func (g *RandomRatingGenerator) around(score int) int {
	v := score + g.rng.Intn(3) - 1
	if v < 1 {
		return 1
	}
	if v > 5 {
		return 5
	}
	return v
}

// FixedRatingGenerator always returns the same feedback
type FixedRatingGenerator models.RatingRequest

func (g FixedRatingGenerator) Generate(_ models.Ride) models.RatingRequest {
	return models.RatingRequest(g)
}
