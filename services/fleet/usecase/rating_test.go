package usecase

import (
	"math/rand"
	"testing"

	"github.com/piresc/shuttlefleet/internal/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestRandomRatingGenerator_Generate(t *testing.T) {
	gen := NewRandomRatingGenerator(rand.New(rand.NewSource(42)))

	counts := map[int]int{}
	for i := 0; i < 2000; i++ {
		req := gen.Generate(models.Ride{})

		assert.GreaterOrEqual(t, req.Rating, 1)
		assert.LessOrEqual(t, req.Rating, 5)
		for _, dim := range []int{req.DriverRating, req.VehicleRating, req.PunctualityRating} {
			assert.GreaterOrEqual(t, dim, 1)
			assert.LessOrEqual(t, dim, 5)
			assert.LessOrEqual(t, abs(dim-req.Rating), 1)
		}
		assert.Equal(t, req.Rating >= 4, req.WouldRecommend)
		assert.NotEmpty(t, req.Comments)
		counts[req.Rating]++
	}

	low := counts[1] + counts[2]
	high := counts[4] + counts[5]
	assert.InDelta(t, 200, low, 80)
	assert.InDelta(t, 400, counts[3], 100)
	assert.InDelta(t, 1400, high, 120)
}

func TestFixedRatingGenerator(t *testing.T) {
	want := models.RatingRequest{Rating: 2, Comments: "late"}

	got := FixedRatingGenerator(want).Generate(models.Ride{ID: "r1"})

	assert.Equal(t, want, got)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
