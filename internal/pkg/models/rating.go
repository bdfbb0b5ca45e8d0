package models

import "time"

// FlagThreshold is the highest overall rating that is flagged for review
const FlagThreshold = 2

// Rating is the guest feedback attached to a completed ride
type Rating struct {
	ID                string    `json:"id" db:"id"`
	RideID            string    `json:"ride_id" db:"ride_id"`
	DriverID          string    `json:"driver_id" db:"driver_id"`
	VehicleID         string    `json:"vehicle_id" db:"vehicle_id"`
	Rating            int       `json:"rating" db:"rating"`
	DriverRating      int       `json:"driver_rating" db:"driver_rating"`
	VehicleRating     int       `json:"vehicle_rating" db:"vehicle_rating"`
	PunctualityRating int       `json:"punctuality_rating" db:"punctuality_rating"`
	WouldRecommend    bool      `json:"would_recommend" db:"would_recommend"`
	Comments          string    `json:"comments" db:"comments"`
	FlaggedForReview  bool      `json:"flagged_for_review" db:"flagged_for_review"`
	CreatedDate       time.Time `json:"created_date" db:"created_date"`
	UpdatedDate       time.Time `json:"updated_date" db:"updated_date"`
}

// EntityID returns the store identifier of the rating
func (r Rating) EntityID() string {
	return r.ID
}

// ShouldFlag reports whether an overall score needs manual review
func ShouldFlag(score int) bool {
	return score <= FlagThreshold
}

// RatingRequest carries the scores submitted for a ride. Every score is required and lies in 1..5.
type RatingRequest struct {
	Rating            int    `json:"rating"`
	DriverRating      int    `json:"driver_rating"`
	VehicleRating     int    `json:"vehicle_rating"`
	PunctualityRating int    `json:"punctuality_rating"`
	WouldRecommend    bool   `json:"would_recommend"`
	Comments          string `json:"comments"`
}
