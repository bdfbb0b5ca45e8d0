package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/shuttlefleet/internal/pkg/middleware"
	"github.com/piresc/shuttlefleet/internal/pkg/models"
	"github.com/piresc/shuttlefleet/internal/utils"
	"github.com/piresc/shuttlefleet/services/fleet"
)

// Booking is what a guest receives after booking; the tracking token is their only handle on the ride
type Booking struct {
	RideCode          string            `json:"ride_code"`
	PublicAccessToken string            `json:"public_access_token"`
	Status            models.RideStatus `json:"status"`
	PickupLocation    string            `json:"pickup_location"`
	Destination       string            `json:"destination"`
}

// PublicHandler serves the unauthenticated guest pages
type PublicHandler struct {
	fleetUC fleet.FleetUC
}

// NewPublicHandler creates a new guest facing HTTP handler
func NewPublicHandler(fleetUC fleet.FleetUC) *PublicHandler {
	return &PublicHandler{
		fleetUC: fleetUC,
	}
}

// BookRide creates a ride from the guest booking page
func (h *PublicHandler) BookRide(c echo.Context) error {
	var req models.CreateRideRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}
	// guests cannot request priority handling
	req.Priority = models.RidePriorityNormal

	ride, err := h.fleetUC.CreateRide(c.Request().Context(), req)
	if err != nil {
		return respondError(c, "book ride", err)
	}

	middleware.SetRideID(c, ride.ID)
	return utils.SuccessResponse(c, http.StatusCreated, "Ride booked", Booking{
		RideCode:          ride.RideCode,
		PublicAccessToken: ride.PublicAccessToken,
		Status:            ride.Status,
		PickupLocation:    ride.PickupLocation,
		Destination:       ride.Destination,
	})
}

// TrackRide returns the guest's view of the ride behind a tracking token
func (h *PublicHandler) TrackRide(c echo.Context) error {
	token := c.Param("token")
	if token == "" {
		return utils.BadRequestResponse(c, "Tracking token is required")
	}

	tracking, err := h.fleetUC.TrackRide(c.Request().Context(), token)
	if err != nil {
		return respondError(c, "track ride", err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Ride retrieved", tracking)
}

// RateRide records the guest's feedback for a completed ride
func (h *PublicHandler) RateRide(c echo.Context) error {
	token := c.Param("token")
	if token == "" {
		return utils.BadRequestResponse(c, "Tracking token is required")
	}

	var req models.RatingRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	rating, err := h.fleetUC.RateRide(c.Request().Context(), token, req)
	if err != nil {
		return respondError(c, "rate ride", err)
	}
	return utils.SuccessResponse(c, http.StatusCreated, "Thank you for your feedback", rating)
}
