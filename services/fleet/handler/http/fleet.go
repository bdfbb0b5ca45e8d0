package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/shuttlefleet/internal/pkg/logger"
	"github.com/piresc/shuttlefleet/internal/pkg/middleware"
	"github.com/piresc/shuttlefleet/internal/pkg/models"
	"github.com/piresc/shuttlefleet/internal/utils"
	"github.com/piresc/shuttlefleet/services/fleet"
)

// FleetHandler handles the dispatcher console endpoints
type FleetHandler struct {
	fleetUC fleet.FleetUC
}

// NewFleetHandler creates a new dispatcher HTTP handler
func NewFleetHandler(fleetUC fleet.FleetUC) *FleetHandler {
	return &FleetHandler{
		fleetUC: fleetUC,
	}
}

// GetSimulation returns the current read model
func (h *FleetHandler) GetSimulation(c echo.Context) error {
	return utils.SuccessResponse(c, http.StatusOK, "Simulation state retrieved", h.fleetUC.State())
}

// StartSimulation starts the one hour simulation
func (h *FleetHandler) StartSimulation(c echo.Context) error {
	if err := h.fleetUC.Start(c.Request().Context()); err != nil {
		return respondError(c, "start simulation", err)
	}

	logger.Info("Simulation started from console", logger.String(logger.ActorIDKey, actorID(c)))
	return utils.SuccessResponse(c, http.StatusOK, "Simulation started", h.fleetUC.State())
}

// StopSimulation stops the simulation and cancels its timers
func (h *FleetHandler) StopSimulation(c echo.Context) error {
	if err := h.fleetUC.Stop(c.Request().Context()); err != nil {
		return respondError(c, "stop simulation", err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Simulation stopped", h.fleetUC.State())
}

// RefreshSimulation forces a snapshot pull and returns the refreshed state
func (h *FleetHandler) RefreshSimulation(c echo.Context) error {
	err := h.fleetUC.Refresh(c.Request().Context())
	switch {
	case err == nil:
	case errors.Is(err, fleet.ErrNoActor):
		return utils.UnauthorizedResponse(c, err.Error())
	default:
		logger.Warn("Manual refresh failed", logger.Err(err))
		return utils.ServiceUnavailableResponse(c, "Failed to refresh: "+err.Error())
	}
	return utils.SuccessResponse(c, http.StatusOK, "Simulation refreshed", h.fleetUC.State())
}

// CreateRide books a ride on behalf of a guest
func (h *FleetHandler) CreateRide(c echo.Context) error {
	var req models.CreateRideRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	ride, err := h.fleetUC.CreateRide(c.Request().Context(), req)
	if err != nil {
		return respondError(c, "create ride", err)
	}

	middleware.SetRideID(c, ride.ID)
	return utils.SuccessResponse(c, http.StatusCreated, "Ride created", ride)
}

// AssignRide assigns a pending ride. An empty vehicle_id defers to the assignment policy.
func (h *FleetHandler) AssignRide(c echo.Context) error {
	rideID := c.Param("id")
	if rideID == "" {
		return utils.BadRequestResponse(c, "Ride ID is required")
	}
	middleware.SetRideID(c, rideID)

	var req models.AssignRideRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
		}
	}

	ride, err := h.fleetUC.AssignRide(c.Request().Context(), rideID, req.VehicleID)
	if err != nil {
		return respondError(c, "assign ride", err)
	}

	logger.Info("Ride assigned from console",
		logger.String("ride_id", rideID),
		logger.String("vehicle_number", ride.VehicleNumber))
	return utils.SuccessResponse(c, http.StatusOK, "Ride assigned", ride)
}

// StartRide marks the guest as picked up
func (h *FleetHandler) StartRide(c echo.Context) error {
	return h.transition(c, "start ride", "Ride started", h.fleetUC.StartRide)
}

// CompleteRide marks the ride as dropped off
func (h *FleetHandler) CompleteRide(c echo.Context) error {
	return h.transition(c, "complete ride", "Ride completed", h.fleetUC.CompleteRide)
}

// CancelRide cancels a ride that has not finished
func (h *FleetHandler) CancelRide(c echo.Context) error {
	return h.transition(c, "cancel ride", "Ride cancelled", h.fleetUC.CancelRide)
}

type rideTransition func(ctx context.Context, rideID string) (*models.Ride, error)

func (h *FleetHandler) transition(c echo.Context, op, message string, fn rideTransition) error {
	rideID := c.Param("id")
	if rideID == "" {
		return utils.BadRequestResponse(c, "Ride ID is required")
	}
	middleware.SetRideID(c, rideID)

	ride, err := fn(c.Request().Context(), rideID)
	if err != nil {
		return respondError(c, op, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, message, ride)
}

// CreateAlert raises an emergency alert
func (h *FleetHandler) CreateAlert(c echo.Context) error {
	var req models.CreateAlertRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	alert, err := h.fleetUC.CreateAlert(c.Request().Context(), req)
	if err != nil {
		return respondError(c, "create alert", err)
	}

	logger.Warn("Emergency alert raised",
		logger.String("alert_id", alert.ID),
		logger.String("alert_type", string(alert.AlertType)),
		logger.String(logger.ActorIDKey, actorID(c)))
	return utils.SuccessResponse(c, http.StatusCreated, "Alert created", alert)
}

// ResolveAlert closes an active alert
func (h *FleetHandler) ResolveAlert(c echo.Context) error {
	alertID := c.Param("id")
	if alertID == "" {
		return utils.BadRequestResponse(c, "Alert ID is required")
	}

	alert, err := h.fleetUC.ResolveAlert(c.Request().Context(), alertID)
	if err != nil {
		return respondError(c, "resolve alert", err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Alert resolved", alert)
}

func actorID(c echo.Context) string {
	id, _ := c.Get(logger.ActorIDKey).(string)
	return id
}
