package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/shuttlefleet/internal/pkg/logger"
	"github.com/piresc/shuttlefleet/internal/pkg/scheduler"
	"github.com/piresc/shuttlefleet/internal/utils"
	"github.com/piresc/shuttlefleet/services/fleet"
)

// statusFor maps a fleet error to the HTTP status returned to the caller
func statusFor(err error) int {
	var (
		validation *fleet.ValidationError
		transition *fleet.InvalidTransition
		network    *fleet.NetworkError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &transition),
		errors.Is(err, fleet.ErrNoVehicleAvailable),
		errors.Is(err, fleet.ErrNoVehicles),
		errors.Is(err, fleet.ErrAlreadyRated),
		errors.Is(err, fleet.ErrAlreadyResolved),
		errors.Is(err, fleet.ErrSimulationRunning),
		errors.Is(err, fleet.ErrSyncInProgress):
		return http.StatusConflict
	case errors.Is(err, fleet.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, fleet.ErrAccessExpired):
		return http.StatusGone
	case errors.Is(err, fleet.ErrNoActor):
		return http.StatusUnauthorized
	case errors.As(err, &network), errors.Is(err, scheduler.ErrStopped):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error envelope for err. Unexpected errors are logged
// and reported to the transaction; their message is not leaked to the client.
func respondError(c echo.Context, op string, err error) error {
	status := statusFor(err)
	if status < http.StatusInternalServerError {
		return utils.ErrorResponseHandler(c, status, err.Error())
	}

	if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
		txn.NoticeError(err)
	}
	logger.Error("Fleet request failed",
		logger.String("operation", op),
		logger.Int("status", status),
		logger.Err(err))

	if status == http.StatusServiceUnavailable {
		return utils.ServiceUnavailableResponse(c, err.Error())
	}
	return utils.InternalServerErrorResponse(c, "Failed to "+op)
}
