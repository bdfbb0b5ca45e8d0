package handler

import (
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/piresc/shuttlefleet/internal/pkg/middleware"
	"github.com/piresc/shuttlefleet/internal/pkg/models"
	wspkg "github.com/piresc/shuttlefleet/internal/pkg/websocket"
	"github.com/piresc/shuttlefleet/services/fleet"
	httpHandler "github.com/piresc/shuttlefleet/services/fleet/handler/http"
	wsHandler "github.com/piresc/shuttlefleet/services/fleet/handler/websocket"
)

// Guest endpoints are limited per client IP when Redis is available
const (
	publicRateLimit  = 30
	publicRatePeriod = time.Minute
)

// Handler combines all handlers for the fleet service
type Handler struct {
	fleetHTTP  *httpHandler.FleetHandler
	publicHTTP *httpHandler.PublicHandler
	stream     *wsHandler.StreamHandler
	cfg        *models.Config
}

// NewHandler creates a new combined handler
func NewHandler(fleetUC fleet.FleetUC, wsManager *wspkg.Manager, cfg *models.Config) *Handler {
	return &Handler{
		fleetHTTP:  httpHandler.NewFleetHandler(fleetUC),
		publicHTTP: httpHandler.NewPublicHandler(fleetUC),
		stream:     wsHandler.NewStreamHandler(wsManager, fleetUC, wsHandler.DefaultBroadcastInterval),
		cfg:        cfg,
	}
}

// Stream returns the read-model broadcaster so the caller can run it
func (h *Handler) Stream() *wsHandler.StreamHandler {
	return h.stream
}

// RegisterRoutes registers all HTTP routes. redisClient may be nil, which disables rate limiting.
func (h *Handler) RegisterRoutes(e *echo.Echo, redisClient *redis.Client) {
	// Dispatcher console (JWT required)
	api := e.Group("/api", middleware.JWTAuthMiddleware(h.cfg.JWT))

	api.GET("/simulation", h.fleetHTTP.GetSimulation)
	api.POST("/simulation/start", h.fleetHTTP.StartSimulation)
	api.POST("/simulation/stop", h.fleetHTTP.StopSimulation)
	api.POST("/simulation/refresh", h.fleetHTTP.RefreshSimulation)

	rides := api.Group("/rides")
	rides.POST("", h.fleetHTTP.CreateRide)
	rides.POST("/:id/assign", h.fleetHTTP.AssignRide)
	rides.POST("/:id/start", h.fleetHTTP.StartRide)
	rides.POST("/:id/complete", h.fleetHTTP.CompleteRide)
	rides.POST("/:id/cancel", h.fleetHTTP.CancelRide)

	alerts := api.Group("/alerts")
	alerts.POST("", h.fleetHTTP.CreateAlert)
	alerts.POST("/:id/resolve", h.fleetHTTP.ResolveAlert)

	api.GET("/ws/simulation", h.stream.Subscribe)

	// Guest pages
	var public *echo.Group
	if redisClient != nil {
		public = e.Group("/public", middleware.IPRateLimiter("public", publicRateLimit, publicRatePeriod, redisClient))
	} else {
		public = e.Group("/public")
	}
	public.POST("/rides", h.publicHTTP.BookRide)
	public.GET("/track/:token", h.publicHTTP.TrackRide)
	public.POST("/track/:token/rating", h.publicHTTP.RateRide)
}
