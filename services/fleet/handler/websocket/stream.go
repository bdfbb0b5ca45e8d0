package websocket

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/shuttlefleet/internal/pkg/constants"
	"github.com/piresc/shuttlefleet/internal/pkg/logger"
	"github.com/piresc/shuttlefleet/internal/pkg/models"
	wspkg "github.com/piresc/shuttlefleet/internal/pkg/websocket"
)

// DefaultBroadcastInterval is how often connected consoles receive the read model
const DefaultBroadcastInterval = time.Second

// StateSource provides the read model pushed to subscribers
type StateSource interface {
	State() models.SimulationState
}

// StreamHandler pushes the simulation read model to dispatcher consoles
type StreamHandler struct {
	manager  *wspkg.Manager
	source   StateSource
	interval time.Duration
}

// NewStreamHandler creates a new stream handler. A non-positive interval uses DefaultBroadcastInterval.
func NewStreamHandler(manager *wspkg.Manager, source StateSource, interval time.Duration) *StreamHandler {
	if interval <= 0 {
		interval = DefaultBroadcastInterval
	}
	return &StreamHandler{
		manager:  manager,
		source:   source,
		interval: interval,
	}
}

// Subscribe upgrades the connection and sends the current state immediately
func (h *StreamHandler) Subscribe(c echo.Context) error {
	actorID, _ := c.Get(logger.ActorIDKey).(string)
	return h.manager.HandleConnection(c, actorID, func(client *wspkg.Client) error {
		return h.manager.Send(client, constants.StreamEventState, h.source.State())
	})
}

// Run broadcasts the read model every interval until ctx is done
func (h *StreamHandler) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.manager.CloseAll()
			return
		case <-ticker.C:
			h.broadcast()
		}
	}
}

func (h *StreamHandler) broadcast() {
	if h.manager.ClientCount() == 0 {
		return
	}
	if err := h.manager.Broadcast(constants.StreamEventState, h.source.State()); err != nil {
		logger.Warn("Failed to broadcast simulation state", logger.Err(err))
	}
}
