package fleet

import (
	"context"

	"github.com/piresc/shuttlefleet/internal/pkg/models"
)

// EventGW publishes lifecycle notifications to the webhook dispatcher
// go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/piresc/shuttlefleet/services/fleet EventGW,Broker
type EventGW interface {
	Publish(ctx context.Context, eventType models.EventType, data interface{}) error
}

// Broker is the transport an EventGW publishes through
type Broker interface {
	Publish(ctx context.Context, subject string, data []byte) error
	Close() error
}
