package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/piresc/shuttlefleet/internal/pkg/constants"
	"github.com/piresc/shuttlefleet/internal/pkg/logger"
	"github.com/piresc/shuttlefleet/internal/pkg/models"
	"github.com/piresc/shuttlefleet/services/fleet"
)

// EventGateway wraps lifecycle notifications in an Event envelope and
// publishes them on {prefix}.{tenant}.{type}. A nil broker only logs.
type EventGateway struct {
	broker fleet.Broker
	tenant string
}

// NewEventGateway creates an event gateway for a tenant
func NewEventGateway(broker fleet.Broker, tenant string) *EventGateway {
	return &EventGateway{broker: broker, tenant: tenant}
}

// Subject returns the broker subject an event type is published on
func (g *EventGateway) Subject(eventType models.EventType) string {
	return fmt.Sprintf("%s.%s.%s", constants.SubjectPrefix, g.tenant, eventType)
}

// Publish delivers one event. Failures are returned as WebhookDeliveryError.
func (g *EventGateway) Publish(ctx context.Context, eventType models.EventType, data interface{}) error {
	event := models.Event{
		ID:         uuid.New().String(),
		Type:       eventType,
		Tenant:     g.tenant,
		OccurredAt: models.Now(),
		Data:       data,
	}

	if g.broker == nil {
		logger.Debug("Event dropped, no broker configured",
			logger.String("event_type", string(eventType)),
			logger.String("event_id", event.ID))
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return &fleet.WebhookDeliveryError{Event: eventType, Cause: fmt.Errorf("failed to marshal event: %w", err)}
	}

	if err := g.broker.Publish(ctx, g.Subject(eventType), payload); err != nil {
		return &fleet.WebhookDeliveryError{Event: eventType, Cause: err}
	}

	logger.Debug("Event published",
		logger.String("event_type", string(eventType)),
		logger.String("event_id", event.ID))
	return nil
}
