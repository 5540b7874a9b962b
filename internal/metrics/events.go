package metrics

import (
	"context"

	"github.com/osse101/StudyGarden_Go/internal/domain"
	"github.com/osse101/StudyGarden_Go/internal/event"
	"github.com/osse101/StudyGarden_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		domain.EventTypeSessionStarted,
		domain.EventTypeSessionCompleted,
		domain.EventTypeSessionAbandoned,
		domain.EventTypeSessionCredited,
		domain.EventTypeItemPurchased,
		domain.EventTypePackOpened,
		domain.EventTypePlantPlanted,
		domain.EventTypePlantHarvested,
		domain.EventTypeReconciliationRequired,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	payload, ok := evt.Payload.(map[string]interface{})
	if !ok {
		log.Debug(LogMsgEventPayloadNotMap, "type", evt.Type)
		return nil
	}

	switch evt.Type {
	case domain.EventTypeSessionCompleted, domain.EventTypeSessionAbandoned:
		mode, _ := payload[PayloadFieldMode].(string)
		status, _ := payload[PayloadFieldStatus].(string)
		SessionsFinished.WithLabelValues(mode, status).Inc()

	case domain.EventTypeSessionCredited:
		CoinsEarned.WithLabelValues(SourceSession).Add(number(payload[PayloadFieldAmount]))

	case domain.EventTypeItemPurchased:
		if slug, ok := payload[PayloadFieldItemSlug].(string); ok {
			qty := number(payload[PayloadFieldQuantity])
			if qty <= 0 {
				qty = 1
			}
			ItemsPurchased.WithLabelValues(slug).Add(qty)
		}
		CoinsSpent.Add(number(payload[PayloadFieldAmount]))

	case domain.EventTypePackOpened:
		if slug, ok := payload[PayloadFieldItemSlug].(string); ok {
			PacksOpened.WithLabelValues(slug).Inc()
		}
		if unlocked, _ := payload[PayloadFieldNewlyUnlocked].(bool); unlocked {
			if seed, ok := payload[PayloadFieldSeedSlug].(string); ok {
				SeedsUnlocked.WithLabelValues(seed).Inc()
			}
		}

	case domain.EventTypePlantPlanted:
		if slug, ok := payload[PayloadFieldItemSlug].(string); ok {
			PlantsPlanted.WithLabelValues(slug).Inc()
		}

	case domain.EventTypePlantHarvested:
		PlantsHarvested.Inc()
		if pending, _ := payload[PayloadFieldCreditPending].(bool); !pending {
			CoinsEarned.WithLabelValues(SourceHarvest).Add(number(payload[PayloadFieldAmount]))
		}

	case domain.EventTypeReconciliationRequired:
		op, _ := payload[PayloadFieldOperation].(string)
		ReconciliationsRequired.WithLabelValues(op).Inc()
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

// number reads a non-negative numeric payload value
func number(v interface{}) float64 {
	var f float64
	switch n := v.(type) {
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case float64:
		f = n
	}
	if f < 0 {
		return 0
	}
	return f
}
