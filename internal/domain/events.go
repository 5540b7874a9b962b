package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "item.purchased")
const (
	// EventTypeSessionStarted is published when a timer session begins
	EventTypeSessionStarted = "session.started"

	// EventTypeSessionCompleted is published when a running session is stopped
	EventTypeSessionCompleted = "session.completed"

	// EventTypeSessionAbandoned is published when a stale session is superseded
	EventTypeSessionAbandoned = "session.abandoned"

	// EventTypeSessionCredited is published when study time is converted to coins
	EventTypeSessionCredited = "session.credited"

	// EventTypeItemPurchased is published after a successful purchase
	EventTypeItemPurchased = "item.purchased"

	// EventTypePackOpened is published after a seed pack is opened
	EventTypePackOpened = "pack.opened"

	// EventTypePlantPlanted is published when a seed is planted in a plot
	EventTypePlantPlanted = "plant.planted"

	// EventTypePlantHarvested is published when a plant is harvested
	EventTypePlantHarvested = "plant.harvested"

	// EventTypeReconciliationRequired is published when a compensating action
	// failed and state must be repaired by an operator
	EventTypeReconciliationRequired = "reconciliation.required"
)

// ReconciliationPayload describes state that could not be restored automatically
type ReconciliationPayload struct {
	UserID    string `json:"user_id"`
	Operation string `json:"operation"`
	ItemID    int    `json:"item_id,omitempty"`
	Quantity  int    `json:"quantity,omitempty"`
	Amount    int64  `json:"amount,omitempty"`
	RefID     string `json:"ref_id,omitempty"`
	Cause     string `json:"cause"`
	Error     string `json:"error"`
}

// Fields flattens the payload into the map form carried on the event bus
func (p ReconciliationPayload) Fields() map[string]interface{} {
	fields := map[string]interface{}{
		MetadataKeyUserID: p.UserID,
		"operation":       p.Operation,
		"cause":           p.Cause,
		"error":           p.Error,
	}
	if p.ItemID != 0 {
		fields[MetadataKeyItemID] = p.ItemID
	}
	if p.Quantity != 0 {
		fields[MetadataKeyQuantity] = p.Quantity
	}
	if p.Amount != 0 {
		fields[MetadataKeyAmount] = p.Amount
	}
	if p.RefID != "" {
		fields["ref_id"] = p.RefID
	}
	return fields
}
