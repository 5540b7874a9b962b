package domain

import (
	"encoding/json"
	"time"
)

// Holding is a user's owned quantity of one catalog item. A holding with
// quantity zero is never persisted.
type Holding struct {
	UserID   string          `json:"user_id"`
	ItemID   int             `json:"item_id"`
	Quantity int             `json:"quantity"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
}

// HoldingView is a holding joined with the item it refers to
type HoldingView struct {
	Holding
	Slug string   `json:"slug"`
	Name string   `json:"name"`
	Type ItemType `json:"type"`
}

// SeedUnlock is a permanent entitlement to own and plant a seed type
type SeedUnlock struct {
	UserID     string    `json:"user_id"`
	SeedItemID int       `json:"seed_item_id"`
	CreatedAt  time.Time `json:"created_at"`
}
