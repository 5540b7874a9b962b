package domain

import "encoding/json"

// ItemType discriminates the metadata shape carried by an item
type ItemType string

const (
	ItemTypeSeed     ItemType = "seed"
	ItemTypeSeedPack ItemType = "seed_pack"
	ItemTypeOther    ItemType = "other"
)

// Item is a catalog entry. Metadata holds the raw JSON bag as stored;
// Seed and Pack are populated from it by the catalog depending on Type.
type Item struct {
	ID          int             `json:"item_id"`
	Slug        string          `json:"slug"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Type        ItemType        `json:"type"`
	Price       int64           `json:"price"` // 0 means no list price
	Metadata    json.RawMessage `json:"-"`

	Seed *SeedMetadata `json:"seed,omitempty"`
	Pack *PackMetadata `json:"pack,omitempty"`
}

// SeedMetadata describes growth and economics of a plantable seed
type SeedMetadata struct {
	PackName        string  `json:"pack_name,omitempty"`
	GrowthDays      float64 `json:"growth_days"`
	StageCount      int     `json:"stage_count"`
	CoinYield       *int64  `json:"coin_yield,omitempty"`
	RepurchasePrice *int64  `json:"repurchase_price,omitempty"`
}

// WeightedDrop is one entry of a pack's drop table
type WeightedDrop struct {
	SeedSlug string  `json:"seed_slug"`
	Weight   float64 `json:"weight"`
}

// PackMetadata lists the seeds a pack can roll
type PackMetadata struct {
	Drops []WeightedDrop `json:"drops"`
}

// ItemRef addresses an item either by id or by slug
type ItemRef struct {
	ID   int
	Slug string
}

// IsZero reports whether neither id nor slug is set
func (r ItemRef) IsZero() bool {
	return r.ID == 0 && r.Slug == ""
}
