package economy

import "github.com/osse101/StudyGarden_Go/internal/domain"

// UnitPrice returns the price of one unit of item, or 0 when it cannot be
// bought. Seeds without a list price fall back to their repurchase price.
func UnitPrice(item *domain.Item) int64 {
	if item.Price > 0 {
		return item.Price
	}
	if item.Type == domain.ItemTypeSeed && item.Seed != nil && item.Seed.RepurchasePrice != nil && *item.Seed.RepurchasePrice > 0 {
		return *item.Seed.RepurchasePrice
	}
	return 0
}
