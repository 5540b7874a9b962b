package lootbox

import (
	"github.com/osse101/StudyGarden_Go/internal/domain"
	"github.com/osse101/StudyGarden_Go/internal/utils"
)

// RollWeighted picks one drop. It draws r in [0, total) and subtracts each
// weight in order until r is no longer positive; the last drop absorbs
// rounding. drops must be sanitized and non-empty.
func RollWeighted(drops []domain.WeightedDrop, rnd utils.RandomSource) domain.WeightedDrop {
	var total float64
	for _, d := range drops {
		total += d.Weight
	}

	r := rnd.Float64() * total
	for _, d := range drops {
		r -= d.Weight
		if r <= 0 {
			return d
		}
	}
	return drops[len(drops)-1]
}
