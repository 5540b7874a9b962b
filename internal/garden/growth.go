package garden

import (
	"time"

	"github.com/osse101/StudyGarden_Go/internal/domain"
)

const day = 24 * time.Hour

// GrowthStage derives the visual stage of a plant from elapsed time.
//
// A seed with stageCount transitions has stageCount+1 visual stages. Stage i
// lasts (i+1) units, where one unit is growthDays divided by the sum of all
// weights, so later stages take longer. After growthDays the plant stays at
// the final stage. Harvested plants and seeds with non-positive growth
// parameters report stage 0.
func GrowthStage(meta *domain.SeedMetadata, status domain.PlantStatus, plantedAt, now time.Time) int {
	if meta == nil || status != domain.PlantPlanted {
		return 0
	}
	if meta.StageCount <= 0 || meta.GrowthDays <= 0 {
		return 0
	}

	elapsed := float64(now.Sub(plantedAt)) / float64(day)
	if elapsed <= 0 {
		return 0
	}

	visual := meta.StageCount + 1
	totalWeight := visual * (visual + 1) / 2
	unit := meta.GrowthDays / float64(totalWeight)

	cumulative := 0.0
	for i := 0; i < visual; i++ {
		cumulative += float64(i+1) * unit
		if cumulative > elapsed {
			return i
		}
	}
	return meta.StageCount
}
