package repository

import (
	"context"
	"time"

	"github.com/osse101/StudyGarden_Go/internal/domain"
)

// Garden defines the interface for plot and plant persistence
type Garden interface {
	ListPlots(ctx context.Context, userID string) ([]domain.GardenPlot, error)
	// ListActivePlants returns PLANTED plants currently attached to a plot
	ListActivePlants(ctx context.Context, userID string) ([]domain.Plant, error)
	BeginTx(ctx context.Context) (GardenTx, error)
}

// GardenTx defines the interface for garden transactions. It embeds
// InventoryTx so seed consumption commits with the planting.
type GardenTx interface {
	InventoryTx
	// LockUserGarden serializes grid creation for one user until the
	// transaction ends
	LockUserGarden(ctx context.Context, userID string) error
	CountPlots(ctx context.Context, userID string) (int, error)
	DeletePlots(ctx context.Context, userID string) error
	CreatePlots(ctx context.Context, userID string, size int) error
	// GetPlotForUpdate returns nil, nil when the plot does not exist
	GetPlotForUpdate(ctx context.Context, userID string, row, col int) (*domain.GardenPlot, error)
	SetPlotPlant(ctx context.Context, plotID string, plantID *string) error
	InsertPlant(ctx context.Context, plant *domain.Plant) error
	// GetPlantForUpdate returns nil, nil when not found
	GetPlantForUpdate(ctx context.Context, plantID string) (*domain.Plant, error)
	MarkPlantHarvested(ctx context.Context, plantID string, harvestedAt time.Time) error
}
