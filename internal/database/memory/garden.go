package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/StudyGarden_Go/internal/domain"
	"github.com/osse101/StudyGarden_Go/internal/repository"
)

// GardenRepository implements repository.Garden
type GardenRepository struct {
	store *Store
}

// Gardens returns the garden repository
func (s *Store) Gardens() *GardenRepository {
	return &GardenRepository{store: s}
}

// BeginTx starts a new unit of work
func (r *GardenRepository) BeginTx(ctx context.Context) (repository.GardenTx, error) {
	return r.store.begin(ctx)
}

// ListPlots returns the user's plots ordered by row then column
func (r *GardenRepository) ListPlots(_ context.Context, userID string) ([]domain.GardenPlot, error) {
	var out []domain.GardenPlot
	r.store.read(func(st *state) {
		for _, p := range st.plots {
			if p.UserID == userID {
				out = append(out, p)
			}
		}
	})
	sortPlots(out)
	return out, nil
}

// ListActivePlants returns planted plants that sit in a plot
func (r *GardenRepository) ListActivePlants(_ context.Context, userID string) ([]domain.Plant, error) {
	var out []domain.Plant
	r.store.read(func(st *state) {
		for _, p := range st.plants {
			if p.UserID == userID && p.Status == domain.PlantPlanted && p.PlotID != nil {
				out = append(out, p)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].PlantedAt.Before(out[j].PlantedAt) })
	return out, nil
}

// LockUserGarden is a no-op; units of work are already serialized
func (t *Tx) LockUserGarden(_ context.Context, _ string) error {
	return t.check()
}

// CountPlots counts the user's plots
func (t *Tx) CountPlots(_ context.Context, userID string) (int, error) {
	if err := t.check(); err != nil {
		return 0, err
	}
	n := 0
	for _, p := range t.st.plots {
		if p.UserID == userID {
			n++
		}
	}
	return n, nil
}

// DeletePlots removes all of the user's plots, detaching any plants
func (t *Tx) DeletePlots(_ context.Context, userID string) error {
	if err := t.check(); err != nil {
		return err
	}
	for id, p := range t.st.plots {
		if p.UserID != userID {
			continue
		}
		for pid, plant := range t.st.plants {
			if plant.PlotID != nil && *plant.PlotID == id {
				plant.PlotID = nil
				t.st.plants[pid] = plant
			}
		}
		delete(t.st.plots, id)
	}
	return nil
}

// CreatePlots creates a size x size grid for the user
func (t *Tx) CreatePlots(_ context.Context, userID string, size int) error {
	if err := t.check(); err != nil {
		return err
	}
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			for _, p := range t.st.plots {
				if p.UserID == userID && p.Row == row && p.Col == col {
					return fmt.Errorf("plot (%d,%d) already exists for user %s", row, col, userID)
				}
			}
			id := uuid.NewString()
			t.st.plots[id] = domain.GardenPlot{ID: id, UserID: userID, Row: row, Col: col}
		}
	}
	return nil
}

// GetPlotForUpdate returns the plot at (row, col) or nil
func (t *Tx) GetPlotForUpdate(_ context.Context, userID string, row, col int) (*domain.GardenPlot, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	for _, p := range t.st.plots {
		if p.UserID == userID && p.Row == row && p.Col == col {
			return &p, nil
		}
	}
	return nil, nil
}

// SetPlotPlant links or clears the plot's current plant
func (t *Tx) SetPlotPlant(_ context.Context, plotID string, plantID *string) error {
	if err := t.check(); err != nil {
		return err
	}
	p, ok := t.st.plots[plotID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrPlotNotFound, plotID)
	}
	if plantID != nil {
		id := *plantID
		p.CurrentPlantID = &id
	} else {
		p.CurrentPlantID = nil
	}
	t.st.plots[plotID] = p
	return nil
}

// InsertPlant stores a new plant
func (t *Tx) InsertPlant(_ context.Context, plant *domain.Plant) error {
	if err := t.check(); err != nil {
		return err
	}
	if plant.ID == "" {
		plant.ID = uuid.NewString()
	}
	t.st.plants[plant.ID] = *plant
	return nil
}

// GetPlantForUpdate returns a plant or nil
func (t *Tx) GetPlantForUpdate(_ context.Context, plantID string) (*domain.Plant, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	p, ok := t.st.plants[plantID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// MarkPlantHarvested detaches the plant and records the harvest time
func (t *Tx) MarkPlantHarvested(_ context.Context, plantID string, harvestedAt time.Time) error {
	if err := t.check(); err != nil {
		return err
	}
	p, ok := t.st.plants[plantID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrPlantNotFound, plantID)
	}
	p.Status = domain.PlantHarvested
	p.PlotID = nil
	p.HarvestedAt = &harvestedAt
	t.st.plants[plantID] = p
	return nil
}

func sortPlots(plots []domain.GardenPlot) {
	sort.Slice(plots, func(i, j int) bool {
		if plots[i].Row != plots[j].Row {
			return plots[i].Row < plots[j].Row
		}
		return plots[i].Col < plots[j].Col
	})
}

var _ repository.Garden = (*GardenRepository)(nil)
