package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/StudyGarden_Go/internal/domain"
	"github.com/osse101/StudyGarden_Go/internal/repository"
)

const (
	plotColumns  = `plot_id::text, user_id, plot_row, plot_col, current_plant_id::text`
	plantColumns = `plant_id::text, user_id, plot_id::text, item_id, status, planted_at, harvested_at`
)

// GardenRepository implements repository.Garden
type GardenRepository struct {
	store *Store
}

// Gardens returns the garden repository
func (s *Store) Gardens() *GardenRepository {
	return &GardenRepository{store: s}
}

// BeginTx starts a garden unit of work
func (r *GardenRepository) BeginTx(ctx context.Context) (repository.GardenTx, error) {
	return r.store.begin(ctx)
}

// ListPlots returns the user's plots in row-major order
func (r *GardenRepository) ListPlots(ctx context.Context, userID string) ([]domain.GardenPlot, error) {
	rows, err := r.store.db.Query(ctx, `
		SELECT `+plotColumns+`
		FROM garden_plots
		WHERE user_id = $1
		ORDER BY plot_row, plot_col`, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryPlots, err)
	}
	defer rows.Close()

	var plots []domain.GardenPlot
	for rows.Next() {
		p, err := scanPlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryPlots, err)
		}
		plots = append(plots, *p)
	}
	return plots, rows.Err()
}

// ListActivePlants returns planted plants still attached to a plot
func (r *GardenRepository) ListActivePlants(ctx context.Context, userID string) ([]domain.Plant, error) {
	rows, err := r.store.db.Query(ctx, `
		SELECT `+plantColumns+`
		FROM plants
		WHERE user_id = $1 AND status = 'PLANTED' AND plot_id IS NOT NULL
		ORDER BY planted_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryPlants, err)
	}
	defer rows.Close()

	var plants []domain.Plant
	for rows.Next() {
		p, err := scanPlant(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryPlants, err)
		}
		plants = append(plants, *p)
	}
	return plants, rows.Err()
}

// LockUserGarden takes a transaction-scoped advisory lock on the user's grid
func (t *Tx) LockUserGarden(ctx context.Context, userID string) error {
	if err := advisoryLock(ctx, t.tx, fmt.Sprintf(LockKeyUserGardenFmt, userID)); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToLockUserGarden, err)
	}
	return nil
}

// CountPlots counts the user's plots
func (t *Tx) CountPlots(ctx context.Context, userID string) (int, error) {
	var n int
	if err := t.tx.QueryRow(ctx, `SELECT COUNT(*) FROM garden_plots WHERE user_id = $1`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCountPlots, err)
	}
	return n, nil
}

// DeletePlots removes all of the user's plots. Plants keep their history
// and are detached by the plot_id foreign key.
func (t *Tx) DeletePlots(ctx context.Context, userID string) error {
	if _, err := t.tx.Exec(ctx, `DELETE FROM garden_plots WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeletePlots, err)
	}
	return nil
}

// CreatePlots creates a size x size grid for the user in one statement
func (t *Tx) CreatePlots(ctx context.Context, userID string, size int) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO garden_plots (user_id, plot_row, plot_col)
		SELECT $1::text, r, c
		FROM generate_series(0, $2::int - 1) AS r, generate_series(0, $2::int - 1) AS c`,
		userID, size)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCreatePlots, err)
	}
	return nil
}

// GetPlotForUpdate locks the plot at (row, col) or returns nil
func (t *Tx) GetPlotForUpdate(ctx context.Context, userID string, row, col int) (*domain.GardenPlot, error) {
	p, err := scanPlot(t.tx.QueryRow(ctx, `
		SELECT `+plotColumns+`
		FROM garden_plots
		WHERE user_id = $1 AND plot_row = $2 AND plot_col = $3
		FOR UPDATE`, userID, row, col))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPlot, err)
	}
	return p, nil
}

// SetPlotPlant links or clears the plot's current plant
func (t *Tx) SetPlotPlant(ctx context.Context, plotID string, plantID *string) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE garden_plots SET current_plant_id = $2::uuid WHERE plot_id = $1::uuid`,
		plotID, plantID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSetPlotPlant, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrPlotNotFound, plotID)
	}
	return nil
}

// InsertPlant stores a plant and fills in its generated id
func (t *Tx) InsertPlant(ctx context.Context, plant *domain.Plant) error {
	err := t.tx.QueryRow(ctx, `
		INSERT INTO plants (user_id, plot_id, item_id, status, planted_at)
		VALUES ($1, $2::uuid, $3, $4, $5)
		RETURNING plant_id::text`,
		plant.UserID, plant.PlotID, plant.ItemID, string(plant.Status), plant.PlantedAt,
	).Scan(&plant.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertPlant, err)
	}
	return nil
}

// GetPlantForUpdate locks a plant or returns nil
func (t *Tx) GetPlantForUpdate(ctx context.Context, plantID string) (*domain.Plant, error) {
	p, err := scanPlant(t.tx.QueryRow(ctx, `
		SELECT `+plantColumns+`
		FROM plants
		WHERE plant_id::text = $1
		FOR UPDATE`, plantID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPlant, err)
	}
	return p, nil
}

// MarkPlantHarvested moves a plant to HARVESTED
func (t *Tx) MarkPlantHarvested(ctx context.Context, plantID string, harvestedAt time.Time) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE plants
		SET status = 'HARVESTED', harvested_at = $2
		WHERE plant_id = $1::uuid`, plantID, harvestedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarkPlantHarvest, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrPlantNotFound, plantID)
	}
	return nil
}

func scanPlot(row pgx.Row) (*domain.GardenPlot, error) {
	var p domain.GardenPlot
	if err := row.Scan(&p.ID, &p.UserID, &p.Row, &p.Col, &p.CurrentPlantID); err != nil {
		return nil, err
	}
	return &p, nil
}

func scanPlant(row pgx.Row) (*domain.Plant, error) {
	var (
		p      domain.Plant
		status string
	)
	if err := row.Scan(&p.ID, &p.UserID, &p.PlotID, &p.ItemID, &status, &p.PlantedAt, &p.HarvestedAt); err != nil {
		return nil, err
	}
	p.Status = domain.PlantStatus(status)
	return &p, nil
}

var _ repository.Garden = (*GardenRepository)(nil)
