package garden

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/StudyGarden_Go/internal/catalog"
	"github.com/osse101/StudyGarden_Go/internal/clock"
	"github.com/osse101/StudyGarden_Go/internal/domain"
	"github.com/osse101/StudyGarden_Go/internal/event"
	"github.com/osse101/StudyGarden_Go/internal/inventory"
	"github.com/osse101/StudyGarden_Go/internal/logger"
	"github.com/osse101/StudyGarden_Go/internal/repository"
	"github.com/osse101/StudyGarden_Go/internal/wallet"
)

// Config controls grid size and harvest payout
type Config struct {
	Size         int
	RewardSource RewardSource
}

// PlantResult identifies the new plant
type PlantResult struct {
	PlotID  string `json:"plot_id"`
	PlantID string `json:"plant_id"`
}

// HarvestResult reports the payout. CreditPending is set when the harvest
// committed but the wallet credit did not; the credit can be retried with the
// plant id as reference.
type HarvestResult struct {
	HarvestedPlantID string `json:"harvested_plant_id"`
	CoinsAwarded     int64  `json:"coins_awarded"`
	Balance          int64  `json:"balance"`
	CreditPending    bool   `json:"credit_pending,omitempty"`
}

// Service manages a user's garden grid
type Service interface {
	EnsureGarden(ctx context.Context, userID string) error
	GetGrid(ctx context.Context, userID string) (*domain.GardenGrid, error)
	Plant(ctx context.Context, userID string, row, col int, seedSlug string) (*PlantResult, error)
	Harvest(ctx context.Context, userID string, row, col int) (*HarvestResult, error)
}

type service struct {
	repo      repository.Garden
	inventory inventory.Service
	catalog   catalog.Service
	wallet    wallet.Service
	clock     clock.Clock
	cfg       Config
	bus       event.Bus
}

// NewService creates a garden service
func NewService(repo repository.Garden, inventorySvc inventory.Service, catalogSvc catalog.Service, walletSvc wallet.Service, clk clock.Clock, cfg Config, bus event.Bus) Service {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	if cfg.Size <= 0 {
		cfg.Size = DefaultSize
	}
	if cfg.RewardSource != RewardPrice {
		cfg.RewardSource = RewardCoinYield
	}
	return &service{
		repo:      repo,
		inventory: inventorySvc,
		catalog:   catalogSvc,
		wallet:    walletSvc,
		clock:     clk,
		cfg:       cfg,
		bus:       bus,
	}
}

func (s *service) EnsureGarden(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := tx.LockUserGarden(ctx, userID); err != nil {
		return fmt.Errorf(ErrMsgLockGardenFailed, err)
	}

	count, err := tx.CountPlots(ctx, userID)
	if err != nil {
		return fmt.Errorf(ErrMsgCountPlotsFailed, err)
	}
	if count == s.cfg.Size*s.cfg.Size {
		return nil
	}

	if err := tx.DeletePlots(ctx, userID); err != nil {
		return fmt.Errorf(ErrMsgResetPlotsFailed, err)
	}
	if err := tx.CreatePlots(ctx, userID, s.cfg.Size); err != nil {
		return fmt.Errorf(ErrMsgCreatePlotsFailed, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgGardenCreated, "user_id", userID, "size", s.cfg.Size, "previous_plots", count)
	return nil
}

func (s *service) GetGrid(ctx context.Context, userID string) (*domain.GardenGrid, error) {
	if err := s.EnsureGarden(ctx, userID); err != nil {
		return nil, err
	}

	plots, err := s.repo.ListPlots(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListPlotsFailed, err)
	}
	plants, err := s.repo.ListActivePlants(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListPlantsFailed, err)
	}

	byID := make(map[string]domain.Plant, len(plants))
	for _, p := range plants {
		byID[p.ID] = p
	}

	grid := &domain.GardenGrid{Size: s.cfg.Size, Cells: make([][]*domain.PlotCell, s.cfg.Size)}
	for r := range grid.Cells {
		grid.Cells[r] = make([]*domain.PlotCell, s.cfg.Size)
	}

	now := s.clock.Now()
	for _, plot := range plots {
		if plot.CurrentPlantID == nil || !s.inBounds(plot.Row, plot.Col) {
			continue
		}
		plant, ok := byID[*plot.CurrentPlantID]
		if !ok {
			continue
		}
		cell, err := s.cell(ctx, plot, plant, now)
		if err != nil {
			return nil, err
		}
		grid.Cells[plot.Row][plot.Col] = cell
	}
	return grid, nil
}

func (s *service) cell(ctx context.Context, plot domain.GardenPlot, plant domain.Plant, now time.Time) (*domain.PlotCell, error) {
	cell := &domain.PlotCell{
		PlotID:    plot.ID,
		PlantID:   plant.ID,
		Item:      domain.PlotItem{ID: plant.ItemID},
		Status:    plant.Status,
		PlantedAt: plant.PlantedAt,
	}

	item, err := s.catalog.GetByID(ctx, plant.ItemID)
	if errors.Is(err, domain.ErrItemNotFound) {
		logger.FromContext(ctx).Warn(LogMsgMissingSeedItem, "plant_id", plant.ID, "item_id", plant.ItemID)
		return cell, nil
	}
	if err != nil {
		return nil, err
	}

	cell.Item.Name = item.Name
	cell.Item.Slug = item.Slug
	cell.Stage = GrowthStage(item.Seed, plant.Status, plant.PlantedAt, now)
	return cell, nil
}

func (s *service) Plant(ctx context.Context, userID string, row, col int, seedSlug string) (*PlantResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgPlantCalled, "user_id", userID, "row", row, "col", col, "seed", seedSlug)

	if err := s.checkBounds(row, col); err != nil {
		return nil, err
	}

	seed, err := s.catalog.GetBySlug(ctx, seedSlug)
	if err != nil {
		return nil, err
	}
	if seed.Type != domain.ItemTypeSeed {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotASeed, seed.Slug)
	}

	if err := s.EnsureGarden(ctx, userID); err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	plot, err := s.lockPlot(ctx, tx, userID, row, col)
	if err != nil {
		return nil, err
	}
	if plot.CurrentPlantID != nil {
		return nil, fmt.Errorf("%w: (%d,%d)", domain.ErrPlotOccupied, row, col)
	}

	unlocked, err := tx.HasSeedUnlock(ctx, userID, seed.ID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCheckUnlockFailed, err)
	}
	if !unlocked {
		return nil, fmt.Errorf("%w: %s", domain.ErrSeedNotUnlocked, seed.Slug)
	}

	if _, err := s.inventory.AdjustQuantityTx(ctx, tx, userID, seed.ID, -1, nil); err != nil {
		return nil, fmt.Errorf(ErrMsgConsumeSeedFailed, err)
	}

	plant := &domain.Plant{
		UserID:    userID,
		PlotID:    &plot.ID,
		ItemID:    seed.ID,
		Status:    domain.PlantPlanted,
		PlantedAt: s.clock.Now(),
	}
	if err := tx.InsertPlant(ctx, plant); err != nil {
		return nil, fmt.Errorf(ErrMsgInsertPlantFailed, err)
	}
	if err := tx.SetPlotPlant(ctx, plot.ID, &plant.ID); err != nil {
		return nil, fmt.Errorf(ErrMsgLinkPlotFailed, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	log.Info(LogMsgPlanted, "user_id", userID, "plant_id", plant.ID, "seed", seed.Slug)
	event.Emit(ctx, s.bus, event.New(domain.EventTypePlantPlanted, event.Payload{
		domain.MetadataKeyUserID:   userID,
		domain.MetadataKeyItemSlug: seed.Slug,
		domain.MetadataKeyPlantID:  plant.ID,
		"row":                      row,
		"col":                      col,
	}))

	return &PlantResult{PlotID: plot.ID, PlantID: plant.ID}, nil
}

// Harvest frees the plot in one transaction and pays out afterwards. A
// failed payout does not undo the harvest.
func (s *service) Harvest(ctx context.Context, userID string, row, col int) (*HarvestResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgHarvestCalled, "user_id", userID, "row", row, "col", col)

	if err := s.checkBounds(row, col); err != nil {
		return nil, err
	}
	if err := s.EnsureGarden(ctx, userID); err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	plot, err := s.lockPlot(ctx, tx, userID, row, col)
	if err != nil {
		return nil, err
	}
	if plot.CurrentPlantID == nil {
		return nil, fmt.Errorf("%w: (%d,%d)", domain.ErrPlotEmpty, row, col)
	}

	plant, err := tx.GetPlantForUpdate(ctx, *plot.CurrentPlantID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgLockPlantFailed, err)
	}
	if plant == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrPlantNotFound, *plot.CurrentPlantID)
	}

	reward := s.rewardFor(ctx, plant.ItemID)

	if err := tx.MarkPlantHarvested(ctx, plant.ID, s.clock.Now()); err != nil {
		return nil, fmt.Errorf(ErrMsgHarvestPlantFailed, err)
	}
	if err := tx.SetPlotPlant(ctx, plot.ID, nil); err != nil {
		return nil, fmt.Errorf(ErrMsgLinkPlotFailed, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	result := &HarvestResult{HarvestedPlantID: plant.ID, CoinsAwarded: reward}
	log.Info(LogMsgHarvested, "user_id", userID, "plant_id", plant.ID, "reward", reward)

	if reward > 0 {
		credit, err := s.wallet.Credit(ctx, userID, reward, domain.LedgerAdjustment, plant.ID)
		if err != nil {
			log.Error(LogMsgCreditFailed, "user_id", userID, "plant_id", plant.ID, "reward", reward, "error", err)
			event.Emit(ctx, s.bus, event.New(domain.EventTypeReconciliationRequired, domain.ReconciliationPayload{
				UserID:    userID,
				Operation: OperationHarvestCredit,
				ItemID:    plant.ItemID,
				Amount:    reward,
				RefID:     plant.ID,
				Cause:     "harvest committed",
				Error:     err.Error(),
			}.Fields()))
			result.CreditPending = true
		} else {
			result.Balance = credit.Balance
		}
	} else {
		log.Warn(LogMsgNoReward, "plant_id", plant.ID, "item_id", plant.ItemID)
	}

	event.Emit(ctx, s.bus, event.New(domain.EventTypePlantHarvested, event.Payload{
		domain.MetadataKeyUserID:  userID,
		domain.MetadataKeyItemID:  plant.ItemID,
		domain.MetadataKeyAmount:  reward,
		domain.MetadataKeyPlantID: plant.ID,
		"credit_pending":          result.CreditPending,
	}))

	return result, nil
}

func (s *service) rewardFor(ctx context.Context, itemID int) int64 {
	item, err := s.catalog.GetByID(ctx, itemID)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgMissingSeedItem, "item_id", itemID, "error", err)
		return 0
	}
	return Reward(item, s.cfg.RewardSource)
}

// Reward returns the harvest payout for item under the given source
func Reward(item *domain.Item, source RewardSource) int64 {
	if item == nil {
		return 0
	}
	if source == RewardCoinYield && item.Seed != nil && item.Seed.CoinYield != nil {
		return *item.Seed.CoinYield
	}
	if item.Price > 0 {
		return item.Price
	}
	return 0
}

func (s *service) lockPlot(ctx context.Context, tx repository.GardenTx, userID string, row, col int) (*domain.GardenPlot, error) {
	plot, err := tx.GetPlotForUpdate(ctx, userID, row, col)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgLockPlotFailed, err)
	}
	if plot == nil {
		return nil, fmt.Errorf("%w: (%d,%d)", domain.ErrPlotNotFound, row, col)
	}
	return plot, nil
}

func (s *service) inBounds(row, col int) bool {
	return row >= 0 && row < s.cfg.Size && col >= 0 && col < s.cfg.Size
}

func (s *service) checkBounds(row, col int) error {
	if !s.inBounds(row, col) {
		return fmt.Errorf(ErrMsgOutOfBoundsFmt, domain.ErrPlotOutOfBounds, row, col, s.cfg.Size, s.cfg.Size)
	}
	return nil
}
