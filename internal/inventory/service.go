package inventory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/osse101/StudyGarden_Go/internal/catalog"
	"github.com/osse101/StudyGarden_Go/internal/domain"
	"github.com/osse101/StudyGarden_Go/internal/logger"
	"github.com/osse101/StudyGarden_Go/internal/repository"
)

// Service defines inventory operations
type Service interface {
	// AdjustQuantity applies delta in its own unit of work
	AdjustQuantity(ctx context.Context, userID string, itemID, delta int, metadata json.RawMessage) (*domain.Holding, error)
	// AdjustQuantityTx applies delta inside the caller's unit of work; the
	// caller commits or rolls back
	AdjustQuantityTx(ctx context.Context, tx repository.InventoryTx, userID string, itemID, delta int, metadata json.RawMessage) (*domain.Holding, error)
	List(ctx context.Context, userID string) ([]domain.HoldingView, error)
	Unlocks(ctx context.Context, userID string) ([]domain.SeedUnlock, error)
}

type service struct {
	repo    repository.Inventory
	catalog catalog.Service
}

// NewService creates a new inventory service
func NewService(repo repository.Inventory, catalogSvc catalog.Service) Service {
	return &service{repo: repo, catalog: catalogSvc}
}

func (s *service) AdjustQuantity(ctx context.Context, userID string, itemID, delta int, metadata json.RawMessage) (*domain.Holding, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	holding, err := s.AdjustQuantityTx(ctx, tx, userID, itemID, delta, metadata)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}
	return holding, nil
}

func (s *service) AdjustQuantityTx(ctx context.Context, tx repository.InventoryTx, userID string, itemID, delta int, metadata json.RawMessage) (*domain.Holding, error) {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgAdjustQuantity, "user_id", userID, "item_id", itemID, "delta", delta)

	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	if delta == 0 {
		return nil, fmt.Errorf("%w: quantity change must be non-zero", domain.ErrInvalidInput)
	}

	if _, err := s.catalog.GetByID(ctx, itemID); err != nil {
		return nil, err
	}

	current, err := tx.GetHoldingForUpdate(ctx, userID, itemID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgLockHoldingFailed, err)
	}

	if current == nil {
		if delta < 0 {
			return nil, fmt.Errorf("%w: item %d", domain.ErrNotOwned, itemID)
		}
		holding := domain.Holding{UserID: userID, ItemID: itemID, Quantity: delta, Metadata: metadata}
		if err := tx.UpsertHolding(ctx, holding); err != nil {
			return nil, fmt.Errorf(ErrMsgUpsertHoldingFailed, err)
		}
		return &holding, nil
	}

	next := current.Quantity + delta
	if next < 0 {
		return nil, fmt.Errorf("%w: have %d, need %d", domain.ErrInsufficientQuantity, current.Quantity, -delta)
	}

	if metadata != nil {
		current.Metadata = metadata
	}
	current.Quantity = next

	if next == 0 {
		if err := tx.DeleteHolding(ctx, userID, itemID); err != nil {
			return nil, fmt.Errorf(ErrMsgDeleteHoldingFailed, err)
		}
		log.Debug(LogMsgHoldingRemoved, "user_id", userID, "item_id", itemID)
		return current, nil
	}

	if err := tx.UpsertHolding(ctx, *current); err != nil {
		return nil, fmt.Errorf(ErrMsgUpsertHoldingFailed, err)
	}
	return current, nil
}

func (s *service) List(ctx context.Context, userID string) ([]domain.HoldingView, error) {
	holdings, err := s.repo.ListHoldings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListHoldingsFailed, err)
	}

	views := make([]domain.HoldingView, 0, len(holdings))
	for _, h := range holdings {
		view := domain.HoldingView{Holding: h}
		item, err := s.catalog.GetByID(ctx, h.ItemID)
		if err != nil {
			logger.FromContext(ctx).Warn("Holding references unknown item", "item_id", h.ItemID, "error", err)
		} else {
			view.Slug = item.Slug
			view.Name = item.Name
			view.Type = item.Type
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *service) Unlocks(ctx context.Context, userID string) ([]domain.SeedUnlock, error) {
	unlocks, err := s.repo.ListSeedUnlocks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListUnlocksFailed, err)
	}
	return unlocks, nil
}
