package economy

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/StudyGarden_Go/internal/domain"
	"github.com/osse101/StudyGarden_Go/internal/repository"
)

// MockInventoryService is a mock implementation of inventory.Service
type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) AdjustQuantity(ctx context.Context, userID string, itemID, delta int, metadata json.RawMessage) (*domain.Holding, error) {
	args := m.Called(ctx, userID, itemID, delta, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Holding), args.Error(1)
}

func (m *MockInventoryService) AdjustQuantityTx(ctx context.Context, tx repository.InventoryTx, userID string, itemID, delta int, metadata json.RawMessage) (*domain.Holding, error) {
	args := m.Called(ctx, tx, userID, itemID, delta, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Holding), args.Error(1)
}

func (m *MockInventoryService) List(ctx context.Context, userID string) ([]domain.HoldingView, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.HoldingView), args.Error(1)
}

func (m *MockInventoryService) Unlocks(ctx context.Context, userID string) ([]domain.SeedUnlock, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.SeedUnlock), args.Error(1)
}
