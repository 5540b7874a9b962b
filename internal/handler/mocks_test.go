package handler

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/StudyGarden_Go/internal/accrual"
	"github.com/osse101/StudyGarden_Go/internal/domain"
	"github.com/osse101/StudyGarden_Go/internal/economy"
	"github.com/osse101/StudyGarden_Go/internal/event"
	"github.com/osse101/StudyGarden_Go/internal/garden"
	"github.com/osse101/StudyGarden_Go/internal/leaderboard"
	"github.com/osse101/StudyGarden_Go/internal/lootbox"
	"github.com/osse101/StudyGarden_Go/internal/repository"
	"github.com/osse101/StudyGarden_Go/internal/timer"
	"github.com/osse101/StudyGarden_Go/internal/wallet"
)

type MockTimerService struct {
	mock.Mock
}

func (m *MockTimerService) StartSession(ctx context.Context, userID string, req timer.StartRequest) (*timer.StartResult, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*timer.StartResult), args.Error(1)
}

func (m *MockTimerService) StopSession(ctx context.Context, userID, sessionID string) (*timer.StopResult, error) {
	args := m.Called(ctx, userID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*timer.StopResult), args.Error(1)
}

func (m *MockTimerService) GetSession(ctx context.Context, userID, sessionID string) (*domain.TimerSession, error) {
	args := m.Called(ctx, userID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimerSession), args.Error(1)
}

func (m *MockTimerService) ListSessions(ctx context.Context, userID string, limit int) ([]domain.TimerSession, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TimerSession), args.Error(1)
}

func (m *MockTimerService) Totals(ctx context.Context, userID string) (*domain.StudyTotals, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudyTotals), args.Error(1)
}

type MockAccrualService struct {
	mock.Mock
}

func (m *MockAccrualService) CreditForSession(ctx context.Context, sessionID string) (*accrual.CreditResult, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accrual.CreditResult), args.Error(1)
}

type MockWalletService struct {
	mock.Mock
}

func (m *MockWalletService) EnsureWallet(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockWalletService) GetBalance(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWalletService) Credit(ctx context.Context, userID string, amount int64, entryType domain.LedgerType, refID string) (*wallet.CreditResult, error) {
	args := m.Called(ctx, userID, amount, entryType, refID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.CreditResult), args.Error(1)
}

func (m *MockWalletService) Debit(ctx context.Context, userID string, amount int64, entryType domain.LedgerType, refID string) (*wallet.DebitResult, error) {
	args := m.Called(ctx, userID, amount, entryType, refID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.DebitResult), args.Error(1)
}

func (m *MockWalletService) History(ctx context.Context, userID string, limit int) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockWalletService) Reconcile(ctx context.Context, userID string) (*wallet.ReconcileResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.ReconcileResult), args.Error(1)
}

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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HoldingView), args.Error(1)
}

func (m *MockInventoryService) Unlocks(ctx context.Context, userID string) ([]domain.SeedUnlock, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SeedUnlock), args.Error(1)
}

type MockEconomyService struct {
	mock.Mock
}

func (m *MockEconomyService) Purchase(ctx context.Context, userID string, ref domain.ItemRef, quantity int, ledgerType domain.LedgerType) (*economy.PurchaseResult, error) {
	args := m.Called(ctx, userID, ref, quantity, ledgerType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*economy.PurchaseResult), args.Error(1)
}

func (m *MockEconomyService) GetBuyablePrices(ctx context.Context) ([]economy.PriceEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]economy.PriceEntry), args.Error(1)
}

type MockLootboxService struct {
	mock.Mock
}

func (m *MockLootboxService) OpenOne(ctx context.Context, userID, packSlug string) (*lootbox.OpenResult, error) {
	args := m.Called(ctx, userID, packSlug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*lootbox.OpenResult), args.Error(1)
}

type MockGardenService struct {
	mock.Mock
}

func (m *MockGardenService) EnsureGarden(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockGardenService) GetGrid(ctx context.Context, userID string) (*domain.GardenGrid, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GardenGrid), args.Error(1)
}

func (m *MockGardenService) Plant(ctx context.Context, userID string, row, col int, seedSlug string) (*garden.PlantResult, error) {
	args := m.Called(ctx, userID, row, col, seedSlug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*garden.PlantResult), args.Error(1)
}

func (m *MockGardenService) Harvest(ctx context.Context, userID string, row, col int) (*garden.HarvestResult, error) {
	args := m.Called(ctx, userID, row, col)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*garden.HarvestResult), args.Error(1)
}

type MockLeaderboardService struct {
	mock.Mock
}

func (m *MockLeaderboardService) Study(ctx context.Context, r leaderboard.Range) (*leaderboard.Board, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leaderboard.Board), args.Error(1)
}

type MockEventLogService struct {
	mock.Mock
}

func (m *MockEventLogService) Subscribe(bus event.Bus) error {
	return m.Called(bus).Error(0)
}

func (m *MockEventLogService) Recent(ctx context.Context, filter repository.EventLogFilter) ([]repository.EventLogEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.EventLogEntry), args.Error(1)
}

func (m *MockEventLogService) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	args := m.Called(ctx, retentionDays)
	return args.Get(0).(int64), args.Error(1)
}

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
