package garden

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/StudyGarden_Go/internal/domain"
	"github.com/osse101/StudyGarden_Go/internal/wallet"
)

// MockWalletService is a testify mock of wallet.Service
type MockWalletService struct {
	mock.Mock
}

func (m *MockWalletService) EnsureWallet(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
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
