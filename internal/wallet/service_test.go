package wallet

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/StudyGarden_Go/internal/clock"
	"github.com/osse101/StudyGarden_Go/internal/database/memory"
	"github.com/osse101/StudyGarden_Go/internal/domain"
)

func newTestService(t *testing.T) (Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	clk := clock.NewSimulatedClock(time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC))
	return NewService(store.Wallets(), clk), store
}

func TestGetBalance_NoWallet(t *testing.T) {
	svc, _ := newTestService(t)

	balance, err := svc.GetBalance(context.Background(), "u1")
	require.NoError(t, err)
	assert.Zero(t, balance)
}

func TestEnsureWallet_Idempotent(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	require.NoError(t, svc.EnsureWallet(ctx, "u1"))
	require.NoError(t, svc.EnsureWallet(ctx, "u1"))

	w, err := store.Wallets().GetWallet(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Zero(t, w.BalanceCoins)

	assert.ErrorIs(t, svc.EnsureWallet(ctx, ""), domain.ErrInvalidInput)
}

func TestCredit_InvalidInput(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	tests := []struct {
		name      string
		userID    string
		amount    int64
		entryType domain.LedgerType
		want      error
	}{
		{"zero amount", "u1", 0, domain.LedgerAdjustment, domain.ErrInvalidAmount},
		{"negative amount", "u1", -5, domain.LedgerAdjustment, domain.ErrInvalidAmount},
		{"missing user", "", 5, domain.LedgerAdjustment, domain.ErrInvalidInput},
		{"unknown type", "u1", 5, domain.LedgerType("BONUS"), domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Credit(ctx, tt.userID, tt.amount, tt.entryType, "")
			assert.ErrorIs(t, err, tt.want)

			_, err = svc.Debit(ctx, tt.userID, tt.amount, tt.entryType, "")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCredit_IdempotentOnRef(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	first, err := svc.Credit(ctx, "u1", 2, domain.LedgerSessionCredit, "session-1")
	require.NoError(t, err)
	assert.False(t, first.AlreadyCredited)
	assert.Equal(t, int64(2), first.Balance)
	assert.NotEmpty(t, first.EntryID)

	second, err := svc.Credit(ctx, "u1", 2, domain.LedgerSessionCredit, "session-1")
	require.NoError(t, err)
	assert.True(t, second.AlreadyCredited)
	assert.Equal(t, int64(2), second.Balance)
	assert.Equal(t, first.EntryID, second.EntryID)

	// Without a ref every credit applies
	_, err = svc.Credit(ctx, "u1", 1, domain.LedgerAdjustment, "")
	require.NoError(t, err)
	third, err := svc.Credit(ctx, "u1", 1, domain.LedgerAdjustment, "")
	require.NoError(t, err)
	assert.Equal(t, int64(4), third.Balance)
}

func TestDebit_NeverGoesNegative(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Credit(ctx, "u1", 10, domain.LedgerAdjustment, "")
	require.NoError(t, err)

	res, err := svc.Debit(ctx, "u1", 4, domain.LedgerPurchase, "")
	require.NoError(t, err)
	assert.Equal(t, int64(6), res.Balance)

	_, err = svc.Debit(ctx, "u1", 7, domain.LedgerPurchase, "")
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	balance, err := svc.GetBalance(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(6), balance)
}

func TestDebit_CreatesWalletLazily(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	_, err := svc.Debit(ctx, "u2", 1, domain.LedgerPurchase, "")
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	// The failed debit rolled back, including the wallet creation
	w, err := store.Wallets().GetWallet(ctx, "u2")
	require.NoError(t, err)
	assert.Nil(t, w)
}

func TestLedgerMatchesBalance_AfterMixedOperations(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	ops := []struct {
		credit bool
		amount int64
	}{
		{true, 50}, {false, 20}, {true, 5}, {false, 100}, {false, 35}, {true, 1},
	}
	for _, op := range ops {
		if op.credit {
			_, _ = svc.Credit(ctx, "u1", op.amount, domain.LedgerAdjustment, "")
		} else {
			_, _ = svc.Debit(ctx, "u1", op.amount, domain.LedgerPurchase, "")
		}
	}

	rec, err := svc.Reconcile(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, rec.Consistent)
	assert.Equal(t, int64(1), rec.Balance)
	assert.Equal(t, rec.Balance, rec.LedgerSum)
}

func TestDebit_ConcurrentSpendersSerialize(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Credit(ctx, "u1", 100, domain.LedgerAdjustment, "")
	require.NoError(t, err)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Debit(ctx, "u1", 7, domain.LedgerPurchase, ""); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 14, succeeded, "only floor(100/7) debits fit")

	rec, err := svc.Reconcile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), rec.Balance)
	assert.True(t, rec.Consistent)
}

func TestHistory_NewestFirstWithLimit(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	clk := clock.NewSimulatedClock(time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC))
	svc := NewService(store.Wallets(), clk)

	for i := int64(1); i <= 3; i++ {
		_, err := svc.Credit(ctx, "u1", i, domain.LedgerAdjustment, "")
		require.NoError(t, err)
		clk.Advance(time.Minute)
	}

	entries, err := svc.History(ctx, "u1", 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(3), entries[0].Amount)
	assert.Equal(t, int64(2), entries[1].Amount)
}

func TestCredit_DuplicateRaceReportsAlreadyCredited(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	tx := new(MockTx)

	repo.On("GetLedgerEntryByRef", ctx, "u1", domain.LedgerSessionCredit, "s1").Return(nil, nil)
	repo.On("BeginTx", ctx).Return(tx, nil)
	tx.On("EnsureWallet", ctx, "u1").Return(nil)
	tx.On("GetWalletForUpdate", ctx, "u1").Return(&domain.Wallet{UserID: "u1", BalanceCoins: 2}, nil)
	tx.On("InsertLedgerEntry", ctx, mock.AnythingOfType("*domain.LedgerEntry")).Return(domain.ErrDuplicateLedgerEntry)
	tx.On("Rollback", ctx).Return(nil)
	repo.On("GetWallet", ctx, "u1").Return(&domain.Wallet{UserID: "u1", BalanceCoins: 2}, nil)

	svc := NewService(repo, clock.NewSimulatedClock(time.Now()))

	res, err := svc.Credit(ctx, "u1", 2, domain.LedgerSessionCredit, "s1")
	require.NoError(t, err)
	assert.True(t, res.AlreadyCredited)
	assert.Equal(t, int64(2), res.Balance)

	tx.AssertNotCalled(t, "AddToBalance", mock.Anything, mock.Anything, mock.Anything)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
	repo.AssertExpectations(t)
}

func TestCredit_BeginTxFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("BeginTx", ctx).Return(nil, errors.New("connection refused"))

	svc := NewService(repo, nil)

	_, err := svc.Credit(ctx, "u1", 2, domain.LedgerAdjustment, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to begin transaction")
}
