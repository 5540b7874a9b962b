package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/StudyGarden_Go/internal/clock"
	"github.com/osse101/StudyGarden_Go/internal/domain"
	"github.com/osse101/StudyGarden_Go/internal/logger"
	"github.com/osse101/StudyGarden_Go/internal/repository"
)

// CreditResult is the outcome of a credit
type CreditResult struct {
	AlreadyCredited bool   `json:"already_credited"`
	Balance         int64  `json:"balance"`
	EntryID         string `json:"entry_id,omitempty"`
}

// DebitResult is the outcome of a debit
type DebitResult struct {
	Balance int64  `json:"balance"`
	EntryID string `json:"entry_id"`
}

// ReconcileResult compares the cached balance with the ledger
type ReconcileResult struct {
	UserID     string `json:"user_id"`
	Balance    int64  `json:"balance"`
	LedgerSum  int64  `json:"ledger_sum"`
	Consistent bool   `json:"consistent"`
}

// Service defines wallet and ledger operations. The ledger is the source of
// truth; the wallet balance is a roll-up maintained in the same transaction.
type Service interface {
	EnsureWallet(ctx context.Context, userID string) error
	GetBalance(ctx context.Context, userID string) (int64, error)
	// Credit is idempotent on (userID, entryType, refID) when refID is set
	Credit(ctx context.Context, userID string, amount int64, entryType domain.LedgerType, refID string) (*CreditResult, error)
	Debit(ctx context.Context, userID string, amount int64, entryType domain.LedgerType, refID string) (*DebitResult, error)
	History(ctx context.Context, userID string, limit int) ([]domain.LedgerEntry, error)
	Reconcile(ctx context.Context, userID string) (*ReconcileResult, error)
}

type service struct {
	repo  repository.Wallet
	clock clock.Clock
}

// NewService creates a new wallet service
func NewService(repo repository.Wallet, clk clock.Clock) Service {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &service{repo: repo, clock: clk}
}

func (s *service) EnsureWallet(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := tx.EnsureWallet(ctx, userID); err != nil {
		return fmt.Errorf(ErrMsgEnsureWalletFailed, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}
	return nil
}

func (s *service) GetBalance(ctx context.Context, userID string) (int64, error) {
	w, err := s.repo.GetWallet(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgGetWalletFailed, err)
	}
	if w == nil {
		return 0, nil
	}
	return w.BalanceCoins, nil
}

func (s *service) Credit(ctx context.Context, userID string, amount int64, entryType domain.LedgerType, refID string) (*CreditResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgCreditCalled, "user_id", userID, "amount", amount, "type", entryType, "ref_id", refID)

	if err := validateEntry(userID, amount, entryType); err != nil {
		return nil, err
	}

	if refID != "" {
		existing, err := s.repo.GetLedgerEntryByRef(ctx, userID, entryType, refID)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgCheckLedgerRefFailed, err)
		}
		if existing != nil {
			log.Info(LogMsgAlreadyCredited, "user_id", userID, "ref_id", refID)
			return s.alreadyCredited(ctx, userID, existing.ID)
		}
	}

	entry := &domain.LedgerEntry{
		UserID:    userID,
		Amount:    amount,
		Type:      entryType,
		RefID:     refID,
		CreatedAt: s.clock.Now(),
	}

	balance, err := s.apply(ctx, entry)
	if errors.Is(err, domain.ErrDuplicateLedgerEntry) {
		// A concurrent credit with the same key won the race
		log.Info(LogMsgAlreadyCredited, "user_id", userID, "ref_id", refID)
		return s.alreadyCredited(ctx, userID, "")
	}
	if err != nil {
		return nil, err
	}

	log.Info(LogMsgCredited, "user_id", userID, "amount", amount, "balance", balance)
	return &CreditResult{Balance: balance, EntryID: entry.ID}, nil
}

func (s *service) Debit(ctx context.Context, userID string, amount int64, entryType domain.LedgerType, refID string) (*DebitResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgDebitCalled, "user_id", userID, "amount", amount, "type", entryType, "ref_id", refID)

	if err := validateEntry(userID, amount, entryType); err != nil {
		return nil, err
	}

	entry := &domain.LedgerEntry{
		UserID:    userID,
		Amount:    -amount,
		Type:      entryType,
		RefID:     refID,
		CreatedAt: s.clock.Now(),
	}

	balance, err := s.apply(ctx, entry)
	if err != nil {
		return nil, err
	}

	log.Info(LogMsgDebited, "user_id", userID, "amount", amount, "balance", balance)
	return &DebitResult{Balance: balance, EntryID: entry.ID}, nil
}

// apply appends entry and moves the balance by entry.Amount in one transaction,
// holding the wallet row lock between the balance check and the write
func (s *service) apply(ctx context.Context, entry *domain.LedgerEntry) (int64, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := tx.EnsureWallet(ctx, entry.UserID); err != nil {
		return 0, fmt.Errorf(ErrMsgEnsureWalletFailed, err)
	}

	w, err := tx.GetWalletForUpdate(ctx, entry.UserID)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgLockWalletFailed, err)
	}
	if entry.Amount < 0 && w.BalanceCoins < -entry.Amount {
		return 0, fmt.Errorf("%w: balance %d, need %d", domain.ErrInsufficientBalance, w.BalanceCoins, -entry.Amount)
	}

	if err := tx.InsertLedgerEntry(ctx, entry); err != nil {
		if errors.Is(err, domain.ErrDuplicateLedgerEntry) {
			return 0, err
		}
		return 0, fmt.Errorf(ErrMsgInsertLedgerFailed, err)
	}

	balance, err := tx.AddToBalance(ctx, entry.UserID, entry.Amount)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgUpdateBalanceFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}
	return balance, nil
}

func (s *service) alreadyCredited(ctx context.Context, userID, entryID string) (*CreditResult, error) {
	balance, err := s.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &CreditResult{AlreadyCredited: true, Balance: balance, EntryID: entryID}, nil
}

func (s *service) History(ctx context.Context, userID string, limit int) ([]domain.LedgerEntry, error) {
	if limit <= 0 {
		limit = domain.DefaultLedgerPageSize
	}
	if limit > domain.MaxLedgerPageSize {
		limit = domain.MaxLedgerPageSize
	}

	entries, err := s.repo.ListLedgerEntries(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListLedgerFailed, err)
	}
	return entries, nil
}

func (s *service) Reconcile(ctx context.Context, userID string) (*ReconcileResult, error) {
	balance, err := s.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	sum, err := s.repo.SumLedger(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgSumLedgerFailed, err)
	}

	result := &ReconcileResult{
		UserID:     userID,
		Balance:    balance,
		LedgerSum:  sum,
		Consistent: balance == sum,
	}

	log := logger.FromContext(ctx)
	if !result.Consistent {
		log.Error(LogMsgLedgerMismatch, "user_id", userID, "balance", balance, "ledger_sum", sum)
	} else {
		log.Info(LogMsgReconcileChecked, "user_id", userID, "balance", balance)
	}
	return result, nil
}

func validateEntry(userID string, amount int64, entryType domain.LedgerType) error {
	if userID == "" {
		return fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	if amount <= 0 {
		return fmt.Errorf("%w: got %d", domain.ErrInvalidAmount, amount)
	}
	if !entryType.Valid() {
		return fmt.Errorf("%w: unknown ledger type %q", domain.ErrInvalidInput, entryType)
	}
	return nil
}
