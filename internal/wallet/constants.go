package wallet

// Log messages
const (
	LogMsgCreditCalled     = "Credit called"
	LogMsgDebitCalled      = "Debit called"
	LogMsgAlreadyCredited  = "Ledger entry already exists, skipping credit"
	LogMsgCredited         = "Wallet credited"
	LogMsgDebited          = "Wallet debited"
	LogMsgLedgerMismatch   = "Wallet balance does not match ledger"
	LogMsgReconcileChecked = "Wallet reconciled"
)

// Error messages
const (
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
	ErrMsgEnsureWalletFailed      = "failed to ensure wallet: %w"
	ErrMsgLockWalletFailed        = "failed to lock wallet: %w"
	ErrMsgInsertLedgerFailed      = "failed to insert ledger entry: %w"
	ErrMsgUpdateBalanceFailed     = "failed to update balance: %w"
	ErrMsgGetWalletFailed         = "failed to get wallet: %w"
	ErrMsgCheckLedgerRefFailed    = "failed to check ledger reference: %w"
	ErrMsgSumLedgerFailed         = "failed to sum ledger: %w"
	ErrMsgListLedgerFailed        = "failed to list ledger entries: %w"
)
