package inventory

// Log messages
const (
	LogMsgAdjustQuantity = "Adjusting inventory quantity"
	LogMsgHoldingRemoved = "Holding reached zero and was removed"
)

// Error messages
const (
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
	ErrMsgLockHoldingFailed       = "failed to lock holding: %w"
	ErrMsgUpsertHoldingFailed     = "failed to upsert holding: %w"
	ErrMsgDeleteHoldingFailed     = "failed to delete holding: %w"
	ErrMsgListHoldingsFailed      = "failed to list holdings: %w"
	ErrMsgListUnlocksFailed       = "failed to list seed unlocks: %w"
)
