package lootbox

// Log messages
const (
	LogMsgOpenPackCalled       = "OpenOne called"
	LogMsgPackOpened           = "Pack opened"
	LogMsgGrantFailed          = "Failed to grant rolled seed, returning pack"
	LogMsgCompensationFailed   = "Failed to return consumed pack, reconciliation required"
	LogMsgInvalidPackReference = "Pack references items that are not seeds"
)

// Error messages
const (
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
	ErrMsgGrantUnlockFailed       = "failed to grant seed unlock: %w"
	ErrMsgGrantSeedFailed         = "failed to grant seed: %w"
	ErrMsgConsumePackFailed       = "failed to consume pack: %w"
	ErrMsgResolveSeedsFailed      = "failed to resolve pack seeds: %w"
)

// Reconciliation operation names
const (
	OperationReturnPack = "return_pack"
)
