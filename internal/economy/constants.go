package economy

// Formatted error messages for validation
const (
	ErrMsgInvalidQuantityFmt    = "invalid quantity: %d: %w"
	ErrMsgQuantityExceedsMaxFmt = "quantity %d exceeds maximum allowed (%d): %w"
	ErrMsgTotalOverflowFmt      = "total price overflows for %d x %d: %w"
	ErrMsgNoValidPriceFmt       = "%s: %w"
	ErrMsgSeedNotUnlockedFmt    = "%s: %w"
)

// Operation error messages
const (
	ErrMsgCheckUnlockFailed = "failed to check seed unlock: %w"
	ErrMsgCreditItemsFailed = "failed to credit purchased items: %w"
	ErrMsgListItemsFailed   = "failed to list items: %w"
)

// Log messages
const (
	LogMsgPurchaseCalled          = "Purchase called"
	LogMsgItemPurchased           = "Item purchased"
	LogMsgDebitFailedCompensating = "Debit failed after inventory credit, reversing items"
	LogMsgCompensationFailed      = "Failed to reverse purchased items, reconciliation required"
	LogMsgGetBuyablePricesCalled  = "GetBuyablePrices called"
)

// Reconciliation operation names
const (
	OperationReversePurchase = "reverse_purchase"
)
