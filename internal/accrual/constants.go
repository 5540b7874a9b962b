package accrual

// Defaults used when the configured values are not usable
const (
	DefaultCoinsPerMinute   = 1.0
	DefaultMinCreditMinutes = 1
)

// Skip reasons
const (
	ReasonNotCompleted   = "session not completed"
	ReasonBelowMinimum   = "session shorter than minimum credit time"
	ReasonNothingToAward = "session earns no coins"
)

// Log messages
const (
	LogMsgCreditCalled    = "CreditForSession called"
	LogMsgCreditSkipped   = "Session credit skipped"
	LogMsgSessionCredited = "Session credited"
)

// Error messages
const (
	ErrMsgGetSessionFailed = "failed to get session: %w"
	ErrMsgCreditFailed     = "failed to credit session %s: %w"
)
