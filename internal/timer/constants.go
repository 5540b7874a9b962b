package timer

import "time"

// DefaultGrace is the tolerance past a session's planned end during which it
// may still be stopped and blocks a new start
const DefaultGrace = 30 * time.Second

// Listing limits
const (
	DefaultListLimit = 20
	MaxListLimit     = 200
)

// Log messages
const (
	LogMsgStartCalled       = "StartSession called"
	LogMsgStopCalled        = "StopSession called"
	LogMsgSessionStarted    = "Session started"
	LogMsgSessionStopped    = "Session stopped"
	LogMsgSessionAbandoned  = "Stale session abandoned"
	LogMsgStartRejected     = "Session still running inside grace window"
	LogMsgStopCappedAtGrace = "Stop arrived after grace window, capping end time"
)

// Error messages
const (
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
	ErrMsgLockSessionsFailed      = "failed to lock user sessions: %w"
	ErrMsgGetRunningFailed        = "failed to get running session: %w"
	ErrMsgGetSessionFailed        = "failed to get session: %w"
	ErrMsgAbandonFailed           = "failed to abandon session %s: %w"
	ErrMsgInsertSessionFailed     = "failed to insert session: %w"
	ErrMsgFinishSessionFailed     = "failed to finish session: %w"
	ErrMsgCheckSubjectFailed      = "failed to check subject ownership: %w"
	ErrMsgListSessionsFailed      = "failed to list sessions: %w"
	ErrMsgGetTotalsFailed         = "failed to get study totals: %w"
)
