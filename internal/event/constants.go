package event

import "time"

// Event schema versioning
const (
	// EventSchemaVersion is the current event schema version
	EventSchemaVersion = "1.0"
)

// Retry configuration defaults
const (
	DefaultRetryMaxAttempts = 3
	DefaultRetryDelay       = 2 * time.Second
)

// Dead letter file configuration
const (
	DeadLetterFilePermissions = 0644
	DeadLetterSchemaVersion   = "1.0"
)

// Log message constants
const (
	LogMsgEventPublishFailed  = "Event publish failed, scheduling retry"
	LogMsgEventRetryFailed    = "Event retry failed"
	LogMsgEventRetrySucceeded = "Event retry succeeded"
	LogMsgEventDeadLettered   = "Event retries exhausted, written to dead letter"
	LogMsgDeadLetterFailed    = "Failed to write event to dead letter"
	LogMsgEmitFailed          = "Failed to publish event"

	// Log message for handler errors
	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
)

// CalculateRetryDelay returns the exponential backoff delay for an attempt
// (base, 2*base, 4*base, ...)
func CalculateRetryDelay(baseDelay time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return baseDelay * time.Duration(1<<(attempt-1))
}
