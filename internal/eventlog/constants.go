package eventlog

import "github.com/osse101/StudyGarden_Go/internal/domain"

// LoggedEventTypes lists the domain events persisted to the event log
var LoggedEventTypes = []string{
	domain.EventTypeSessionStarted,
	domain.EventTypeSessionCompleted,
	domain.EventTypeSessionAbandoned,
	domain.EventTypeSessionCredited,
	domain.EventTypeItemPurchased,
	domain.EventTypePackOpened,
	domain.EventTypePlantPlanted,
	domain.EventTypePlantHarvested,
	domain.EventTypeReconciliationRequired,
}

// JSON payload field keys
const (
	PayloadKeyUserID = "user_id"
)

// Default query limits
const (
	DefaultQueryLimit = 100
	MaxQueryLimit     = 1000
)

// Log messages - service events
const (
	LogMsgEventPayloadNotMap = "Event payload is not a map, skipping log"
	LogMsgFailedToLogEvent   = "Failed to log event to database"
	LogMsgEventLogged        = "Event logged to database"
)

// Log messages - cleanup job
const (
	LogMsgCleanupJobStarting  = "Starting event log cleanup job"
	LogMsgCleanupJobFailed    = "Event log cleanup failed"
	LogMsgCleanupJobCompleted = "Event log cleanup completed"
)

// Log field keys - structured logging fields
const (
	LogFieldType          = "type"
	LogFieldUserID        = "user_id"
	LogFieldError         = "error"
	LogFieldRetentionDays = "retentionDays"
	LogFieldDuration      = "duration"
	LogFieldDeletedCount  = "deletedCount"
)
