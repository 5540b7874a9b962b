package bootstrap

import "time"

// File system permissions
const (
	DirPermission = 0755
)

// Log messages for startup
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingStudyGarden = "Starting StudyGarden"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgStorageInitialized  = "Storage initialized"
	LogMsgMigrationsApplied   = "Database migrations applied"
	LogMsgMigrationsSkipped   = "RUN_MIGRATIONS disabled, skipping migrations"
)

// Error messages for storage setup
const (
	ErrMsgUnknownStorageBackend = "unknown storage backend %q"
	ErrMsgFailedConnectDatabase = "failed to connect to database"
	ErrMsgFailedCreateMigrator  = "failed to create migrator"
	ErrMsgFailedRunMigrations   = "failed to run migrations"
)

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized    = "Event system initialized"
	LogMsgFailedCreateDeadLetterDir = "failed to create dead-letter directory"
)

// Catalog sync messages
const (
	LogMsgSyncingCatalog   = "Syncing catalog from JSON config..."
	LogMsgCatalogSynced    = "Catalog synced successfully"
	LogMsgCatalogUnchanged = "Catalog config unchanged, sync skipped"

	ErrMsgFailedLoadCatalog = "failed to load catalog config"
	ErrMsgInvalidCatalog    = "invalid catalog config"
	ErrMsgFailedSyncCatalog = "failed to sync catalog to database"
)

// Log messages for event handler registration
const (
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgEventLoggerInitialized     = "Event logger initialized"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
	ErrMsgFailedSubscribeEventLogger = "failed to subscribe event logger"
)

// Shutdown messages
const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgClosingStorage             = "Closing storage..."
	LogMsgStoppingBackgroundJobs     = "Stopping background jobs..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
)

// Background jobs
const (
	BackgroundWorkers    = 1
	BackgroundQueueSize  = 4
	JobNameEventCleanup  = "eventlog_cleanup"
	EventCleanupInterval = 24 * time.Hour
)

// ShutdownTimeout bounds the whole graceful shutdown sequence
const ShutdownTimeout = 10 * time.Second
