package database

// Database Connection Pool Constants
const (
	// DefaultMinConnections is the minimum number of connections to maintain in the pool
	DefaultMinConnections = 2
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString    = "failed to parse connection string"
	ErrMsgFailedToCreatePool         = "failed to create connection pool"
	ErrMsgFailedToPingDatabase       = "failed to ping database"
	ErrMsgFailedToLoadMigrations     = "failed to load migrations"
	ErrMsgFailedToMigrateUp          = "failed to apply migrations"
	ErrMsgFailedToMigrateDown        = "failed to roll back migration"
	ErrMsgFailedToGetMigrationStatus = "failed to get migration status"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgMigrationApplied                = "Migration applied"
	LogMsgMigrationRolledBack             = "Migration rolled back"
)
