package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Constraint names referenced when translating unique violations
const (
	ConstraintLedgerRef      = "uq_ledger_entries_ref"
	ConstraintRunningSession = "uq_timer_sessions_running"
)

// Advisory lock keys
const (
	LockKeyHoldingFmt      = "holding:%s:%d"
	LockKeyUserSessionsFmt = "timer:%s"
	LockKeyUserGardenFmt   = "garden:%s"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - Wallet Operations
const (
	ErrMsgFailedToGetWallet          = "failed to get wallet"
	ErrMsgFailedToEnsureWallet       = "failed to ensure wallet"
	ErrMsgFailedToUpdateBalance      = "failed to update balance"
	ErrMsgFailedToInsertLedgerEntry  = "failed to insert ledger entry"
	ErrMsgFailedToGetLedgerEntry     = "failed to get ledger entry"
	ErrMsgFailedToQueryLedgerEntries = "failed to query ledger entries"
	ErrMsgFailedToSumLedger          = "failed to sum ledger"
	ErrMsgWalletMissingFmt           = "wallet for user %s does not exist"
)

// Error Messages - Item Operations
const (
	ErrMsgFailedToGetItemByID     = "failed to get item by id"
	ErrMsgFailedToGetItemBySlug   = "failed to get item by slug"
	ErrMsgFailedToGetItemsBySlugs = "failed to get items by slugs"
	ErrMsgFailedToGetAllItems     = "failed to get all items"
	ErrMsgFailedToUpsertItem      = "failed to upsert item"
)

// Error Messages - Inventory Operations
const (
	ErrMsgFailedToQueryHoldings    = "failed to query holdings"
	ErrMsgFailedToGetHolding       = "failed to get holding"
	ErrMsgFailedToUpsertHolding    = "failed to upsert holding"
	ErrMsgFailedToDeleteHolding    = "failed to delete holding"
	ErrMsgFailedToCheckSeedUnlock  = "failed to check seed unlock"
	ErrMsgFailedToQuerySeedUnlocks = "failed to query seed unlocks"
	ErrMsgFailedToGrantSeedUnlock  = "failed to grant seed unlock"
)

// Error Messages - Timer Operations
const (
	ErrMsgFailedToLockUserSessions  = "failed to lock user sessions"
	ErrMsgFailedToGetSession        = "failed to get session"
	ErrMsgFailedToQuerySessions     = "failed to query sessions"
	ErrMsgFailedToInsertSession     = "failed to insert session"
	ErrMsgFailedToFinishSession     = "failed to finish session"
	ErrMsgFailedToQueryStudyTotals  = "failed to query study totals"
	ErrMsgFailedToCheckSubjectOwner = "failed to check subject owner"
)

// Error Messages - Garden Operations
const (
	ErrMsgFailedToLockUserGarden   = "failed to lock user garden"
	ErrMsgFailedToCountPlots       = "failed to count plots"
	ErrMsgFailedToDeletePlots      = "failed to delete plots"
	ErrMsgFailedToCreatePlots      = "failed to create plots"
	ErrMsgFailedToQueryPlots       = "failed to query plots"
	ErrMsgFailedToGetPlot          = "failed to get plot"
	ErrMsgFailedToSetPlotPlant     = "failed to set plot plant"
	ErrMsgFailedToInsertPlant      = "failed to insert plant"
	ErrMsgFailedToGetPlant         = "failed to get plant"
	ErrMsgFailedToQueryPlants      = "failed to query plants"
	ErrMsgFailedToMarkPlantHarvest = "failed to mark plant harvested"
)

// Error Messages - Event Operations
const (
	ErrMsgFailedToMarshalEventData   = "failed to marshal event data"
	ErrMsgFailedToInsertEvent        = "failed to insert event"
	ErrMsgFailedToQueryEvents        = "failed to query events"
	ErrMsgFailedToUnmarshalEventData = "failed to unmarshal event data"
	ErrMsgFailedToCleanupEvents      = "failed to cleanup events"
)
