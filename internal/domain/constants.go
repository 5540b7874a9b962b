package domain

import "time"

// Garden constants
const (
	DefaultGardenSize = 5
	MaxGardenSize     = 12
)

// Timer constants
const (
	DefaultTimerGrace     = 30 * time.Second
	DefaultMinDurationSec = 60
	DefaultMaxDurationSec = 3600
)

// Accrual constants
const (
	DefaultCoinsPerMinute   = 1.0
	DefaultMinCreditMinutes = 1
)

// Economy constants
const (
	MaxTransactionQuantity = 10000
	DefaultLedgerPageSize  = 50
	MaxLedgerPageSize      = 500
)

// Leaderboard constants
const (
	LeaderboardLimit = 50
)

// Seed metadata defaults applied when the catalog omits a field
const (
	DefaultStageCount = 1
)

// Shared metadata keys used in event payloads
const (
	MetadataKeyUserID    = "user_id"
	MetadataKeyItemID    = "item_id"
	MetadataKeyItemSlug  = "item_slug"
	MetadataKeyQuantity  = "quantity"
	MetadataKeyAmount    = "amount"
	MetadataKeySessionID = "session_id"
	MetadataKeyPlantID   = "plant_id"
	MetadataKeyMode      = "mode"
	MetadataKeySeconds   = "seconds"
)
