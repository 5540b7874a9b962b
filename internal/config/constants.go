package config

import "time"

const (
	// Configuration file paths
	ConfigPathItems      = "configs/items.json"
	ConfigPathItemSchema = "configs/schemas/items.schema.json"
)

// Storage backends
const (
	StorageBackendPostgres = "postgres"
	StorageBackendMemory   = "memory"
)

// Harvest reward sources
const (
	HarvestRewardCoinYield = "coin_yield"
	HarvestRewardPrice     = "price"
)

// Defaults
const (
	DefaultPort                = 8080
	DefaultDBMaxConns          = 20
	DefaultDBMaxConnIdle       = 5 * time.Minute
	DefaultDBMaxConnLifetime   = time.Hour
	DefaultGardenSize          = 5
	MaxGardenSize              = 12
	DefaultTimerGraceSec       = 30
	DefaultTimerMinDurationSec = 60
	DefaultTimerMaxDurationSec = 3600
	DefaultCoinsPerMinute      = 1.0
	DefaultMinCreditMinutes    = 1
	DefaultCatalogCacheSize    = 256
	DefaultCatalogCacheTTL     = 5 * time.Minute
	DefaultEventRetentionDays  = 30
	DefaultEventMaxRetries     = 5
	DefaultEventRetryDelay     = 2 * time.Second
	DefaultEventDeadLetterPath = "logs/event_deadletter.jsonl"
)
