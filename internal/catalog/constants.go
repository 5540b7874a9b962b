package catalog

// Metadata keys as stored in the item metadata bag
const (
	metaKeyPackName        = "packName"
	metaKeyGrowthDays      = "growthDays"
	metaKeyStageCount      = "stageCount"
	metaKeyCoinYield       = "coinYield"
	metaKeyRepurchasePrice = "repurchasePrice"
	metaKeyDrops           = "drops"
	metaKeySeedSlug        = "seedSlug"
	metaKeyWeight          = "weight"
)

// Cache
const (
	cacheKeyPrefixID   = "id:"
	cacheKeyPrefixSlug = "slug:"

	// CacheSchemaVersion invalidates cached entries when the parsed item shape changes
	CacheSchemaVersion = "1.0"
)

// Log messages
const (
	LogMsgCatalogInvalidated = "Catalog cache invalidated"
	LogMsgMetadataMalformed  = "Item metadata is malformed, treating as empty"
	LogMsgSyncCompleted      = "Catalog sync completed"
	LogMsgUpdatedItem        = "Updated item"
	LogMsgInsertedItem       = "Inserted item"
)

// Loader error messages
const (
	ErrMsgReadConfigFileFailed   = "failed to read catalog config file: %w"
	ErrMsgParseConfigFailed      = "failed to parse catalog config: %w"
	ErrMsgGetExistingItemsFailed = "failed to get existing items: %w"
	ErrMsgUpsertItemFailed       = "failed to upsert item '%s': %w"

	ErrMsgConfigNil      = "config is nil"
	ErrMsgNoItemsDefined = "no items defined"
)

// Format strings used with fmt.Errorf for validation failures
const (
	ErrFmtItemAtIndexEmptySlug = "%w: item at index %d has empty slug"
	ErrFmtItemEmptyName        = "%w: item '%s' has empty name"
	ErrFmtItemUnknownType      = "%w: item '%s' has unknown type '%s'"
	ErrFmtItemNegativePrice    = "%w: item '%s' has negative price"
	ErrFmtPackNoDrops          = "%w: pack '%s' has no valid drops"
	ErrFmtPackUnknownSeed      = "%w: pack '%s' references unknown seed '%s'"
)
