package garden

// DefaultSize is the side length of a garden grid
const DefaultSize = 5

// RewardSource selects which item field pays out on harvest
type RewardSource string

const (
	// RewardCoinYield pays the seed's coinYield, falling back to its price
	RewardCoinYield RewardSource = "coin_yield"
	// RewardPrice pays the seed's list price
	RewardPrice     RewardSource = "price"
)

// OperationHarvestCredit names the step recorded when a harvest payout fails
const OperationHarvestCredit = "harvest_credit"

// Log messages
const (
	LogMsgGardenCreated   = "Garden grid created"
	LogMsgPlantCalled     = "Plant called"
	LogMsgHarvestCalled   = "Harvest called"
	LogMsgPlanted         = "Seed planted"
	LogMsgHarvested       = "Plant harvested"
	LogMsgCreditFailed    = "Harvest recorded but reward credit failed"
	LogMsgMissingSeedItem = "Plant references an unknown item"
	LogMsgNoReward        = "Harvested item has no reward"
)

// Error messages
const (
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
	ErrMsgLockGardenFailed        = "failed to lock garden: %w"
	ErrMsgCountPlotsFailed        = "failed to count plots: %w"
	ErrMsgResetPlotsFailed        = "failed to reset plots: %w"
	ErrMsgCreatePlotsFailed       = "failed to create plots: %w"
	ErrMsgLockPlotFailed          = "failed to lock plot: %w"
	ErrMsgLockPlantFailed         = "failed to lock plant: %w"
	ErrMsgCheckUnlockFailed       = "failed to check seed unlock: %w"
	ErrMsgConsumeSeedFailed       = "failed to consume seed: %w"
	ErrMsgInsertPlantFailed       = "failed to insert plant: %w"
	ErrMsgLinkPlotFailed          = "failed to link plot: %w"
	ErrMsgHarvestPlantFailed      = "failed to mark plant harvested: %w"
	ErrMsgListPlotsFailed         = "failed to list plots: %w"
	ErrMsgListPlantsFailed        = "failed to list plants: %w"
	ErrMsgOutOfBoundsFmt          = "%w: (%d,%d) outside %dx%d grid"
)
