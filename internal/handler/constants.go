package handler

import "time"

// HeaderUserID carries the caller's identity, set by the upstream gateway
const HeaderUserID = "X-User-ID"

// Query parameters
const (
	QueryParamLimit = "limit"
	QueryParamRange = "range"
	QueryParamType  = "type"
)

// Route parameters
const (
	URLParamSessionID = "sessionID"
)

const readyzTimeout = 2 * time.Second

// Generic HTTP error messages for client responses.
// These messages do not expose internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingUserID         = "Missing X-User-ID header"
	ErrMsgInvalidLimit          = "Invalid limit parameter"
	ErrMsgInvalidRange          = "Invalid range. Valid options: day, week, month, year"
	ErrMsgMissingSessionID      = "Missing session id"

	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
)

// User-facing messages for domain errors
const (
	ErrMsgInsufficientBalanceError = "Not enough coins"
	ErrMsgSeedNotUnlockedError     = "Seed is not unlocked yet"
	ErrMsgSubjectNotOwnedError     = "Subject not found"
	ErrMsgItemNotFoundError        = "Item not found"
	ErrMsgSessionNotFoundError     = "Session not found"
	ErrMsgPlotNotFoundError        = "Plot not found"
	ErrMsgPlantNotFoundError       = "Plant not found"
	ErrMsgAlreadyRunningError      = "A session is already running"
	ErrMsgPlotOccupiedError        = "Plot is already occupied"
	ErrMsgNotRunningError          = "Session is not running"
	ErrMsgSubjectRequiredError     = "Study sessions need a subject"
	ErrMsgInvalidTimerModeError    = "Invalid timer mode"
	ErrMsgInsufficientQuantityErr  = "Not enough items"
	ErrMsgPackNotOwnedError        = "You don't own that pack"
	ErrMsgNotOwnedError            = "You don't have that item"
	ErrMsgNotASeedError            = "That item is not a seed"
	ErrMsgNotAPackError            = "That item is not a seed pack"
	ErrMsgNoValidPriceError        = "That item is not for sale"
	ErrMsgPlotOutOfBoundsError     = "Plot is outside the garden"
	ErrMsgPlotEmptyError           = "Nothing is planted there"
	ErrMsgInvalidAmountError       = "Amount must be positive"
	ErrMsgInvalidInputError        = "Invalid request. Please check your inputs."
)

// Operation names used in logs
const (
	OpStartTimer       = "Start timer"
	OpStopTimer        = "Stop timer"
	OpCreditSession    = "Credit session"
	OpListSessions     = "List sessions"
	OpStudyTotals      = "Study totals"
	OpGetWallet        = "Get wallet"
	OpGetLedger        = "Get ledger"
	OpGetInventory     = "Get inventory"
	OpGetPrices        = "Get prices"
	OpPurchase         = "Purchase"
	OpOpenPack         = "Open pack"
	OpGetGarden        = "Get garden"
	OpPlant            = "Plant"
	OpHarvest          = "Harvest"
	OpStudyLeaderboard = "Study leaderboard"
	OpRecentEvents     = "Recent events"
)

// Log messages
const (
	LogMsgServiceError      = "Service call failed"
	LogMsgDecodeFailed      = "Failed to decode request"
	LogMsgRequestDecoded    = "Request decoded"
	LogMsgValidationFailed  = "Request validation failed"
	LogMsgCreditFailed      = "Session stopped but credit failed"
	LogMsgReadinessFailed   = "Readiness check failed"
	LogMsgEncodeFailed      = "Failed to encode JSON response"
	LogMsgWriteFailed       = "Failed to write response buffer"
	LogMsgMissingUserID     = "Request without user id"
	LogMsgInvalidQueryParam = "Invalid query parameter"
)

// Health
const (
	HealthStatusOK          = "ok"
	HealthStatusUnavailable = "unavailable"
	HealthMsgStoreFailed    = "storage unavailable"
)
