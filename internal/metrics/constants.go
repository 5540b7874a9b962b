package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameSessionsFinished        = "timer_sessions_finished_total"
	MetricNameItemsPurchased          = "items_purchased_total"
	MetricNamePacksOpened             = "packs_opened_total"
	MetricNameSeedsUnlocked           = "seeds_unlocked_total"
	MetricNamePlantsPlanted           = "plants_planted_total"
	MetricNamePlantsHarvested         = "plants_harvested_total"
	MetricNameCoinsEarned             = "coins_earned_total"
	MetricNameCoinsSpent              = "coins_spent_total"
	MetricNameReconciliationsRequired = "reconciliations_required_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextSessionsFinished        = "Timer sessions that reached a terminal state"
	HelpTextItemsPurchased          = "Total number of items purchased"
	HelpTextPacksOpened             = "Total number of seed packs opened"
	HelpTextSeedsUnlocked           = "Seeds unlocked for the first time by a pack"
	HelpTextPlantsPlanted           = "Total number of seeds planted"
	HelpTextPlantsHarvested         = "Total number of plants harvested"
	HelpTextCoinsEarned             = "Coins credited to wallets"
	HelpTextCoinsSpent              = "Coins debited for purchases"
	HelpTextReconciliationsRequired = "Compensations that failed and need manual repair"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelItem      = "item"
	LabelMode      = "mode"
	LabelSource    = "source"
	LabelOperation = "operation"
)

// Coin sources
const (
	SourceSession = "session"
	SourceHarvest = "harvest"
)

// ============================================================================
// Event Payload Field Names
// ============================================================================

// Field names used when extracting values from event payloads
const (
	PayloadFieldItemSlug      = "item_slug"
	PayloadFieldSeedSlug      = "seed_slug"
	PayloadFieldNewlyUnlocked = "newly_unlocked"
	PayloadFieldQuantity      = "quantity"
	PayloadFieldAmount        = "amount"
	PayloadFieldMode          = "mode"
	PayloadFieldStatus        = "status"
	PayloadFieldOperation     = "operation"
	PayloadFieldCreditPending = "credit_pending"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// PathUnmatched labels requests that matched no route
const PathUnmatched = "unmatched"

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadNotMap = "Event payload is not a map"
	LogMsgMetricsRecorded    = "Metrics recorded for event"
)
