package leaderboard

// Range selects the period a leaderboard covers
type Range string

const (
	RangeDay   Range = "day"
	RangeWeek  Range = "week"
	RangeMonth Range = "month"
	RangeYear  Range = "year"
)

// DefaultRange is used when no range is requested
const DefaultRange = RangeWeek

// MaxEntries caps the number of ranked rows
const MaxEntries = 50

const (
	LogMsgStudyCalled = "Study leaderboard requested"

	ErrMsgGetTotalsFailed = "failed to get study totals: %w"
)
