package leaderboard

// DefaultLimit is the number of entries returned when a query passes a
// non-positive limit.
const DefaultLimit = 10

// Error messages
const (
	ErrMsgUpdateFailed = "failed to update %s board: %w"
	ErrMsgTopNFailed   = "failed to read %s board: %w"
)

// Log messages
const (
	LogMsgMetaLookupFailed = "Failed to load user meta for board entry"
)
