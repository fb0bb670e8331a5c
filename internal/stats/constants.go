package stats

// Error messages
const (
	ErrMsgTrackUserFailed     = "failed to track distinct user: %w"
	ErrMsgCountUsersFailed    = "failed to count distinct users: %w"
	ErrMsgIncrementFailed     = "failed to increment global counters: %w"
	ErrMsgSnapshotWriteFailed = "failed to write stats snapshot: %w"
	ErrMsgSnapshotReadFailed  = "failed to read stats snapshot: %w"
)

// Log messages
const (
	LogMsgStatsRecorded = "Global stats updated"
	LogMsgPublishFailed = "Failed to publish stats update"
)
