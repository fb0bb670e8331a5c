package relay

// BroadcastLimit is the board size pushed on leaderboard refreshes.
const BroadcastLimit = 10

// Drop reasons for the events-dropped metric.
const (
	DropReasonMalformed = "malformed"
	DropReasonUnknown   = "unknown_type"
)

// Log messages
const (
	LogMsgMalformedEvent     = "Dropped malformed event payload"
	LogMsgUnknownEvent       = "Ignored unknown event type"
	LogMsgBoardRefreshFailed = "Failed to refresh leaderboard for broadcast"
)
