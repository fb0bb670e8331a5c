package event

import "github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/domain"

// Client-facing realtime event names. These are what locally connected
// viewers receive; they are distinct from the cross-process tags above.
const (
	ClientTestCompletion = "test_completion"
	ClientOnlineUsers    = "online_users_update"
	ClientTypingStart    = "user_typing_start"
	ClientTypingProgress = "user_typing_progress"
	ClientLeaderboard    = "leaderboard_update"
	ClientStatsUpdate    = "stats_update"
)

// TestCompletionPayload is pushed when any process stores a result.
type TestCompletionPayload struct {
	Username string            `json:"username"`
	Result   domain.TestResult `json:"result"`
}

// OnlineUsersPayload carries the online count. The user list is only
// included for locally originated updates; relayed updates carry the
// count alone.
type OnlineUsersPayload struct {
	Count int64    `json:"count"`
	Users []string `json:"users,omitempty"`
}

// TypingStartPayload announces a user starting a test.
type TypingStartPayload struct {
	Username string `json:"username"`
	TextID   string `json:"textId"`
}

// TypingProgressPayload carries live progress, relayed verbatim.
type TypingProgressPayload struct {
	Username   string  `json:"username"`
	Progress   float64 `json:"progress"`
	CurrentWpm float64 `json:"currentWpm"`
	Errors     int     `json:"errors"`
}

// LeaderboardPayload is a full board snapshot pushed to viewers.
type LeaderboardPayload struct {
	Type        domain.Board              `json:"type"`
	Leaderboard []domain.LeaderboardEntry `json:"leaderboard"`
}
