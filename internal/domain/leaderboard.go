package domain

// Board identifies one of the three ranked leaderboards. Each board maps
// usernames to the corresponding rolling average.
type Board string

const (
	BoardWPM         Board = "wpm"
	BoardAccuracy    Board = "accuracy"
	BoardConsistency Board = "consistency"
)

// Boards lists every board in broadcast order.
var Boards = []Board{BoardWPM, BoardAccuracy, BoardConsistency}

// ParseBoard maps a client-supplied board name onto a known board.
// Unknown names fall back to the WPM board.
func ParseBoard(s string) Board {
	switch Board(s) {
	case BoardAccuracy:
		return BoardAccuracy
	case BoardConsistency:
		return BoardConsistency
	default:
		return BoardWPM
	}
}

// LeaderboardEntry is one ranked row. Rank starts at 1 and descends by
// score; equal scores are ordered by username (reverse lexical), which
// keeps tie order deterministic and stable within a snapshot.
type LeaderboardEntry struct {
	Rank     int     `json:"rank"`
	Username string  `json:"username"`
	Score    float64 `json:"score"`
}

// LeaderboardEntryDetailed joins a ranked row with aggregate fields from
// the user's profile. Zero values stand in when the profile is missing.
type LeaderboardEntryDetailed struct {
	LeaderboardEntry
	TotalTests  int     `json:"totalTests"`
	AvgAccuracy float64 `json:"avgAccuracy"`
	LastSeen    string  `json:"lastSeen,omitempty"`
}

// Leaderboard is the response shape for leaderboard queries.
type Leaderboard struct {
	Type    Board                      `json:"type"`
	Entries []LeaderboardEntryDetailed `json:"leaderboard"`
}
