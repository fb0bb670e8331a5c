package store

import "github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/domain"

// Shared key space. Every process reads and writes the same keys; the
// layout below is part of the cross-process contract.
const (
	// KeyGlobalStats is the hash holding running sums:
	// total_tests, total_wpm, total_accuracy.
	KeyGlobalStats = "global:stats"

	// Snapshot keys, denormalized for cheap MGET reads.
	KeyTotalTests  = "stats:total_tests"
	KeyTotalUsers  = "stats:total_users"
	KeyAvgWPM      = "stats:avg_wpm"
	KeyAvgAccuracy = "stats:avg_accuracy"

	// KeyUsersAll is the set of every username that ever submitted.
	KeyUsersAll = "users:all"

	// KeyTexts is the hash of typing prompts, index -> text.
	KeyTexts = "typing:texts"

	// KeyOnlineCount is the store-side atomic online counter.
	KeyOnlineCount = "presence:online"
)

// Global stats hash fields.
const (
	FieldTotalTests    = "total_tests"
	FieldTotalWPM      = "total_wpm"
	FieldTotalAccuracy = "total_accuracy"
)

// User hash fields.
const (
	FieldUserTotalTests     = "total_tests"
	FieldUserAvgWPM         = "avg_wpm"
	FieldUserAvgAccuracy    = "avg_accuracy"
	FieldUserAvgConsistency = "avg_consistency"
	FieldUserBestWPM        = "best_wpm"
	FieldUserJoinDate       = "join_date"
	FieldUserLastSeen       = "last_seen"
)

// UserKey is the per-user aggregate hash.
func UserKey(username string) string {
	return "user:" + username
}

// UserTestsKey is the per-user bounded list of recent results, newest first.
func UserTestsKey(username string) string {
	return "user:" + username + ":tests"
}

// BoardKey is the sorted set backing one ranked leaderboard.
func BoardKey(board domain.Board) string {
	return "leaderboard:" + string(board)
}

// SessionKey is the ephemeral per-connection session hash.
func SessionKey(connID string) string {
	return "session:" + connID
}

// ProcessHeartbeatKey holds one process's local identified-user count,
// written with a TTL so dead processes age out of the reconcile sweep.
func ProcessHeartbeatKey(procID string) string {
	return "presence:proc:" + procID
}

// ProcessHeartbeatPattern matches all live process heartbeat keys.
const ProcessHeartbeatPattern = "presence:proc:*"
