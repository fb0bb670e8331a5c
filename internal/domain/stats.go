package domain

// GlobalStats is the process-wide aggregate snapshot. Averages are derived
// from running sums at write time and rounded to two decimals for
// presentation; the underlying sums keep full precision.
type GlobalStats struct {
	TotalTests      int64   `json:"totalTests"`
	TotalUsers      int64   `json:"totalUsers"`
	AverageWPM      float64 `json:"averageWPM"`
	AverageAccuracy float64 `json:"averageAccuracy"`
}

// UserProfile is the aggregate view of a single user plus their most
// recent results. A profile with TotalTests == 0 is never persisted;
// lookups for unknown users return ErrUserNotFound instead.
type UserProfile struct {
	Username       string       `json:"username"`
	TotalTests     int          `json:"totalTests"`
	BestWPM        float64      `json:"bestWPM"`
	AvgWPM         float64      `json:"avgWPM"`
	AvgAccuracy    float64      `json:"avgAccuracy"`
	AvgConsistency float64      `json:"avgConsistency"`
	JoinDate       string       `json:"joinDate"`
	LastSeen       string       `json:"lastSeen"`
	RecentTests    []TestResult `json:"recentTests"`
}
