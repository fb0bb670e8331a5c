package domain

// TestResult is a single completed typing test as submitted by a client.
// Results are append-only; per user only the most recent MaxStoredResults
// are retained in the store.
type TestResult struct {
	Wpm           float64       `json:"wpm"`
	RawWpm        float64       `json:"rawWpm"`
	Accuracy      float64       `json:"accuracy"`
	Consistency   float64       `json:"consistency"`
	TimeSpent     float64       `json:"timeSpent"`
	TextID        string        `json:"textId"`
	ErrorCount    int           `json:"errorCount"`
	Timestamp     string        `json:"timestamp"`
	KeystrokeData []interface{} `json:"keystrokeData,omitempty"`
}

// MaxStoredResults is the per-user cap on retained test results. Older
// entries are evicted silently (ring-buffer semantics).
const MaxStoredResults = 100

// RecentResultsLimit is how many results a profile query returns.
const RecentResultsLimit = 10
