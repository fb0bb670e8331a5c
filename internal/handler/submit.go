package handler

import (
	"net/http"
	"time"

	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/domain"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/event"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/logger"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/metrics"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/stats"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/user"
)

// SubmitResultRequest is one completed typing test offered for recording.
type SubmitResultRequest struct {
	Username      string        `json:"username" validate:"required,max=100"`
	Wpm           float64       `json:"wpm" validate:"gte=0"`
	RawWpm        float64       `json:"rawWpm" validate:"gte=0"`
	Accuracy      float64       `json:"accuracy" validate:"gte=0,lte=100"`
	Consistency   float64       `json:"consistency" validate:"gte=0,lte=100"`
	TimeSpent     float64       `json:"timeSpent" validate:"gte=0"`
	TextID        string        `json:"textId"`
	ErrorCount    int           `json:"errorCount" validate:"gte=0"`
	Timestamp     string        `json:"timestamp"`
	KeystrokeData []interface{} `json:"keystrokeData,omitempty"`
}

// SubmitResultResponse carries the post-submission global snapshot back to
// the submitting client.
type SubmitResultResponse struct {
	Message string             `json:"message"`
	Stats   domain.GlobalStats `json:"stats"`
}

// HandleSubmitResult records one completed test: per-user aggregates and
// boards first, then the global counters, then the cross-process
// announcement. The user write is authoritative; a failure after it leaves
// the already-applied pieces in place and is reported to the client.
func HandleSubmitResult(users user.Service, globals stats.Service, publisher event.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req SubmitResultRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Submit result"); err != nil {
			return
		}

		result := domain.TestResult{
			Wpm:           req.Wpm,
			RawWpm:        req.RawWpm,
			Accuracy:      req.Accuracy,
			Consistency:   req.Consistency,
			TimeSpent:     req.TimeSpent,
			TextID:        req.TextID,
			ErrorCount:    req.ErrorCount,
			Timestamp:     req.Timestamp,
			KeystrokeData: req.KeystrokeData,
		}
		if result.Timestamp == "" {
			result.Timestamp = time.Now().UTC().Format(time.RFC3339)
		}

		if err := users.RecordResult(r.Context(), req.Username, result); err != nil {
			respondServiceError(w, log, "Record user result", err)
			return
		}

		snapshot, err := globals.RecordResult(r.Context(), result, req.Username)
		if err != nil {
			// The user-side write already landed; say so in the log before
			// reporting the failure.
			log.Error(LogMsgPartialSubmit, "username", req.Username, "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgSubmitResultFailed)
			return
		}

		if err := publisher.Publish(r.Context(), event.NewTestCompleted(req.Username, result)); err != nil {
			// Stored state is complete; only the announcement was lost.
			log.Error(LogMsgAnnounceFailed, "username", req.Username, "error", err)
		}

		metrics.TestsSubmitted.Inc()

		log.Info(LogMsgResultSubmitted,
			"username", req.Username,
			"wpm", req.Wpm,
			"accuracy", req.Accuracy,
			"total_tests", snapshot.TotalTests)

		respondJSON(w, http.StatusOK, SubmitResultResponse{
			Message: MsgResultRecorded,
			Stats:   snapshot,
		})
	}
}

// Log and response messages for the submit path.
const (
	MsgResultRecorded     = "Test result recorded"
	LogMsgPartialSubmit   = "Global counters failed after user write"
	LogMsgAnnounceFailed  = "Failed to announce completed test"
	LogMsgResultSubmitted = "Test result submitted"
)
