package handler

import (
	"net/http"

	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/logger"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/stats"
)

// HandleGetGlobalStats serves the global aggregate snapshot.
func HandleGetGlobalStats(svc stats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		snapshot, err := svc.GetGlobalStats(r.Context())
		if err != nil {
			respondServiceError(w, log, "Get global stats", err)
			return
		}

		respondJSON(w, http.StatusOK, snapshot)
	}
}
