package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/logger"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/user"
)

// HandleGetUserProfile serves one user's aggregate plus recent results.
// Usernames are case-sensitive, matching the submitted spelling exactly.
func HandleGetUserProfile(svc user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		username := chi.URLParam(r, "username")
		if username == "" {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestSummary)
			return
		}

		profile, err := svc.GetProfile(r.Context(), username)
		if err != nil {
			respondServiceError(w, log, "Get user profile", err)
			return
		}

		respondJSON(w, http.StatusOK, profile)
	}
}
