package handler

import (
	"net/http"

	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/logger"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/text"
)

// HandleGetRandomText serves one randomly chosen typing prompt.
func HandleGetRandomText(svc text.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		prompt, err := svc.GetRandomText(r.Context())
		if err != nil {
			respondServiceError(w, log, "Get random text", err)
			return
		}

		respondJSON(w, http.StatusOK, prompt)
	}
}
