package handler

import (
	"net/http"
	"strconv"

	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/domain"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/leaderboard"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/logger"
)

// MaxLeaderboardLimit caps how many ranked rows one query may request.
const MaxLeaderboardLimit = 100

// HandleGetLeaderboard serves one ranked board joined with user metadata.
// Query parameters: type (wpm|accuracy|consistency, default wpm) and
// limit (default 10, capped).
func HandleGetLeaderboard(svc leaderboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		board := domain.ParseBoard(r.URL.Query().Get("type"))

		limit, err := strconv.ParseInt(GetOptionalQueryParam(r, "limit", strconv.Itoa(leaderboard.DefaultLimit)), 10, 64)
		if err != nil || limit <= 0 {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
			return
		}
		if limit > MaxLeaderboardLimit {
			limit = MaxLeaderboardLimit
		}

		entries, err := svc.TopNWithUserMeta(r.Context(), board, limit)
		if err != nil {
			respondServiceError(w, log, "Get leaderboard", err)
			return
		}

		respondJSON(w, http.StatusOK, domain.Leaderboard{Type: board, Entries: entries})
	}
}
