package leaderboard

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/domain"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/logger"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/store"
)

// Service defines the interface for ranked leaderboard operations.
//
// Scores are stored at full precision; rounding to two decimals happens
// only on the way out. Equal scores are ordered by username (reverse
// lexical), so tie order is deterministic and stable within a snapshot.
type Service interface {
	Update(ctx context.Context, board domain.Board, username string, score float64) error
	TopN(ctx context.Context, board domain.Board, n int64) ([]domain.LeaderboardEntry, error)
	TopNWithUserMeta(ctx context.Context, board domain.Board, n int64) ([]domain.LeaderboardEntryDetailed, error)
}

type service struct {
	rdb *redis.Client
}

// NewService creates a new leaderboard service
func NewService(rdb *redis.Client) Service {
	return &service{rdb: rdb}
}

// Update upserts a user's score on a board. NaN and negative infinity are
// rejected, never clamped: a rolling average can only produce them from
// corrupt input, and writing one would poison the board's ordering.
func (s *service) Update(ctx context.Context, board domain.Board, username string, score float64) error {
	if math.IsNaN(score) || math.IsInf(score, -1) {
		return fmt.Errorf("%w: %s=%f for %q", domain.ErrInvalidScore, board, score, username)
	}

	if err := s.rdb.ZAdd(ctx, store.BoardKey(board), redis.Z{Score: score, Member: username}).Err(); err != nil {
		return fmt.Errorf(ErrMsgUpdateFailed, board, err)
	}
	return nil
}

// TopN returns up to n ranked entries, rank 1 first, descending by score.
func (s *service) TopN(ctx context.Context, board domain.Board, n int64) ([]domain.LeaderboardEntry, error) {
	if n <= 0 {
		n = DefaultLimit
	}

	rows, err := s.rdb.ZRevRangeWithScores(ctx, store.BoardKey(board), 0, n-1).Result()
	if err != nil {
		return nil, fmt.Errorf(ErrMsgTopNFailed, board, err)
	}

	entries := make([]domain.LeaderboardEntry, 0, len(rows))
	for i, row := range rows {
		username, _ := row.Member.(string)
		entries = append(entries, domain.LeaderboardEntry{
			Rank:     i + 1,
			Username: username,
			Score:    roundScore(row.Score),
		})
	}
	return entries, nil
}

// TopNWithUserMeta joins each ranked row with the user's aggregate fields.
// A ranked user without a stored aggregate yields zero-valued fields
// rather than an error; only submitters are ranked, so in practice the
// aggregate exists.
func (s *service) TopNWithUserMeta(ctx context.Context, board domain.Board, n int64) ([]domain.LeaderboardEntryDetailed, error) {
	log := logger.FromContext(ctx)

	base, err := s.TopN(ctx, board, n)
	if err != nil {
		return nil, err
	}

	detailed := make([]domain.LeaderboardEntryDetailed, 0, len(base))
	for _, entry := range base {
		row := domain.LeaderboardEntryDetailed{LeaderboardEntry: entry}

		userData, err := s.rdb.HGetAll(ctx, store.UserKey(entry.Username)).Result()
		if err != nil {
			log.Warn(LogMsgMetaLookupFailed, "username", entry.Username, "error", err)
		} else if len(userData) > 0 {
			row.TotalTests, _ = strconv.Atoi(userData[store.FieldUserTotalTests])
			row.AvgAccuracy, _ = strconv.ParseFloat(userData[store.FieldUserAvgAccuracy], 64)
			row.LastSeen = userData[store.FieldUserLastSeen]
		}

		detailed = append(detailed, row)
	}
	return detailed, nil
}

// roundScore rounds to two decimals for presentation only.
func roundScore(s float64) float64 {
	return math.Round(s*100) / 100
}
