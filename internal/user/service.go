package user

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/domain"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/leaderboard"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/logger"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/store"
)

// Service defines the interface for per-user aggregate operations.
type Service interface {
	RecordResult(ctx context.Context, username string, result domain.TestResult) error
	GetProfile(ctx context.Context, username string) (*domain.UserProfile, error)
	TouchLastSeen(ctx context.Context, username string) error
}

// service implements the Service interface
type service struct {
	rdb    *redis.Client
	boards leaderboard.Service
}

// NewService creates a new user service
func NewService(rdb *redis.Client, boards leaderboard.Service) Service {
	return &service{rdb: rdb, boards: boards}
}

// RecordResult appends a result to the user's recent list, folds it into
// the rolling averages and pushes the new averages onto the three ranked
// boards. Averages use the online-mean update
// (oldAvg*oldCount + v) / (oldCount+1), so no historical results are
// re-read. One client per username is the operating assumption; writes
// for different usernames are independent and take no cross-user lock.
func (s *service) RecordResult(ctx context.Context, username string, result domain.TestResult) error {
	log := logger.FromContext(ctx)

	if username == "" {
		return fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf(ErrMsgEncodeResultFailed, err)
	}

	userData, err := s.rdb.HGetAll(ctx, store.UserKey(username)).Result()
	if err != nil {
		return fmt.Errorf(ErrMsgReadAggregateFailed, err)
	}

	oldCount, _ := strconv.Atoi(userData[store.FieldUserTotalTests])
	oldAvgWPM, _ := strconv.ParseFloat(userData[store.FieldUserAvgWPM], 64)
	oldAvgAccuracy, _ := strconv.ParseFloat(userData[store.FieldUserAvgAccuracy], 64)
	oldAvgConsistency, _ := strconv.ParseFloat(userData[store.FieldUserAvgConsistency], 64)
	oldBestWPM, _ := strconv.ParseFloat(userData[store.FieldUserBestWPM], 64)

	newCount := oldCount + 1
	newAvgWPM := onlineMean(oldAvgWPM, oldCount, result.Wpm)
	newAvgAccuracy := onlineMean(oldAvgAccuracy, oldCount, result.Accuracy)
	newAvgConsistency := onlineMean(oldAvgConsistency, oldCount, result.Consistency)
	newBestWPM := math.Max(oldBestWPM, result.Wpm)

	joinDate := userData[store.FieldUserJoinDate]
	if joinDate == "" {
		joinDate = result.Timestamp
	}

	// One batched write: result list push+trim, aggregate hash, boards.
	pipe := s.rdb.Pipeline()
	pipe.LPush(ctx, store.UserTestsKey(username), raw)
	pipe.LTrim(ctx, store.UserTestsKey(username), 0, domain.MaxStoredResults-1)
	pipe.HSet(ctx, store.UserKey(username), map[string]interface{}{
		store.FieldUserTotalTests:     newCount,
		store.FieldUserAvgWPM:         newAvgWPM,
		store.FieldUserAvgAccuracy:    newAvgAccuracy,
		store.FieldUserAvgConsistency: newAvgConsistency,
		store.FieldUserBestWPM:        newBestWPM,
		store.FieldUserLastSeen:       result.Timestamp,
		store.FieldUserJoinDate:       joinDate,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf(ErrMsgWriteAggregateFailed, err)
	}

	for board, score := range map[domain.Board]float64{
		domain.BoardWPM:         newAvgWPM,
		domain.BoardAccuracy:    newAvgAccuracy,
		domain.BoardConsistency: newAvgConsistency,
	} {
		if err := s.boards.Update(ctx, board, username, score); err != nil {
			return fmt.Errorf(ErrMsgBoardUpdateFailed, board, err)
		}
	}

	log.Debug(LogMsgResultRecorded,
		"username", username,
		"total_tests", newCount,
		"avg_wpm", newAvgWPM,
		"best_wpm", newBestWPM)

	return nil
}

// GetProfile returns the user's aggregate plus their most recent results.
// A user with no stored aggregate yields ErrUserNotFound; a zero-test
// aggregate is never persisted, so the two cases cannot be confused.
func (s *service) GetProfile(ctx context.Context, username string) (*domain.UserProfile, error) {
	log := logger.FromContext(ctx)

	userData, err := s.rdb.HGetAll(ctx, store.UserKey(username)).Result()
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadAggregateFailed, err)
	}
	if len(userData) == 0 {
		return nil, domain.ErrUserNotFound
	}

	raws, err := s.rdb.LRange(ctx, store.UserTestsKey(username), 0, domain.RecentResultsLimit-1).Result()
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadResultsFailed, err)
	}

	recent := make([]domain.TestResult, 0, len(raws))
	for _, raw := range raws {
		var result domain.TestResult
		if err := json.Unmarshal([]byte(raw), &result); err != nil {
			log.Warn(LogMsgSkippedCorruptResult, "username", username, "error", err)
			continue
		}
		recent = append(recent, result)
	}

	profile := &domain.UserProfile{
		Username:    username,
		JoinDate:    userData[store.FieldUserJoinDate],
		LastSeen:    userData[store.FieldUserLastSeen],
		RecentTests: recent,
	}
	profile.TotalTests, _ = strconv.Atoi(userData[store.FieldUserTotalTests])
	profile.BestWPM, _ = strconv.ParseFloat(userData[store.FieldUserBestWPM], 64)
	profile.AvgWPM, _ = strconv.ParseFloat(userData[store.FieldUserAvgWPM], 64)
	profile.AvgAccuracy, _ = strconv.ParseFloat(userData[store.FieldUserAvgAccuracy], 64)
	profile.AvgConsistency, _ = strconv.ParseFloat(userData[store.FieldUserAvgConsistency], 64)

	return profile, nil
}

// TouchLastSeen stamps the user's last_seen field with the given moment.
// Used by the presence path when a user identifies; it must not create an
// aggregate for a user who never submitted, so it only writes when the
// hash already exists.
func (s *service) TouchLastSeen(ctx context.Context, username string) error {
	exists, err := s.rdb.Exists(ctx, store.UserKey(username)).Result()
	if err != nil {
		return fmt.Errorf(ErrMsgReadAggregateFailed, err)
	}
	if exists == 0 {
		return nil
	}

	if err := s.rdb.HSet(ctx, store.UserKey(username), store.FieldUserLastSeen, nowISO()).Err(); err != nil {
		return fmt.Errorf(ErrMsgWriteAggregateFailed, err)
	}
	return nil
}

// onlineMean folds one new sample into a rolling arithmetic mean.
func onlineMean(oldAvg float64, oldCount int, value float64) float64 {
	return (oldAvg*float64(oldCount) + value) / float64(oldCount+1)
}
