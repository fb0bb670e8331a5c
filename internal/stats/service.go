package stats

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/domain"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/event"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/logger"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/store"
)

// Service defines the interface for global aggregate operations.
type Service interface {
	RecordResult(ctx context.Context, result domain.TestResult, username string) (domain.GlobalStats, error)
	GetGlobalStats(ctx context.Context) (domain.GlobalStats, error)
}

// service implements the Service interface
type service struct {
	rdb       *redis.Client
	publisher event.Publisher
}

// NewService creates a new stats service
func NewService(rdb *redis.Client, publisher event.Publisher) Service {
	return &service{rdb: rdb, publisher: publisher}
}

// RecordResult folds one result into the global counters and publishes the
// fresh snapshot. The counters are updated with per-field atomic
// increments, so concurrent submissions from any number of processes
// never lose an update; each caller's increment result is its own
// consistent view of the totals. The denormalized snapshot keys are
// last-writer-wins, which converges to the newest increment's values.
func (s *service) RecordResult(ctx context.Context, result domain.TestResult, username string) (domain.GlobalStats, error) {
	log := logger.FromContext(ctx)

	if err := s.rdb.SAdd(ctx, store.KeyUsersAll, username).Err(); err != nil {
		return domain.GlobalStats{}, fmt.Errorf(ErrMsgTrackUserFailed, err)
	}

	totalUsers, err := s.rdb.SCard(ctx, store.KeyUsersAll).Result()
	if err != nil {
		return domain.GlobalStats{}, fmt.Errorf(ErrMsgCountUsersFailed, err)
	}

	pipe := s.rdb.TxPipeline()
	testsCmd := pipe.HIncrBy(ctx, store.KeyGlobalStats, store.FieldTotalTests, 1)
	wpmCmd := pipe.HIncrByFloat(ctx, store.KeyGlobalStats, store.FieldTotalWPM, result.Wpm)
	accCmd := pipe.HIncrByFloat(ctx, store.KeyGlobalStats, store.FieldTotalAccuracy, result.Accuracy)
	if _, err := pipe.Exec(ctx); err != nil {
		return domain.GlobalStats{}, fmt.Errorf(ErrMsgIncrementFailed, err)
	}

	totalTests := testsCmd.Val()
	snapshot := domain.GlobalStats{
		TotalTests:      totalTests,
		TotalUsers:      totalUsers,
		AverageWPM:      round2(wpmCmd.Val() / float64(totalTests)),
		AverageAccuracy: round2(accCmd.Val() / float64(totalTests)),
	}

	// Denormalized snapshot for cheap reads.
	write := s.rdb.Pipeline()
	write.Set(ctx, store.KeyTotalTests, totalTests, 0)
	write.Set(ctx, store.KeyTotalUsers, totalUsers, 0)
	write.Set(ctx, store.KeyAvgWPM, wpmCmd.Val()/float64(totalTests), 0)
	write.Set(ctx, store.KeyAvgAccuracy, accCmd.Val()/float64(totalTests), 0)
	if _, err := write.Exec(ctx); err != nil {
		return domain.GlobalStats{}, fmt.Errorf(ErrMsgSnapshotWriteFailed, err)
	}

	if err := s.publisher.Publish(ctx, event.NewStatsUpdate(snapshot)); err != nil {
		// Counters are already consistent; only the broadcast was lost.
		log.Error(LogMsgPublishFailed, "error", err)
	}

	log.Debug(LogMsgStatsRecorded,
		"username", username,
		"total_tests", snapshot.TotalTests,
		"total_users", snapshot.TotalUsers)

	return snapshot, nil
}

// GetGlobalStats reads the denormalized snapshot. Missing keys read as
// zero, so a fresh store reports an empty but valid snapshot.
func (s *service) GetGlobalStats(ctx context.Context) (domain.GlobalStats, error) {
	values, err := s.rdb.MGet(ctx,
		store.KeyTotalTests,
		store.KeyTotalUsers,
		store.KeyAvgWPM,
		store.KeyAvgAccuracy,
	).Result()
	if err != nil {
		return domain.GlobalStats{}, fmt.Errorf(ErrMsgSnapshotReadFailed, err)
	}

	return domain.GlobalStats{
		TotalTests:      parseInt(values[0]),
		TotalUsers:      parseInt(values[1]),
		AverageWPM:      round2(parseFloat(values[2])),
		AverageAccuracy: round2(parseFloat(values[3])),
	}, nil
}

func parseInt(v interface{}) int64 {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}

func parseFloat(v interface{}) float64 {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

// round2 rounds to two decimals for presentation.
func round2(f float64) float64 {
	if math.IsNaN(f) {
		return 0
	}
	return math.Round(f*100) / 100
}
