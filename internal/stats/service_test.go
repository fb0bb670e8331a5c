package stats

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/domain"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/event"
)

// capturingPublisher records published events for assertions.
type capturingPublisher struct {
	mu     sync.Mutex
	events []interface{}
}

func (p *capturingPublisher) Publish(_ context.Context, evt interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

func (p *capturingPublisher) all() []interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]interface{}(nil), p.events...)
}

func newTestService(t *testing.T) (Service, *redis.Client, *capturingPublisher) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	pub := &capturingPublisher{}
	return NewService(rdb, pub), rdb, pub
}

func TestRecordResultFreshStore(t *testing.T) {
	svc, _, pub := newTestService(t)
	ctx := context.Background()

	snapshot, err := svc.RecordResult(ctx, domain.TestResult{Wpm: 80, Accuracy: 95}, "alice")
	require.NoError(t, err)

	assert.Equal(t, int64(1), snapshot.TotalTests)
	assert.Equal(t, int64(1), snapshot.TotalUsers)
	assert.Equal(t, 80.0, snapshot.AverageWPM)
	assert.Equal(t, 95.0, snapshot.AverageAccuracy)

	events := pub.all()
	require.Len(t, events, 1)
	update, ok := events[0].(event.StatsUpdate)
	require.True(t, ok, "expected StatsUpdate, got %T", events[0])
	assert.Equal(t, snapshot, update.Payload)
}

func TestRecordResultAveragesAcrossUsers(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.RecordResult(ctx, domain.TestResult{Wpm: 80, Accuracy: 90}, "alice")
	require.NoError(t, err)
	_, err = svc.RecordResult(ctx, domain.TestResult{Wpm: 100, Accuracy: 96}, "bob")
	require.NoError(t, err)
	snapshot, err := svc.RecordResult(ctx, domain.TestResult{Wpm: 90, Accuracy: 99}, "alice")
	require.NoError(t, err)

	assert.Equal(t, int64(3), snapshot.TotalTests)
	assert.Equal(t, int64(2), snapshot.TotalUsers, "distinct-user add is idempotent")
	assert.Equal(t, 90.0, snapshot.AverageWPM)
	assert.Equal(t, 95.0, snapshot.AverageAccuracy)
}

func TestGetGlobalStatsEmpty(t *testing.T) {
	svc, _, _ := newTestService(t)

	snapshot, err := svc.GetGlobalStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.GlobalStats{}, snapshot, "zero-valued snapshot, averages 0 when totalTests is 0")
}

func TestGetGlobalStatsMatchesLastRecord(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	want, err := svc.RecordResult(ctx, domain.TestResult{Wpm: 77.77, Accuracy: 91.23}, "alice")
	require.NoError(t, err)

	got, err := svc.GetGlobalStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRecordResultPublishFailureDoesNotFail(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	svc := NewService(rdb, failingPublisher{})

	snapshot, err := svc.RecordResult(context.Background(), domain.TestResult{Wpm: 60, Accuracy: 80}, "alice")
	require.NoError(t, err, "a lost broadcast must not fail the submission")
	assert.Equal(t, int64(1), snapshot.TotalTests)
}

type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, interface{}) error {
	return context.DeadlineExceeded
}

func TestRecordResultPublishesPromptly(t *testing.T) {
	// Guard against accidental buffering: the event must be observable
	// immediately after RecordResult returns.
	svc, _, pub := newTestService(t)

	_, err := svc.RecordResult(context.Background(), domain.TestResult{Wpm: 50, Accuracy: 70}, "alice")
	require.NoError(t, err)

	deadline := time.Now().Add(time.Second)
	for len(pub.all()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	assert.NotEmpty(t, pub.all())
}
