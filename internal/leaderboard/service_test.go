package leaderboard

import (
	"context"
	"math"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/domain"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/store"
)

func newTestService(t *testing.T) (Service, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewService(rdb), rdb
}

func TestUpdateAndTopN(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Update(ctx, domain.BoardWPM, "alice", 90))
	require.NoError(t, svc.Update(ctx, domain.BoardWPM, "bob", 110.456))
	require.NoError(t, svc.Update(ctx, domain.BoardWPM, "carol", 70))

	entries, err := svc.TopN(ctx, domain.BoardWPM, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, domain.LeaderboardEntry{Rank: 1, Username: "bob", Score: 110.46}, entries[0])
	assert.Equal(t, "alice", entries[1].Username)
	assert.Equal(t, "carol", entries[2].Username)
}

func TestUpdateUpserts(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Update(ctx, domain.BoardAccuracy, "alice", 80))
	require.NoError(t, svc.Update(ctx, domain.BoardAccuracy, "alice", 95))

	entries, err := svc.TopN(ctx, domain.BoardAccuracy, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 95.0, entries[0].Score)
}

func TestUpdateRejectsInvalidScores(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	err := svc.Update(ctx, domain.BoardWPM, "alice", math.NaN())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidScore)

	err = svc.Update(ctx, domain.BoardWPM, "alice", math.Inf(-1))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidScore)

	// Nothing was written.
	entries, err := svc.TopN(ctx, domain.BoardWPM, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestTopNIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, u := range []string{"a", "b", "c", "d"} {
		require.NoError(t, svc.Update(ctx, domain.BoardConsistency, u, float64(len(u))+50))
	}

	first, err := svc.TopN(ctx, domain.BoardConsistency, 3)
	require.NoError(t, err)
	second, err := svc.TopN(ctx, domain.BoardConsistency, 3)
	require.NoError(t, err)

	assert.Equal(t, first, second, "topN must be stable with no intervening writes")
	assert.Len(t, first, 3, "bounded query")
}

func TestTopNStrictlyDescending(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	scores := map[string]float64{"u1": 55, "u2": 91.3, "u3": 91.3, "u4": 12, "u5": 77}
	for u, score := range scores {
		require.NoError(t, svc.Update(ctx, domain.BoardWPM, u, score))
	}

	entries, err := svc.TopN(ctx, domain.BoardWPM, 10)
	require.NoError(t, err)
	require.Len(t, entries, 5)

	for i := 1; i < len(entries); i++ {
		assert.GreaterOrEqual(t, entries[i-1].Score, entries[i].Score)
		assert.Equal(t, i+1, entries[i].Rank)
	}

	// Tied scores order by username, reverse lexical under descending range.
	assert.Equal(t, "u3", entries[0].Username)
	assert.Equal(t, "u2", entries[1].Username)
}

func TestTopNWithUserMeta(t *testing.T) {
	svc, rdb := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Update(ctx, domain.BoardWPM, "alice", 88))
	require.NoError(t, svc.Update(ctx, domain.BoardWPM, "ghost", 66))

	require.NoError(t, rdb.HSet(ctx, store.UserKey("alice"), map[string]interface{}{
		store.FieldUserTotalTests:  "7",
		store.FieldUserAvgAccuracy: "96.5",
		store.FieldUserLastSeen:    "2025-06-01T10:00:00Z",
	}).Err())

	entries, err := svc.TopNWithUserMeta(ctx, domain.BoardWPM, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, 7, entries[0].TotalTests)
	assert.Equal(t, 96.5, entries[0].AvgAccuracy)
	assert.Equal(t, "2025-06-01T10:00:00Z", entries[0].LastSeen)

	// Board entry without an aggregate yields zero-valued meta, not an error.
	assert.Equal(t, "ghost", entries[1].Username)
	assert.Zero(t, entries[1].TotalTests)
	assert.Zero(t, entries[1].AvgAccuracy)
	assert.Empty(t, entries[1].LastSeen)
}

func TestTopNDefaultLimit(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		require.NoError(t, svc.Update(ctx, domain.BoardWPM, string(rune('a'+i)), float64(i)))
	}

	entries, err := svc.TopN(ctx, domain.BoardWPM, 0)
	require.NoError(t, err)
	assert.Len(t, entries, DefaultLimit)
}
