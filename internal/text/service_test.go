package text

import (
	"context"
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

func TestInitializeThenAlwaysReturns(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.InitializeTexts(ctx))

	// After seeding, every request succeeds.
	for i := 0; i < 20; i++ {
		text, err := svc.GetRandomText(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, text.ID)
		assert.NotEmpty(t, text.Text)
		assert.Equal(t, len(text.Text), text.Length)
	}
}

func TestInitializeIsIdempotent(t *testing.T) {
	svc, rdb := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.InitializeTexts(ctx))

	// A second process overwrites nothing, even a modified prompt.
	require.NoError(t, rdb.HSet(ctx, store.KeyTexts, "0", "edited prompt").Err())
	require.NoError(t, svc.InitializeTexts(ctx))

	body, err := rdb.HGet(ctx, store.KeyTexts, "0").Result()
	require.NoError(t, err)
	assert.Equal(t, "edited prompt", body)
}

func TestRandomTextCoversWholeSet(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.InitializeTexts(ctx))

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		text, err := svc.GetRandomText(ctx)
		require.NoError(t, err)
		seen[text.ID] = true
	}
	assert.Len(t, seen, len(seedTexts), "uniform pick should hit every prompt")
}

func TestUnseededStoreReturnsError(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetRandomText(context.Background())
	assert.ErrorIs(t, err, domain.ErrTextsNotSeeded)
}

func TestCachedReadSurvivesStoreEdit(t *testing.T) {
	svc, rdb := newTestService(t)
	ctx := context.Background()

	require.NoError(t, rdb.HSet(ctx, store.KeyTexts, "7", "only prompt").Err())

	first, err := svc.GetRandomText(ctx)
	require.NoError(t, err)
	require.Equal(t, "only prompt", first.Text)

	// The cache serves the prompt body even after a store-side edit.
	require.NoError(t, rdb.HSet(ctx, store.KeyTexts, "7", "changed behind our back").Err())

	second, err := svc.GetRandomText(ctx)
	require.NoError(t, err)
	assert.Equal(t, "only prompt", second.Text)
}
