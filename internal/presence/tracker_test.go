package presence

import (
	"context"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/domain"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/event"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/store"
)

type capturingHub struct {
	mu     sync.Mutex
	events []broadcast
}

type broadcast struct {
	eventType string
	payload   interface{}
}

func (h *capturingHub) Broadcast(eventType string, payload interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, broadcast{eventType, payload})
}

func (h *capturingHub) all() []broadcast {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]broadcast(nil), h.events...)
}

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

type noopToucher struct{}

func (noopToucher) TouchLastSeen(context.Context, string) error { return nil }

func newTestTracker(t *testing.T) (*Tracker, *redis.Client, *capturingHub, *capturingPublisher) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	hub := &capturingHub{}
	pub := &capturingPublisher{}
	return NewTracker(rdb, pub, noopToucher{}, hub), rdb, hub, pub
}

func TestIdentifyAndDisconnectScenario(t *testing.T) {
	tracker, _, _, pub := newTestTracker(t)
	ctx := context.Background()

	tracker.Connect("conn-a")
	tracker.Connect("conn-b")
	tracker.Identify(ctx, "conn-a", "alice")
	tracker.Identify(ctx, "conn-b", "bob")

	assert.Equal(t, 2, tracker.LocalCount())
	assert.Equal(t, []string{"alice", "bob"}, tracker.LocalUsers())

	tracker.Disconnect(ctx, "conn-a")

	assert.Equal(t, 1, tracker.LocalCount())
	assert.Equal(t, []string{"bob"}, tracker.LocalUsers())

	events := pub.all()
	require.Len(t, events, 3)
	offline, ok := events[2].(event.UserOffline)
	require.True(t, ok, "expected UserOffline, got %T", events[2])
	assert.Equal(t, "alice", offline.Username)
	assert.Equal(t, int64(1), offline.OnlineCount)
}

func TestAnonymousConnectionsExcluded(t *testing.T) {
	tracker, _, hub, pub := newTestTracker(t)
	ctx := context.Background()

	tracker.Connect("conn-x")
	tracker.Identify(ctx, "conn-x", "")

	assert.Zero(t, tracker.LocalCount())
	assert.Empty(t, pub.all())
	assert.Empty(t, hub.all())

	// Anonymous typing path is a no-op too.
	tracker.StartTyping(ctx, "conn-x", "3")
	tracker.Progress(ctx, "conn-x", 10, 50, 0)
	assert.Empty(t, pub.all())

	// Anonymous disconnect publishes nothing.
	tracker.Disconnect(ctx, "conn-x")
	assert.Empty(t, pub.all())
}

func TestIdentifyBroadcastsLocalUpdate(t *testing.T) {
	tracker, _, hub, _ := newTestTracker(t)
	ctx := context.Background()

	tracker.Connect("conn-a")
	tracker.Identify(ctx, "conn-a", "alice")

	events := hub.all()
	require.Len(t, events, 1)
	assert.Equal(t, event.ClientOnlineUsers, events[0].eventType)

	payload, ok := events[0].payload.(event.OnlineUsersPayload)
	require.True(t, ok)
	assert.Equal(t, int64(1), payload.Count)
	assert.Equal(t, []string{"alice"}, payload.Users)
}

func TestOnlineCounterIsShared(t *testing.T) {
	tracker, rdb, _, _ := newTestTracker(t)
	ctx := context.Background()

	// Another process already announced two users.
	require.NoError(t, rdb.Set(ctx, store.KeyOnlineCount, 2, 0).Err())

	tracker.Connect("conn-a")
	tracker.Identify(ctx, "conn-a", "alice")

	count, err := rdb.Get(ctx, store.KeyOnlineCount).Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(3), count, "counter is global, not the local set size")
}

func TestCounterFlooredAtZero(t *testing.T) {
	tracker, rdb, _, pub := newTestTracker(t)
	ctx := context.Background()

	tracker.Connect("conn-a")
	tracker.Identify(ctx, "conn-a", "alice")

	// Sweep already corrected the counter below what our decrement expects.
	require.NoError(t, rdb.Set(ctx, store.KeyOnlineCount, 0, 0).Err())

	tracker.Disconnect(ctx, "conn-a")

	count, err := rdb.Get(ctx, store.KeyOnlineCount).Int64()
	require.NoError(t, err)
	assert.Zero(t, count)

	events := pub.all()
	offline, ok := events[len(events)-1].(event.UserOffline)
	require.True(t, ok)
	assert.Zero(t, offline.OnlineCount)
}

func TestTypingLifecycle(t *testing.T) {
	tracker, rdb, _, pub := newTestTracker(t)
	ctx := context.Background()

	tracker.Connect("conn-a")
	tracker.Identify(ctx, "conn-a", "alice")
	tracker.StartTyping(ctx, "conn-a", "2")

	sess, ok := tracker.Session("conn-a")
	require.True(t, ok)
	assert.Equal(t, domain.SessionTyping, sess.Status)
	assert.Equal(t, "2", sess.TextID)
	assert.NotZero(t, sess.StartTime)

	stored, err := rdb.HGetAll(ctx, store.SessionKey("conn-a")).Result()
	require.NoError(t, err)
	assert.Equal(t, "alice", stored["username"])
	assert.Equal(t, "2", stored["textId"])

	tracker.Progress(ctx, "conn-a", 55.5, 87, 3)

	events := pub.all()
	require.Len(t, events, 3)

	start, ok := events[1].(event.TypingStart)
	require.True(t, ok)
	assert.Equal(t, "2", start.TextID)

	progress, ok := events[2].(event.TypingProgress)
	require.True(t, ok)
	assert.Equal(t, 55.5, progress.Progress)
	assert.Equal(t, 3, progress.Errors)

	// Session record is deleted only on disconnect.
	tracker.Disconnect(ctx, "conn-a")
	exists, err := rdb.Exists(ctx, store.SessionKey("conn-a")).Result()
	require.NoError(t, err)
	assert.Zero(t, exists)

	_, ok = tracker.Session("conn-a")
	assert.False(t, ok)
}

func TestReconcileSweep(t *testing.T) {
	tracker, rdb, _, _ := newTestTracker(t)
	ctx := context.Background()

	tracker.Connect("conn-a")
	tracker.Identify(ctx, "conn-a", "alice")

	// A dead process left the counter inflated.
	require.NoError(t, rdb.Set(ctx, store.KeyOnlineCount, 40, 0).Err())
	// A live peer process heartbeats two users.
	require.NoError(t, rdb.Set(ctx, store.ProcessHeartbeatKey("peer"), 2, 0).Err())

	rec := NewReconciler(rdb, tracker)
	rec.Heartbeat(ctx)
	rec.Reconcile(ctx)

	count, err := rdb.Get(ctx, store.KeyOnlineCount).Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(3), count, "sweep rewrites the counter from live heartbeats")
}
