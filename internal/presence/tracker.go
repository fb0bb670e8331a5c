// Package presence owns the per-connection lifecycle of this process's
// realtime clients: Connected -> Identified -> [Typing] -> Disconnected.
// The session table is strictly process-local; only presence *events* and
// the shared online counter cross process boundaries.
package presence

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/domain"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/event"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/logger"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/metrics"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/store"
)

// Broadcaster fans an event out to every client connected to this process.
type Broadcaster interface {
	Broadcast(eventType string, payload interface{})
}

// LastSeenToucher stamps a user's last-seen time on identification.
type LastSeenToucher interface {
	TouchLastSeen(ctx context.Context, username string) error
}

// Tracker tracks sessions and presence for this process.
type Tracker struct {
	rdb       *redis.Client
	publisher event.Publisher
	users     LastSeenToucher
	hub       Broadcaster

	mu       sync.Mutex
	sessions map[string]*domain.SessionRecord
	online   map[string]struct{}
}

// NewTracker creates a new presence tracker.
func NewTracker(rdb *redis.Client, publisher event.Publisher, users LastSeenToucher, hub Broadcaster) *Tracker {
	return &Tracker{
		rdb:       rdb,
		publisher: publisher,
		users:     users,
		hub:       hub,
		sessions:  make(map[string]*domain.SessionRecord),
		online:    make(map[string]struct{}),
	}
}

// Connect allocates a session record for a new connection. The connection
// stays anonymous, excluded from presence counts and the typing path,
// until it identifies.
func (t *Tracker) Connect(connID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sessions[connID] = &domain.SessionRecord{Status: domain.SessionConnected}
}

// Identify attaches a username to a connection, adds it to the local
// presence set, bumps the shared online counter and announces the user.
// An empty username is ignored; the connection stays anonymous.
func (t *Tracker) Identify(ctx context.Context, connID, username string) {
	log := logger.FromContext(ctx)

	if username == "" {
		return
	}

	t.mu.Lock()
	sess, ok := t.sessions[connID]
	if !ok {
		sess = &domain.SessionRecord{}
		t.sessions[connID] = sess
	}
	sess.Username = username
	sess.Status = domain.SessionIdentified
	t.online[username] = struct{}{}
	users := t.localUsersLocked()
	t.mu.Unlock()

	metrics.IdentifiedUsers.Set(float64(len(users)))

	if err := t.users.TouchLastSeen(ctx, username); err != nil {
		log.Warn(LogMsgTouchFailed, "username", username, "error", err)
	}

	count := t.bumpCounter(ctx, +1)

	t.hub.Broadcast(event.ClientOnlineUsers, event.OnlineUsersPayload{
		Count: count,
		Users: users,
	})

	if err := t.publisher.Publish(ctx, event.NewUserOnline(username, count)); err != nil {
		log.Error(LogMsgPublishFailed, "event", event.TypeUserOnline, "error", err)
	}

	log.Info(LogMsgIdentified, "conn_id", connID, "username", username, "online", count)
}

// StartTyping records an advisory typing session and announces it. There
// is no timeout: a session that never finishes leaves no trace beyond the
// record deleted at disconnect.
func (t *Tracker) StartTyping(ctx context.Context, connID, textID string) {
	log := logger.FromContext(ctx)

	t.mu.Lock()
	sess, ok := t.sessions[connID]
	if !ok || sess.Username == "" {
		t.mu.Unlock()
		return
	}
	sess.TextID = textID
	sess.StartTime = time.Now().UnixMilli()
	sess.Status = domain.SessionTyping
	username := sess.Username
	record := *sess
	t.mu.Unlock()

	if err := t.rdb.HSet(ctx, store.SessionKey(connID), map[string]interface{}{
		"username":  record.Username,
		"textId":    record.TextID,
		"startTime": record.StartTime,
		"status":    string(record.Status),
	}).Err(); err != nil {
		log.Warn(LogMsgSessionWriteFailed, "conn_id", connID, "error", err)
	}

	if err := t.publisher.Publish(ctx, event.NewTypingStart(username, textID)); err != nil {
		log.Error(LogMsgPublishFailed, "event", event.TypeTypingStart, "error", err)
	}
}

// Progress relays live typing progress. No state is retained; anonymous
// connections are excluded.
func (t *Tracker) Progress(ctx context.Context, connID string, progress, currentWpm float64, errCount int) {
	log := logger.FromContext(ctx)

	t.mu.Lock()
	sess, ok := t.sessions[connID]
	username := ""
	if ok {
		username = sess.Username
	}
	t.mu.Unlock()

	if username == "" {
		return
	}

	if err := t.publisher.Publish(ctx, event.NewTypingProgress(username, progress, currentWpm, errCount)); err != nil {
		log.Error(LogMsgPublishFailed, "event", event.TypeTypingProgress, "error", err)
	}
}

// Disconnect releases the session. Identified connections leave the local
// presence set, decrement the shared counter and announce the departure;
// the ephemeral session record is deleted either way.
func (t *Tracker) Disconnect(ctx context.Context, connID string) {
	log := logger.FromContext(ctx)

	t.mu.Lock()
	sess, ok := t.sessions[connID]
	if !ok {
		t.mu.Unlock()
		return
	}
	delete(t.sessions, connID)
	username := sess.Username
	identified := username != ""
	if identified {
		delete(t.online, username)
	}
	users := t.localUsersLocked()
	t.mu.Unlock()

	if err := t.rdb.Del(ctx, store.SessionKey(connID)).Err(); err != nil {
		log.Warn(LogMsgSessionDeleteFailed, "conn_id", connID, "error", err)
	}

	if !identified {
		return
	}

	metrics.IdentifiedUsers.Set(float64(len(users)))

	count := t.bumpCounter(ctx, -1)

	t.hub.Broadcast(event.ClientOnlineUsers, event.OnlineUsersPayload{
		Count: count,
		Users: users,
	})

	if err := t.publisher.Publish(ctx, event.NewUserOffline(username, count)); err != nil {
		log.Error(LogMsgPublishFailed, "event", event.TypeUserOffline, "error", err)
	}

	log.Info(LogMsgDisconnected, "conn_id", connID, "username", username, "online", count)
}

// LocalCount is the number of identified users on this process.
func (t *Tracker) LocalCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.online)
}

// LocalUsers lists the identified users on this process, sorted.
func (t *Tracker) LocalUsers() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.localUsersLocked()
}

func (t *Tracker) localUsersLocked() []string {
	users := make([]string, 0, len(t.online))
	for u := range t.online {
		users = append(users, u)
	}
	sort.Strings(users)
	return users
}

// Session returns a copy of the session record for a connection.
func (t *Tracker) Session(connID string) (domain.SessionRecord, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	sess, ok := t.sessions[connID]
	if !ok {
		return domain.SessionRecord{}, false
	}
	return *sess, true
}

// bumpCounter adjusts the shared online counter, flooring at zero. The
// floor absorbs decrements that outrun the reconcile sweep after an
// unclean process death elsewhere.
func (t *Tracker) bumpCounter(ctx context.Context, delta int64) int64 {
	log := logger.FromContext(ctx)

	count, err := t.rdb.IncrBy(ctx, store.KeyOnlineCount, delta).Result()
	if err != nil {
		log.Error(LogMsgCounterFailed, "error", err)
		return int64(t.LocalCount())
	}
	if count < 0 {
		if err := t.rdb.Set(ctx, store.KeyOnlineCount, 0, 0).Err(); err != nil {
			log.Error(LogMsgCounterFailed, "error", err)
		}
		count = 0
	}
	return count
}
