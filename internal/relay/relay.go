// Package relay is the fan-in/fan-out bridge between the shared pub/sub
// channel and this process's connected clients. Exactly one subscriber
// runs per process; every domain event, wherever it was published, passes
// through here on its way to local viewers.
package relay

import (
	"context"
	"errors"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/domain"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/event"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/logger"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/metrics"
)

// Broadcaster fans an event out to every locally connected client.
type Broadcaster interface {
	Broadcast(eventType string, payload interface{})
}

// BoardReader answers the top-N queries used for leaderboard refreshes.
type BoardReader interface {
	TopN(ctx context.Context, board domain.Board, n int64) ([]domain.LeaderboardEntry, error)
}

// Relay subscribes to the shared channel and dispatches events locally.
type Relay struct {
	rdb    *redis.Client
	hub    Broadcaster
	boards BoardReader

	pubsub *redis.PubSub
	wg     sync.WaitGroup
}

// New creates a relay. Call Start to begin consuming.
func New(rdb *redis.Client, hub Broadcaster, boards BoardReader) *Relay {
	return &Relay{rdb: rdb, hub: hub, boards: boards}
}

// Start subscribes to the shared channel and launches the consume loop.
func (r *Relay) Start(ctx context.Context) {
	r.pubsub = r.rdb.Subscribe(ctx, event.Channel)

	r.wg.Add(1)
	go r.run(ctx)
}

// Stop closes the subscription and waits for the consume loop to drain.
func (r *Relay) Stop() {
	if r.pubsub != nil {
		_ = r.pubsub.Close()
	}
	r.wg.Wait()
}

func (r *Relay) run(ctx context.Context) {
	defer r.wg.Done()

	for msg := range r.pubsub.Channel() {
		r.Dispatch(ctx, []byte(msg.Payload))
	}
}

// Dispatch decodes one payload from the shared channel and fans it out.
// Malformed payloads and unknown tags are logged and dropped; neither may
// crash the relay nor block delivery of subsequent events.
func (r *Relay) Dispatch(ctx context.Context, payload []byte) {
	log := logger.FromContext(ctx)

	decoded, err := event.Decode(payload)
	if err != nil {
		switch {
		case errors.Is(err, event.ErrUnknownType):
			metrics.EventsDropped.WithLabelValues(DropReasonUnknown).Inc()
			log.Debug(LogMsgUnknownEvent, "error", err)
		default:
			metrics.EventsDropped.WithLabelValues(DropReasonMalformed).Inc()
			log.Warn(LogMsgMalformedEvent, "error", err)
		}
		return
	}

	switch evt := decoded.(type) {
	case event.TestCompleted:
		metrics.EventsReceived.WithLabelValues(string(event.TypeTestCompleted)).Inc()
		r.hub.Broadcast(event.ClientTestCompletion, event.TestCompletionPayload{
			Username: evt.Username,
			Result:   evt.Result,
		})
		// Every viewer's leaderboards must reflect the just-applied
		// update no matter which process stored it; the ranked sets are
		// shared, so a local query sees the fresh state.
		r.refreshLeaderboards(ctx)

	case event.UserOnline:
		metrics.EventsReceived.WithLabelValues(string(event.TypeUserOnline)).Inc()
		r.hub.Broadcast(event.ClientOnlineUsers, event.OnlineUsersPayload{Count: evt.OnlineCount})

	case event.UserOffline:
		metrics.EventsReceived.WithLabelValues(string(event.TypeUserOffline)).Inc()
		r.hub.Broadcast(event.ClientOnlineUsers, event.OnlineUsersPayload{Count: evt.OnlineCount})

	case event.TypingStart:
		metrics.EventsReceived.WithLabelValues(string(event.TypeTypingStart)).Inc()
		r.hub.Broadcast(event.ClientTypingStart, event.TypingStartPayload{
			Username: evt.Username,
			TextID:   evt.TextID,
		})

	case event.TypingProgress:
		metrics.EventsReceived.WithLabelValues(string(event.TypeTypingProgress)).Inc()
		r.hub.Broadcast(event.ClientTypingProgress, event.TypingProgressPayload{
			Username:   evt.Username,
			Progress:   evt.Progress,
			CurrentWpm: evt.CurrentWpm,
			Errors:     evt.Errors,
		})

	case event.StatsUpdate:
		metrics.EventsReceived.WithLabelValues(string(event.TypeStatsUpdate)).Inc()
		r.hub.Broadcast(event.ClientStatsUpdate, evt.Payload)
	}
}

// refreshLeaderboards pushes a fresh snapshot of all three boards.
func (r *Relay) refreshLeaderboards(ctx context.Context) {
	log := logger.FromContext(ctx)

	for _, board := range domain.Boards {
		entries, err := r.boards.TopN(ctx, board, BroadcastLimit)
		if err != nil {
			log.Error(LogMsgBoardRefreshFailed, "board", board, "error", err)
			continue
		}
		r.hub.Broadcast(event.ClientLeaderboard, event.LeaderboardPayload{
			Type:        board,
			Leaderboard: entries,
		})
	}
}
