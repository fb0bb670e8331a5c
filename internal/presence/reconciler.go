package presence

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/store"
)

// Reconciler keeps the shared online counter honest. Every process writes
// its local identified-user count under a TTL'd heartbeat key; the sweep
// sums all live heartbeats and rewrites the counter. A process that dies
// without clean disconnects stops heartbeating and ages out within the
// TTL, so the counter recovers instead of drifting forever.
type Reconciler struct {
	rdb     *redis.Client
	tracker *Tracker
	procID  string

	stop chan struct{}
	wg   sync.WaitGroup
}

// NewReconciler creates a reconciler with a fresh process identity.
func NewReconciler(rdb *redis.Client, tracker *Tracker) *Reconciler {
	return &Reconciler{
		rdb:     rdb,
		tracker: tracker,
		procID:  uuid.NewString(),
		stop:    make(chan struct{}),
	}
}

// Start launches the heartbeat/reconcile loop.
func (r *Reconciler) Start(ctx context.Context) {
	r.wg.Add(1)
	go r.run(ctx)
}

// Stop halts the loop and removes this process's heartbeat so its users
// drop out of the sweep immediately.
func (r *Reconciler) Stop(ctx context.Context) {
	close(r.stop)
	r.wg.Wait()
	_ = r.rdb.Del(ctx, store.ProcessHeartbeatKey(r.procID)).Err()
}

func (r *Reconciler) run(ctx context.Context) {
	defer r.wg.Done()

	heartbeat := time.NewTicker(HeartbeatInterval)
	defer heartbeat.Stop()
	reconcile := time.NewTicker(ReconcileInterval)
	defer reconcile.Stop()

	r.Heartbeat(ctx)

	for {
		select {
		case <-heartbeat.C:
			r.Heartbeat(ctx)
		case <-reconcile.C:
			r.Reconcile(ctx)
		case <-r.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Heartbeat publishes this process's local identified-user count.
func (r *Reconciler) Heartbeat(ctx context.Context) {
	key := store.ProcessHeartbeatKey(r.procID)
	if err := r.rdb.Set(ctx, key, r.tracker.LocalCount(), HeartbeatTTL).Err(); err != nil {
		slog.Warn(LogMsgHeartbeatFailed, "error", err)
	}
}

// Reconcile sums all live process heartbeats and rewrites the shared
// counter with the result.
func (r *Reconciler) Reconcile(ctx context.Context) {
	keys, err := r.rdb.Keys(ctx, store.ProcessHeartbeatPattern).Result()
	if err != nil {
		slog.Warn(LogMsgReconcileFailed, "error", err)
		return
	}

	var total int64
	if len(keys) > 0 {
		values, err := r.rdb.MGet(ctx, keys...).Result()
		if err != nil {
			slog.Warn(LogMsgReconcileFailed, "error", err)
			return
		}
		for _, v := range values {
			if s, ok := v.(string); ok {
				n, _ := strconv.ParseInt(s, 10, 64)
				total += n
			}
		}
	}

	if err := r.rdb.Set(ctx, store.KeyOnlineCount, total, 0).Err(); err != nil {
		slog.Warn(LogMsgReconcileFailed, "error", err)
		return
	}

	slog.Debug(LogMsgReconciled, "online", total, "processes", len(keys))
}
