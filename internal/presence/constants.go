package presence

import "time"

// Heartbeat and reconcile cadence. The heartbeat TTL is a few multiples
// of the interval so one missed write doesn't drop a live process from
// the sweep.
const (
	HeartbeatInterval = 5 * time.Second
	HeartbeatTTL      = 15 * time.Second
	ReconcileInterval = 30 * time.Second
)

// Log messages
const (
	LogMsgIdentified          = "User identified"
	LogMsgDisconnected        = "User disconnected"
	LogMsgTouchFailed         = "Failed to touch last seen"
	LogMsgPublishFailed       = "Failed to publish presence event"
	LogMsgSessionWriteFailed  = "Failed to write session record"
	LogMsgSessionDeleteFailed = "Failed to delete session record"
	LogMsgCounterFailed       = "Failed to adjust online counter"
	LogMsgHeartbeatFailed     = "Failed to write presence heartbeat"
	LogMsgReconcileFailed     = "Failed to reconcile online counter"
	LogMsgReconciled          = "Online counter reconciled"
)
