package ws

import "time"

// Inbound signal names sent by clients over the socket.
const (
	SignalUserOnline         = "user_online"
	SignalTypingStart        = "typing_start"
	SignalTypingProgress     = "typing_progress"
	SignalRequestLeaderboard = "request_leaderboard"
)

// LeaderboardRequestLimit is the board size returned to a requesting client.
const LeaderboardRequestLimit = 10

// Connection tuning
const (
	BroadcastBufferSize = 256
	ClientChannelBuffer = 32
	SendBufferSize      = 64

	WriteWait      = 10 * time.Second
	PongWait       = 60 * time.Second
	PingPeriod     = (PongWait * 9) / 10
	MaxMessageSize = 4096
)

// Log messages
const (
	LogMsgEncodeFailed    = "Failed to encode realtime event"
	LogMsgUpgradeFailed   = "Failed to upgrade connection"
	LogMsgReadFailed      = "Realtime connection closed"
	LogMsgBadSignal       = "Ignored malformed client signal"
	LogMsgBoardFetchError = "Failed to fetch leaderboard for client request"
	LogMsgConnected       = "Realtime client connected"
)
