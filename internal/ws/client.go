package ws

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/domain"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/event"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/logger"
)

// SessionEvents receives the lifecycle signals a connection produces.
type SessionEvents interface {
	Connect(connID string)
	Identify(ctx context.Context, connID, username string)
	StartTyping(ctx context.Context, connID, textID string)
	Progress(ctx context.Context, connID string, progress, currentWpm float64, errCount int)
	Disconnect(ctx context.Context, connID string)
}

// BoardReader answers per-client leaderboard requests.
type BoardReader interface {
	TopN(ctx context.Context, board domain.Board, n int64) ([]domain.LeaderboardEntry, error)
}

// inbound is the signal envelope clients send. Fields beyond Type are
// populated per signal; unused ones stay zero.
type inbound struct {
	Type       string  `json:"type"`
	Username   string  `json:"username,omitempty"`
	TextID     string  `json:"textId,omitempty"`
	Progress   float64 `json:"progress,omitempty"`
	CurrentWpm float64 `json:"currentWpm,omitempty"`
	Errors     int     `json:"errors,omitempty"`
	Board      string  `json:"board,omitempty"`
}

// Client is one websocket connection registered with the hub.
type Client struct {
	ID   string
	conn *websocket.Conn
	send chan []byte

	hub      *Hub
	sessions SessionEvents
	boards   BoardReader
}

// NewClient wraps an upgraded connection.
func NewClient(id string, conn *websocket.Conn, hub *Hub, sessions SessionEvents, boards BoardReader) *Client {
	return &Client{
		ID:       id,
		conn:     conn,
		send:     make(chan []byte, SendBufferSize),
		hub:      hub,
		sessions: sessions,
		boards:   boards,
	}
}

// readPump consumes client signals until the connection drops, then tears
// the session down. Runs as the connection's owning goroutine.
func (c *Client) readPump(ctx context.Context) {
	log := logger.FromContext(ctx)

	defer func() {
		c.sessions.Disconnect(ctx, c.ID)
		c.hub.Unregister(c.ID)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(MaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(PongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug(LogMsgReadFailed, "conn_id", c.ID, "error", err)
			}
			return
		}
		c.handleSignal(ctx, raw)
	}
}

// handleSignal routes one inbound signal. Malformed or unknown signals
// are logged and dropped; the connection stays up.
func (c *Client) handleSignal(ctx context.Context, raw []byte) {
	log := logger.FromContext(ctx)

	var sig inbound
	if err := json.Unmarshal(raw, &sig); err != nil {
		log.Warn(LogMsgBadSignal, "conn_id", c.ID, "error", err)
		return
	}

	switch sig.Type {
	case SignalUserOnline:
		c.sessions.Identify(ctx, c.ID, sig.Username)

	case SignalTypingStart:
		c.sessions.StartTyping(ctx, c.ID, sig.TextID)

	case SignalTypingProgress:
		c.sessions.Progress(ctx, c.ID, sig.Progress, sig.CurrentWpm, sig.Errors)

	case SignalRequestLeaderboard:
		c.sendLeaderboard(ctx, domain.ParseBoard(sig.Board))

	default:
		log.Debug(LogMsgBadSignal, "conn_id", c.ID, "signal", sig.Type)
	}
}

// sendLeaderboard answers a leaderboard request on this connection only.
func (c *Client) sendLeaderboard(ctx context.Context, board domain.Board) {
	log := logger.FromContext(ctx)

	entries, err := c.boards.TopN(ctx, board, LeaderboardRequestLimit)
	if err != nil {
		log.Error(LogMsgBoardFetchError, "conn_id", c.ID, "board", board, "error", err)
		return
	}

	c.Send(Event{
		Type: event.ClientLeaderboard,
		Payload: event.LeaderboardPayload{
			Type:        board,
			Leaderboard: entries,
		},
	})
}

// Send queues an event for this connection alone. Drops if the client's
// buffer is full.
func (c *Client) Send(evt Event) {
	msg, err := json.Marshal(evt)
	if err != nil {
		return
	}
	select {
	case c.send <- msg:
	default:
	}
}

// writePump drains the send channel to the socket and keeps the
// connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(PingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(WriteWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
