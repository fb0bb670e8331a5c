package ws

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/logger"
)

// OriginChecker decides whether a handshake origin is acceptable.
type OriginChecker func(r *http.Request) bool

// AllowOrigins builds an OriginChecker from a configured allowlist. An
// empty list allows every origin.
func AllowOrigins(origins []string) OriginChecker {
	if len(origins) == 0 {
		return func(*http.Request) bool { return true }
	}
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}
}

// HandleSocket upgrades the connection, registers it with the hub and
// runs the read/write pumps for its lifetime.
func HandleSocket(hub *Hub, sessions SessionEvents, boards BoardReader, checkOrigin OriginChecker) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     checkOrigin,
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromContext(ctx)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn(LogMsgUpgradeFailed, "error", err)
			return
		}

		client := NewClient(uuid.NewString(), conn, hub, sessions, boards)
		sessions.Connect(client.ID)
		hub.Register(client)

		log.Info(LogMsgConnected, "conn_id", client.ID)

		go client.writePump()
		// The read pump owns the connection; when it returns the session
		// is torn down and the client unregistered. It outlives the HTTP
		// exchange, so it gets its own context keyed by connection ID.
		client.readPump(logger.WithRequestID(context.Background(), client.ID))
	}
}
