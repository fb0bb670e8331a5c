package domain

// SessionStatus is the lifecycle state of a realtime connection.
type SessionStatus string

const (
	SessionConnected  SessionStatus = "connected"
	SessionIdentified SessionStatus = "identified"
	SessionTyping     SessionStatus = "typing"
)

// SessionRecord is the ephemeral per-connection state owned by the
// presence tracker. Allocated on connect, released on disconnect; a
// client that starts typing and never finishes leaves no trace beyond
// this record.
type SessionRecord struct {
	Username  string        `json:"username"`
	TextID    string        `json:"textId"`
	StartTime int64         `json:"startTime"`
	Status    SessionStatus `json:"status"`
}
