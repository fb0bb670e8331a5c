package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/domain"
)

// Type tags a domain event on the shared channel. The tag set is closed:
// receivers dispatch with an exhaustive switch and ignore unknown tags,
// which keeps the wire contract forward compatible.
type Type string

const (
	TypeTestCompleted  Type = "test_completed"
	TypeUserOnline     Type = "user_online"
	TypeUserOffline    Type = "user_offline"
	TypeTypingStart    Type = "typing_start"
	TypeTypingProgress Type = "typing_progress"
	TypeStatsUpdate    Type = "stats_update"
)

// ErrUnknownType marks an event tag this process does not recognize.
// Receivers drop such events without error.
var ErrUnknownType = errors.New("unknown event type")

// ErrMalformed marks a payload that could not be decoded. Malformed
// events are logged and dropped; they never reach clients.
var ErrMalformed = errors.New("malformed event payload")

// TestCompleted announces a stored test result. Every process refreshes
// its viewers' leaderboards on receipt, regardless of which process
// handled the originating request.
type TestCompleted struct {
	Type     Type              `json:"type"`
	Username string            `json:"username"`
	Result   domain.TestResult `json:"result"`
}

// UserOnline announces an identified connection. OnlineCount carries the
// store-side global counter value at publish time.
type UserOnline struct {
	Type        Type   `json:"type"`
	Username    string `json:"username"`
	OnlineCount int64  `json:"onlineCount"`
}

// UserOffline announces a disconnect of an identified connection.
type UserOffline struct {
	Type        Type   `json:"type"`
	Username    string `json:"username"`
	OnlineCount int64  `json:"onlineCount"`
}

// TypingStart announces the start of a typing session. Purely advisory;
// no receiver retains state for it.
type TypingStart struct {
	Type      Type   `json:"type"`
	Username  string `json:"username"`
	TextID    string `json:"textId"`
	Timestamp string `json:"timestamp"`
}

// TypingProgress carries live in-test progress, relayed verbatim.
type TypingProgress struct {
	Type       Type    `json:"type"`
	Username   string  `json:"username"`
	Progress   float64 `json:"progress"`
	CurrentWpm float64 `json:"currentWpm"`
	Errors     int     `json:"errors"`
	Timestamp  string  `json:"timestamp"`
}

// StatsUpdate carries a fresh global aggregate snapshot.
type StatsUpdate struct {
	Type    Type               `json:"type"`
	Payload domain.GlobalStats `json:"payload"`
}

// Constructors fill the tag so callers cannot publish an untagged event.

func NewTestCompleted(username string, result domain.TestResult) TestCompleted {
	return TestCompleted{Type: TypeTestCompleted, Username: username, Result: result}
}

func NewUserOnline(username string, onlineCount int64) UserOnline {
	return UserOnline{Type: TypeUserOnline, Username: username, OnlineCount: onlineCount}
}

func NewUserOffline(username string, onlineCount int64) UserOffline {
	return UserOffline{Type: TypeUserOffline, Username: username, OnlineCount: onlineCount}
}

func NewTypingStart(username, textID string) TypingStart {
	return TypingStart{
		Type:      TypeTypingStart,
		Username:  username,
		TextID:    textID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func NewTypingProgress(username string, progress, currentWpm float64, errCount int) TypingProgress {
	return TypingProgress{
		Type:       TypeTypingProgress,
		Username:   username,
		Progress:   progress,
		CurrentWpm: currentWpm,
		Errors:     errCount,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
}

func NewStatsUpdate(snapshot domain.GlobalStats) StatsUpdate {
	return StatsUpdate{Type: TypeStatsUpdate, Payload: snapshot}
}

// Encode serializes an event for the shared channel.
func Encode(evt interface{}) ([]byte, error) {
	data, err := json.Marshal(evt)
	if err != nil {
		return nil, fmt.Errorf("failed to encode event: %w", err)
	}
	return data, nil
}

// Decode parses a payload from the shared channel into its concrete event
// type. Unknown tags yield ErrUnknownType; undecodable payloads yield
// ErrMalformed. Both are expected conditions for receivers, not failures.
func Decode(data []byte) (interface{}, error) {
	var envelope struct {
		Type Type `json:"type"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	switch envelope.Type {
	case TypeTestCompleted:
		return decodeAs[TestCompleted](data)
	case TypeUserOnline:
		return decodeAs[UserOnline](data)
	case TypeUserOffline:
		return decodeAs[UserOffline](data)
	case TypeTypingStart:
		return decodeAs[TypingStart](data)
	case TypeTypingProgress:
		return decodeAs[TypingProgress](data)
	case TypeStatsUpdate:
		return decodeAs[StatsUpdate](data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, envelope.Type)
	}
}

func decodeAs[T any](data []byte) (interface{}, error) {
	var evt T
	if err := json.Unmarshal(data, &evt); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return evt, nil
}
