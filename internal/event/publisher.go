package event

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/metrics"
)

// Channel is the shared pub/sub channel every process publishes to and
// subscribes on. Publishing here is the single path by which state
// changes reach other processes.
const Channel = "typing:updates"

// Publisher publishes domain events to the shared channel.
type Publisher interface {
	Publish(ctx context.Context, evt interface{}) error
}

type redisPublisher struct {
	rdb *redis.Client
}

// NewPublisher creates a Publisher backed by the shared store's pub/sub.
func NewPublisher(rdb *redis.Client) Publisher {
	return &redisPublisher{rdb: rdb}
}

func (p *redisPublisher) Publish(ctx context.Context, evt interface{}) error {
	data, err := Encode(evt)
	if err != nil {
		return err
	}

	if err := p.rdb.Publish(ctx, Channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	metrics.EventsPublished.WithLabelValues(typeLabel(evt)).Inc()
	return nil
}

// typeLabel extracts the event tag for metrics without re-decoding.
func typeLabel(evt interface{}) string {
	switch e := evt.(type) {
	case TestCompleted:
		return string(e.Type)
	case UserOnline:
		return string(e.Type)
	case UserOffline:
		return string(e.Type)
	case TypingStart:
		return string(e.Type)
	case TypingProgress:
		return string(e.Type)
	case StatsUpdate:
		return string(e.Type)
	default:
		return "unknown"
	}
}
