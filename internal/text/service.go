// Package text serves the typing prompts. Prompts live in a shared hash
// seeded once at startup; reads go through a small in-process cache since
// the prompt set changes rarely.
package text

import (
	"context"
	"fmt"
	"math/rand"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"

	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/domain"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/logger"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/store"
)

// Service hands out typing prompts.
type Service interface {
	// InitializeTexts seeds the prompt hash if it does not exist yet.
	// Seeding is idempotent across processes.
	InitializeTexts(ctx context.Context) error
	// GetRandomText returns one prompt chosen uniformly at random.
	GetRandomText(ctx context.Context) (domain.Text, error)
}

type service struct {
	rdb   *redis.Client
	cache *lru.Cache[string, domain.Text]
}

// NewService creates a new text service.
func NewService(rdb *redis.Client) Service {
	// Cannot fail for a positive size.
	cache, _ := lru.New[string, domain.Text](CacheSize)
	return &service{rdb: rdb, cache: cache}
}

func (s *service) InitializeTexts(ctx context.Context) error {
	log := logger.FromContext(ctx)

	exists, err := s.rdb.Exists(ctx, store.KeyTexts).Result()
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgSeedFailed, err)
	}
	if exists > 0 {
		return nil
	}

	fields := make(map[string]interface{}, len(seedTexts))
	for i, t := range seedTexts {
		fields[fmt.Sprintf("%d", i)] = t
	}
	if err := s.rdb.HSet(ctx, store.KeyTexts, fields).Err(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgSeedFailed, err)
	}

	log.Info(LogMsgSeeded, "count", len(seedTexts))
	return nil
}

func (s *service) GetRandomText(ctx context.Context) (domain.Text, error) {
	ids, err := s.rdb.HKeys(ctx, store.KeyTexts).Result()
	if err != nil {
		return domain.Text{}, fmt.Errorf("%s: %w", ErrMsgFetchFailed, err)
	}
	if len(ids) == 0 {
		return domain.Text{}, domain.ErrTextsNotSeeded
	}

	id := ids[rand.Intn(len(ids))]

	if cached, ok := s.cache.Get(id); ok {
		return cached, nil
	}

	body, err := s.rdb.HGet(ctx, store.KeyTexts, id).Result()
	if err != nil {
		return domain.Text{}, fmt.Errorf("%s: %w", ErrMsgFetchFailed, err)
	}

	text := domain.Text{ID: id, Text: body, Length: len(body)}
	s.cache.Add(id, text)
	return text, nil
}
