// Package store owns access to the shared key-value store that coordinates
// all server processes. Aggregates, ranked boards and the distinct-user set
// live here; pub/sub on the shared channel is the only other cross-process
// path. Nothing in this process's memory is authoritative except the
// presence tracker's local session table.
package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/domain"
)

// Options configures the store connection.
type Options struct {
	Addr     string
	Username string
	Password string
	DB       int
}

// Connect opens a client against the shared store and verifies the
// connection with a ping. A failed ping is fatal to callers: a process
// that cannot reach the store must not serve traffic.
func Connect(ctx context.Context, opts Options) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Username: opts.Username,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	return rdb, nil
}
