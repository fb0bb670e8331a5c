package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/config"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/event"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/leaderboard"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/presence"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/relay"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/server"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/stats"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/store"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/text"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/user"
	"github.com/mas-ud-ali-husadha/typing-challenge-backend/internal/ws"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The shared store is a hard dependency; refuse to start without it.
	rdb, err := store.Connect(ctx, store.Options{
		Addr:     cfg.RedisAddr,
		Username: cfg.RedisUsername,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		slog.Error("Failed to connect to store", "error", err)
		os.Exit(1)
	}
	defer func() { _ = rdb.Close() }()

	publisher := event.NewPublisher(rdb)
	boards := leaderboard.NewService(rdb)
	users := user.NewService(rdb, boards)
	globals := stats.NewService(rdb, publisher)
	texts := text.NewService(rdb)

	if err := texts.InitializeTexts(ctx); err != nil {
		slog.Error("Failed to seed typing texts", "error", err)
		os.Exit(1)
	}

	hub := ws.NewHub()
	hub.Start()

	tracker := presence.NewTracker(rdb, publisher, users, hub)

	reconciler := presence.NewReconciler(rdb, tracker)
	reconciler.Start(ctx)

	rel := relay.New(rdb, hub, boards)
	rel.Start(ctx)

	srv := server.NewServer(cfg.Port, server.Deps{
		Store:       rdb,
		Users:       users,
		Stats:       globals,
		Boards:      boards,
		Texts:       texts,
		Hub:         hub,
		Sessions:    tracker,
		Publisher:   publisher,
		CORSOrigins: cfg.CORSOrigins,
	})

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case err := <-errCh:
		slog.Error("Server failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}

	rel.Stop()
	reconciler.Stop(shutdownCtx)
	hub.Stop()

	slog.Info("Shutdown complete")
}
