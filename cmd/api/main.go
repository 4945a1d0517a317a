package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/jaekwang-park/todo-web/internal/config"
	todohttp "github.com/jaekwang-park/todo-web/internal/http"
	"github.com/jaekwang-park/todo-web/internal/metrics"
	"github.com/jaekwang-park/todo-web/internal/service"
	"github.com/jaekwang-park/todo-web/internal/session"
	"github.com/jaekwang-park/todo-web/internal/store"
)

func main() {
	// Initial logger at info level; reconfigured after config load
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(context.Background()); err != nil {
		logger.Error("application failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.ParseLogLevel(),
	}))
	slog.SetDefault(logger)

	logger.Info("config loaded",
		"env", cfg.AppEnv,
		"port", cfg.ServerPort,
		"store_driver", cfg.StoreDriver,
		"log_level", cfg.LogLevel,
	)

	// Snapshot store
	var st store.Store
	switch cfg.StoreDriver {
	case "postgres":
		db, err := store.Open(cfg.DB.DSN())
		if err != nil {
			return err
		}
		defer db.Close()
		st = store.NewPostgres(db)
		logger.Info("database connected")
	default:
		st = store.NewFileStore(cfg.DataDir)
		logger.Info("file store ready", "dir", cfg.DataDir)
	}

	// Session store
	var sessions session.Store = session.NewMemory()
	if cfg.RedisURL != "" {
		client, err := session.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer client.Close()
		sessions = session.NewRedis(client, cfg.SessionTTL)
		logger.Info("redis session store ready", "ttl", cfg.SessionTTL)
	}

	// Services
	authSvc, err := service.NewAuthService(ctx, st, sessions, logger)
	if err != nil {
		return err
	}
	todoSvc, err := service.NewTodoService(ctx, st, logger)
	if err != nil {
		return err
	}

	m := metrics.New()

	// HTTP Server
	srv := todohttp.NewServer(cfg.ServerPort, logger, m, authSvc, todoSvc, cfg.WebDir)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	logger.Info("server stopped gracefully")
	return nil
}
