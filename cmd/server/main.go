package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/restopsdev/platewatch/internal/config"
	"github.com/restopsdev/platewatch/internal/logging"
	"github.com/restopsdev/platewatch/internal/session"
	"github.com/restopsdev/platewatch/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"session_ttl", cfg.Session.TTL,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	ctx := context.Background()

	// Pick the session store: Postgres when configured, in-memory otherwise.
	var store session.Store
	if cfg.Database.URL != "" {
		poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
		if err != nil {
			slog.Error("failed to parse database URL", "error", err)
			os.Exit(1)
		}
		poolConfig.MaxConns = int32(cfg.Database.MaxConns)
		poolConfig.MinConns = int32(cfg.Database.MinConns)
		poolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime
		poolConfig.MaxConnIdleTime = cfg.Database.MaxConnIdleTime

		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			slog.Error("failed to ping database", "error", err)
			os.Exit(1)
		}

		pgStore := session.NewPGStore(pool)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			slog.Error("failed to prepare session schema", "error", err)
			os.Exit(1)
		}
		store = pgStore

		if u, err := url.Parse(cfg.Database.URL); err == nil {
			slog.Info("session store ready", "backend", "postgres",
				"database", strings.TrimPrefix(u.Path, "/"))
		} else {
			slog.Info("session store ready", "backend", "postgres")
		}
	} else {
		store = session.NewMemStore()
		slog.Info("session store ready", "backend", "memory")
	}

	server := web.NewServer(cfg, store)

	// Background cleanup of expired session reports.
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	go expireLoop(jobCtx, store, cfg.Session.TTL, cfg.Session.CleanupInterval)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}

// expireLoop periodically drops session reports older than ttl.
func expireLoop(ctx context.Context, store session.Store, ttl, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			dropped, err := store.Expire(ctx, ttl)
			if err != nil {
				slog.Warn("session cleanup failed", "error", err)
				continue
			}
			if dropped > 0 {
				slog.Info("expired session reports", "count", dropped)
			}
		}
	}
}
