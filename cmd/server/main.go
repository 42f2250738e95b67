package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/inventory/internal/config"
	"github.com/JonMunkholm/inventory/internal/core"
	"github.com/JonMunkholm/inventory/internal/database"
	"github.com/JonMunkholm/inventory/internal/logging"
	"github.com/JonMunkholm/inventory/internal/web"
	"github.com/joho/godotenv"
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
	closer := logging.Setup(cfg.Logging)
	defer closer.Close()

	slog.Info("configuration loaded", "config", cfg.String())

	provider, err := database.NewProvider(cfg.Database)
	if err != nil {
		slog.Error("failed to configure store", "error", err)
		os.Exit(1)
	}

	// Tables are created once here; nothing later retries.
	ctx := context.Background()
	if err := database.EnsureSchema(ctx, provider); err != nil {
		slog.Error("failed to initialize schema", "target", provider.Target(), "error", err)
		os.Exit(1)
	}

	service, err := core.NewService(provider)
	if err != nil {
		slog.Error("failed to create service", "error", err)
		os.Exit(1)
	}

	service.SetWriteLimiter(core.NewWriteLimiter(cfg.Database.MaxConcurrentWrites, cfg.Database.WriteWait))

	if err := service.Ping(ctx); err != nil {
		slog.Error("failed to connect to store", "error", err)
		os.Exit(1)
	}
	slog.Info("connected to store", "driver", provider.Dialect().Name(), "target", provider.Target())

	server := web.NewServer(service, cfg)

	// Graceful shutdown
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}

		// Let a save that outlived its request finish.
		if err := service.WaitForWrites(shutdownCtx); err != nil {
			slog.Warn("writes did not complete in time", "error", err)
		}
	}()

	if err := server.Start(); err != nil {
		slog.Error("server stopped", "error", err)
		closer.Close()
		os.Exit(1)
	}
	<-stopped
	slog.Info("server stopped")
}
