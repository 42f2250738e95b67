package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/JonMunkholm/inventory/internal/config"
	"github.com/JonMunkholm/inventory/internal/core"
	"github.com/JonMunkholm/inventory/internal/database"
	"github.com/JonMunkholm/inventory/internal/logging"
	"github.com/JonMunkholm/inventory/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

// defaultLogFile keeps log lines off the terminal screen.
const defaultLogFile = "inventory.log"

func main() {
	_ = godotenv.Overload()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}

	if cfg.Logging.File == "" {
		cfg.Logging.File = defaultLogFile
	}
	closer := logging.Setup(cfg.Logging)
	defer closer.Close()

	if err := run(cfg); err != nil {
		slog.Error("tui stopped", "error", err)
		fmt.Fprintln(os.Stderr, err)
		closer.Close()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	provider, err := database.NewProvider(cfg.Database)
	if err != nil {
		return fmt.Errorf("configure store: %w", err)
	}

	if err := database.EnsureSchema(context.Background(), provider); err != nil {
		return fmt.Errorf("initialize schema at %s: %w", provider.Target(), err)
	}

	service, err := core.NewService(provider)
	if err != nil {
		return err
	}

	service.SetWriteLimiter(core.NewWriteLimiter(cfg.Database.MaxConcurrentWrites, cfg.Database.WriteWait))

	rules := core.ProductRules{
		RequireCategory:    cfg.Forms.ProductRequireCategory,
		RequireDescription: cfg.Forms.ProductRequireDescription,
	}

	slog.Info("starting tui", "driver", provider.Dialect().Name(), "target", provider.Target())
	_, err = tea.NewProgram(tui.New(service, rules), tea.WithAltScreen()).Run()
	return err
}
