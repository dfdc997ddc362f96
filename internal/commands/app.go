package commands

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"finanzas/internal/bot"
	"finanzas/internal/catalog"
	"finanzas/internal/config"
	"finanzas/internal/ledger"
	"finanzas/internal/log"
	"finanzas/internal/sheets/google"
	"finanzas/internal/sheets/memory"
	"finanzas/internal/telegram"
)

// app bundles the long-lived pieces every subcommand needs.
type app struct {
	cfg      *config.Config
	logger   *log.Logger
	store    ledger.Store
	telegram *telegram.Adapter
	engine   *bot.Engine
}

// buildApp loads and validates configuration, then wires the store, the
// Telegram adapter, and the engine. A .env file is honored when present.
func buildApp(ctx context.Context) (*app, error) {
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	tg, err := telegram.New(cfg.TelegramToken, logger)
	if err != nil {
		return nil, err
	}

	engine := bot.New(cfg, store, catalog.NewLoader(store, cfg.CatalogTTL, logger), tg, logger)

	return &app{
		cfg:      cfg,
		logger:   logger.WithComponent(log.ComponentApp),
		store:    store,
		telegram: tg,
		engine:   engine,
	}, nil
}

func buildStore(ctx context.Context, cfg *config.Config) (ledger.Store, error) {
	switch cfg.DataBackend {
	case "sheets":
		return google.New(ctx, google.Credentials{
			JSON: cfg.GoogleServiceAccountJSON,
			File: cfg.GoogleServiceAccountFile,
		}, cfg.UserSpreadsheets)
	case "memory":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown data backend %q", cfg.DataBackend)
	}
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// runErr filters the cancellation that a clean shutdown produces.
func runErr(err error) error {
	if err == nil || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
