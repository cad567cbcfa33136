package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"gastos/internal/backend"
	"gastos/internal/bot"
	"gastos/internal/cli"
	"gastos/internal/session"
	"gastos/internal/taxonomy"
	"gastos/internal/telegram"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting gastos")

	cfg := cli.LoadAndValidateConfig(logger)

	if cfg.TelegramToken == "" {
		logger.Error("TELEGRAM_BOT_TOKEN is required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}

	factory := backend.NewFactory(logger)
	result, err := factory.CreateBackend(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to create backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", "error", err)
			}
		}()
	}

	catalog := taxonomy.New(result.Store)
	if err := catalog.Reload(ctx); err != nil {
		logger.Error("Failed to load categories and cards", "error", err)
		os.Exit(1)
	}
	logger.Info("Taxonomy loaded",
		"categories", len(catalog.Categories()),
		"cards", len(catalog.Cards()))

	tg, err := telegram.New(cfg.TelegramToken)
	if err != nil {
		logger.Error("Failed to connect to Telegram", "error", err)
		os.Exit(1)
	}
	logger.Info("Telegram bot authorized", "username", tg.Username())

	sessions := session.NewManager(result.Store)
	ctrl := bot.New(sessions, catalog, result.Store, tg, cfg.SpreadsheetURL)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return tg.Run(ctx, ctrl)
	})

	// Periodic taxonomy refresh so new sheet rows show up without restart.
	g.Go(func() error {
		ticker := time.NewTicker(cfg.TaxonomyRefresh)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if err := catalog.Reload(ctx); err != nil {
					logger.Error("Taxonomy refresh failed", "error", err)
				}
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Bot stopped with error", "error", err)
		os.Exit(1)
	}

	logger.Info("Bot stopped gracefully")
}
