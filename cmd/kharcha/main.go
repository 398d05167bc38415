package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"kharcha/internal/bot"
	"kharcha/internal/config"
	"kharcha/internal/core"
	"kharcha/internal/events"
	"kharcha/internal/ledger"
	gsheet "kharcha/internal/ledger/google"
	"kharcha/internal/ledger/memory"
	"kharcha/internal/ledger/sqlite"
	"kharcha/internal/schedule"
)

func main() {
	// Load .env file for local development (ignore errors in production).
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	catalog, _ := cfg.Catalog()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := newLedger(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize ledger backend", "error", err, "backend", cfg.LedgerBackend)
		os.Exit(1)
	}
	if closeStore != nil {
		defer closeStore()
	}
	logger.Info("Ledger backend initialized", "backend", cfg.LedgerBackend)

	var sink bot.EventSink
	if cfg.AMQPURL != "" {
		client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		sink = client
		logger.Info("AMQP event publishing enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	engine := bot.NewEngine(store, catalog,
		core.NewCategorizer(core.DefaultRules(), core.CatchAll),
		core.NewTypeDeriver(core.DefaultFixedMarkers()),
		sink, cfg.SummaryDays)

	tg, err := bot.NewTelegram(cfg.TelegramToken, cfg.OwnerChatID, engine)
	if err != nil {
		logger.Error("Failed to connect to Telegram", "error", err)
		os.Exit(1)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return tg.Run(gctx)
	})

	for _, spec := range cfg.Schedules() {
		g.Go(func() error {
			logger.Info("Report schedule active",
				"every", string(spec.Every), "window_days", spec.WindowDays())
			return schedule.Run(gctx, spec, func(fired time.Time) {
				pushCtx, pushCancel := context.WithTimeout(gctx, 30*time.Second)
				defer pushCancel()
				text, err := engine.SummaryText(pushCtx, spec.WindowDays())
				if err != nil {
					logger.Error("Scheduled report failed", "error", err, "every", string(spec.Every))
					text = fmt.Sprintf("❌ Scheduled report failed: %v", err)
				}
				if err := tg.Send(cfg.OwnerChatID, text); err != nil {
					logger.Error("Failed to push scheduled report", "error", err)
				}
			})
		})
	}

	// Handle shutdown signals.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
			cancel()
		case <-gctx.Done():
		}
	}()

	logger.Info("kharcha is running", "owner_chat", cfg.OwnerChatID)
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Bot stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Bot stopped gracefully")
}

func newLedger(ctx context.Context, cfg *config.Config) (ledger.Ledger, func() error, error) {
	switch cfg.LedgerBackend {
	case "sheets":
		cli, err := gsheet.NewFromEnv(ctx)
		if err != nil {
			return nil, nil, err
		}
		return cli, nil, nil
	case "sqlite":
		repo, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	default:
		return memory.New(), nil, nil
	}
}
