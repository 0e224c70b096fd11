package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("PANIC", "panic", r, "stack", string(debug.Stack()))
		}
	}()

	// Optional .env beside the binary for MEMTRACK_* overrides.
	_ = godotenv.Load()

	setupLogger()
	defer closeLogger()

	cfg, err := loadConfig()
	if err != nil {
		slog.Error("Config load failed", "err", err)
		os.Exit(1)
	}

	var notify Notifier = logNotifier{}
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != 0 {
		tg, err := NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			slog.Error("Telegram notifier unavailable, falling back to log sink", "err", err)
		} else {
			notify = tg
		}
	}

	app := InitApp(cfg, notify)
	defer app.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go samplerLoop(ctx, app)
	go classifierLoop(ctx, app)
	go statusLoop(ctx, app)

	slog.Info("Memory tracker started",
		"classify_interval_s", cfg.Intervals.ClassifySeconds,
		"cache_ttl_s", cfg.Intervals.CacheTTLSeconds,
		"usage_threshold_mb", app.Usage.MB(),
		"flagged_threshold_mb", app.Flagged.MB(),
	)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("Shutting down")
	cancel()
}
