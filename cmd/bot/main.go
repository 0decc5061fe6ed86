package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"benches/config"
	"benches/internal/db"
	"benches/internal/tgbot"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN environment variable is not set")
	}

	gormDB, err := db.NewDB(cfg.DSN)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	b, err := tgbot.New(cfg.TelegramToken)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}
	b.RegisterHandler(tgbot.NewStartHandler(gormDB, cfg.BaseURL))
	b.RegisterHandler(tgbot.NewNearestHandler(gormDB))
	b.RegisterHandler(tgbot.HelpHandler{})

	b.Run(ctx)
}
