package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/infra/config"
	"homework_status_bot/internal/infra/logger"
	"homework_status_bot/internal/infra/practicum"
	"homework_status_bot/internal/infra/scheduler"
	"homework_status_bot/internal/infra/telegram"
)

func main() {
	fmt.Println("Homework Status Bot starting...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	logFile, err := logger.Init(cfg)
	if err != nil {
		log.Fatalf("FATAL: Could not initialize logger: %v", err)
	}
	defer logFile.Close()
	mainLogger := logger.Named("main")

	if err := cfg.CheckTokens(); err != nil {
		mainLogger.WithError(err).Fatal("Token check failed, bot cannot start")
	}
	mainLogger.Infof("Configuration loaded. LogLevel: %s, Environment: %s, Schedule: %s", cfg.LogLevel, cfg.Environment, cfg.PollSchedule)

	bot, err := telegram.NewBot(cfg.TelegramToken, cfg.HTTPTimeout)
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not create Telegram bot")
	}
	telegramClient := telegram.NewTelebotAdapter(bot)

	// Error records are mirrored to the same chat that receives status updates.
	logger.Log.AddHook(logger.NewChatHook(func(text string) error {
		return telegramClient.SendMessage(cfg.TelegramChatID, text, nil)
	}, cfg.LogChatRatePerMin))
	mainLogger.Info("Telegram client initialized.")

	journal, closeJournal := openJournal(cfg.DatabaseURL, logger.Named("journal"))
	defer closeJournal()

	waiter, err := scheduler.NewWaiter(cfg.PollSchedule, logger.Named("scheduler"))
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not create poll scheduler")
	}

	apiClient := practicum.NewClient(cfg.PracticumEndpoint, cfg.PracticumToken, cfg.HTTPTimeout, logger.Named("practicum"))
	notifier := app.NewNotifier(telegramClient, cfg.TelegramChatID, logger.Named("notifier"))
	poller := app.NewPoller(apiClient, notifier, waiter, journal, logger.Named("poller"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		mainLogger.WithError(err).Error("Poller stopped unexpectedly")
		os.Exit(1)
	}
	mainLogger.Info("Application shut down gracefully.")
}
