// Package main contains the entrypoint for the swapguard Telegram bot.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edgard/swapguard/internal/bot"
	"github.com/edgard/swapguard/internal/bot/handlers"
	"github.com/edgard/swapguard/internal/bot/tasks"
	"github.com/edgard/swapguard/internal/config"
	"github.com/edgard/swapguard/internal/database"
	"github.com/edgard/swapguard/internal/gateway"
	"github.com/edgard/swapguard/internal/logger"
	"github.com/edgard/swapguard/internal/moderation"
	"github.com/edgard/swapguard/internal/resilience"
	"github.com/edgard/swapguard/internal/spam"
	"github.com/edgard/swapguard/internal/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run initializes and starts all application components (config, logger, db,
// telegram client, webhook, gateway, event loop, scheduler), handles graceful
// shutdown, and returns an exit code (0 for success, 1 for failure).
func run(ctx context.Context) int {
	envFile := flag.String("env", ".env", "Path to an optional dotenv file")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		slog.Error("Failed to load configuration", "env_file", *envFile, "error", err)
		return 1
	}

	activity := logger.NewActivityWriter(cfg.Logger)
	defer func() { _ = activity.Close() }()

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON, logger.Output(activity))
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON, "activity_file", cfg.Logger.ActivityFile)

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Error("Failed to connect to database", "path", cfg.Database.Path, "error", err)
		return 1
	}
	defer database.CloseDB(db)
	store := database.NewStore(db, log)

	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	me, err := tg.GetMe(ctx)
	if err != nil {
		log.Error("Failed to get bot info", "error", err)
		return 1
	}
	log.Info("Retrieved bot info", "bot_id", me.ID, "bot_username", me.Username)

	retryPolicy := telegram.RetryPolicy{
		Attempts: cfg.Telegram.WebhookRetryAttempts,
		Delay:    cfg.Telegram.WebhookRetryDelay,
	}
	if err := telegram.RegisterWebhook(ctx, tg, cfg.WebhookEndpoint(), retryPolicy, log); err != nil {
		log.Error("Failed to register webhook", "error", err)
		return 1
	}

	messenger := resilience.NewMessenger(tg, resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		Name:        "telegram",
		MaxFailures: cfg.Telegram.BreakerMaxFailures,
		Cooldown:    cfg.Telegram.BreakerCooldown,
	}, log))

	moderator := moderation.NewAction(messenger, store, cfg.Telegram.AdminChatID, moderation.Messages{
		NoticeFmt:     cfg.Messages.SpamNoticeFmt,
		AdminAlertFmt: cfg.Messages.AdminAlertFmt,
	}, log)

	hDeps := handlers.HandlerDeps{
		Logger:    log,
		Config:    cfg,
		Messenger: messenger,
		Matcher:   spam.NewMatcher(cfg.Spam.BannedPhrases),
		Moderator: moderator,
	}
	tDeps := tasks.TaskDeps{
		Logger: log,
		Store:  store,
		Config: cfg,
	}

	queue := bot.NewQueue(cfg.Bot.QueueSize)
	dispatcher := bot.NewDispatcher(log, handlers.RegisterAllHandlers(hDeps), logger.Middleware(log))
	loop := bot.NewEventLoop(queue, dispatcher, me.Username, cfg.Bot.MaxConcurrentHandlers, log)
	server := gateway.NewServer(cfg.ListenAddr(), queue, cfg.Messages.Liveness, cfg.Server.ShutdownTimeout, log)

	sched, err := bot.NewScheduler(log, cfg.Scheduler.Tasks(), tasks.RegisterAllTasks(tDeps))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}
	app := bot.NewBot(log, server, loop, sched)

	log.Info("Starting bot...", "webhook", cfg.WebhookEndpoint(), "listen", cfg.ListenAddr())
	runErr := app.Run(ctx)
	log.Info("Bot run loop finished. Initiating shutdown...")

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		// Allow logs to flush before exiting on error
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	return 0
}
