package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/teampulse/pulsebot/internal/changelog"
	"github.com/teampulse/pulsebot/internal/config"
	"github.com/teampulse/pulsebot/internal/daily"
	"github.com/teampulse/pulsebot/internal/database"
	"github.com/teampulse/pulsebot/internal/notify"
	"github.com/teampulse/pulsebot/internal/reminder"
	"github.com/teampulse/pulsebot/internal/server"
	"github.com/teampulse/pulsebot/internal/store"
	"github.com/teampulse/pulsebot/internal/tracker"
	"github.com/teampulse/pulsebot/internal/worker"
)

func main() {
	cfg := config.Load()
	logger := worker.NewLogger(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Init(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}
	defer database.Close(db)

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}
	if cfg.Env == "development" {
		if err := database.SeedDevData(db); err != nil {
			log.Fatalf("dev seed failed: %v", err)
		}
	}

	st := store.New(db)
	notifier := notify.NewClient(cfg.GatewayWebhookURL, cfg.GatewayWebhookSecret, cfg.GatewayStubMode)
	attendance := tracker.New(st)
	updates := daily.New(st)

	guard, err := reminder.NewRedisGuard(cfg.RedisURL)
	if err != nil {
		log.Fatalf("redis guard init failed: %v", err)
	}
	defer guard.Close()

	hour, minute := cfg.ReminderTime()
	reminders := reminder.New(st, notifier, guard, hour, minute, cfg.DailyChannelID, logger)
	announcer := changelog.NewAnnouncer(st, notifier, cfg.ChangelogDir, cfg.ChangelogChannelID, logger)

	if err := worker.InitClient(cfg.RedisURL); err != nil {
		log.Fatalf("asynq client init failed: %v", err)
	}
	defer worker.CloseClient()

	stopWorker, err := worker.Start(cfg, reminders, announcer)
	if err != nil {
		log.Fatalf("worker start failed: %v", err)
	}
	defer stopWorker()

	stopScheduler, err := worker.StartScheduler(cfg)
	if err != nil {
		log.Fatalf("scheduler start failed: %v", err)
	}
	defer stopScheduler()

	// One-shot startup check for an unannounced release.
	if err := worker.EnqueueAnnounceRelease(); err != nil {
		logger.Error("Failed to enqueue release announcement check", "error", err.Error())
	}

	router := server.NewRouter(cfg, st, attendance, updates, reminders, notifier)
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown failed", "error", err.Error())
	}
}
