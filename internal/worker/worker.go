package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/teampulse/pulsebot/internal/changelog"
	"github.com/teampulse/pulsebot/internal/config"
	"github.com/teampulse/pulsebot/internal/orgtime"
	"github.com/teampulse/pulsebot/internal/reminder"
)

// asynqLoggerAdapter wraps slog.Logger to implement asynq.Logger interface
type asynqLoggerAdapter struct {
	logger *slog.Logger
}

func (a *asynqLoggerAdapter) Debug(args ...interface{}) {
	a.logger.Debug(fmt.Sprint(args...))
}

func (a *asynqLoggerAdapter) Info(args ...interface{}) {
	a.logger.Info(fmt.Sprint(args...))
}

func (a *asynqLoggerAdapter) Warn(args ...interface{}) {
	a.logger.Warn(fmt.Sprint(args...))
}

func (a *asynqLoggerAdapter) Error(args ...interface{}) {
	a.logger.Error(fmt.Sprint(args...))
}

func (a *asynqLoggerAdapter) Fatal(args ...interface{}) {
	a.logger.Error(fmt.Sprint(args...))
	panic(fmt.Sprint(args...))
}

// Start starts the Asynq worker in non-blocking mode and returns a stop
// function so the caller can coordinate shutdown.
func Start(cfg *config.Config, reminders *reminder.Service, announcer *changelog.Announcer) (stop func(), err error) {
	srv, mux, err := newServer(cfg, reminders, announcer)
	if err != nil {
		return nil, err
	}
	if err := srv.Start(mux); err != nil {
		return nil, fmt.Errorf("failed to start worker: %w", err)
	}
	return func() { srv.Shutdown() }, nil
}

func newServer(cfg *config.Config, reminders *reminder.Service, announcer *changelog.Announcer) (*asynq.Server, *asynq.ServeMux, error) {
	redisOpt, err := asynq.ParseRedisURI(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	logger := NewLogger(cfg.LogLevel, cfg.LogFormat)

	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency:     2,
			ShutdownTimeout: 30 * time.Second,
			ErrorHandler:    asynq.ErrorHandlerFunc(makeErrorHandler(logger)),
			Logger:          &asynqLoggerAdapter{logger: logger},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskReminderTick, handleReminderTick(logger, reminders))
	mux.HandleFunc(TaskAnnounceRelease, handleAnnounceRelease(logger, announcer))

	logger.Info("Worker starting", "concurrency", 2, "redis", cfg.RedisURL)
	return srv, mux, nil
}

// handleReminderTick runs once per minute. The reminder service applies the
// trigger-time and last-run-date guards, so most ticks do nothing.
func handleReminderTick(logger *slog.Logger, reminders *reminder.Service) func(context.Context, *asynq.Task) error {
	return func(ctx context.Context, task *asynq.Task) error {
		result, err := reminders.RunScheduled(ctx, orgtime.Now())
		if err != nil {
			// Store unavailable: fail the tick and let the next one retry.
			return fmt.Errorf("reminder tick failed: %w", err)
		}
		if result.Fired {
			logger.Info(
				"Reminder cycle completed",
				"target_date", result.TargetDate,
				"pending", len(result.Pending),
				"notified", len(result.Notified),
			)
		}
		return nil
	}
}

// handleAnnounceRelease performs the startup release-announcement check.
func handleAnnounceRelease(logger *slog.Logger, announcer *changelog.Announcer) func(context.Context, *asynq.Task) error {
	return func(ctx context.Context, task *asynq.Task) error {
		if err := announcer.AnnounceLatest(ctx); err != nil {
			return fmt.Errorf("release announcement check failed: %w", err)
		}
		return nil
	}
}

// makeErrorHandler creates an error handler function with logger closure.
func makeErrorHandler(logger *slog.Logger) func(context.Context, *asynq.Task, error) {
	return func(ctx context.Context, task *asynq.Task, err error) {
		retried, _ := asynq.GetRetryCount(ctx)
		maxRetry, _ := asynq.GetMaxRetry(ctx)

		logger.Error(
			"Task execution failed",
			"task_type", task.Type(),
			"error", err.Error(),
			"retry_count", retried,
			"max_retry", maxRetry,
		)

		if retried >= maxRetry {
			logger.Error(
				"Task moved to dead letter queue (all retries exhausted)",
				"task_type", task.Type(),
			)
		}
	}
}
