package worker

import (
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/teampulse/pulsebot/internal/config"
)

// StartScheduler creates and starts an Asynq Scheduler that enqueues the
// reminder tick every minute. Fine-grained ticks plus the persisted
// last-run date in the handler give exactly-once-per-day firing that
// survives restarts. Returns a stop function for graceful shutdown.
func StartScheduler(cfg *config.Config) (stop func(), err error) {
	redisOpt, err := asynq.ParseRedisURI(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	logger := NewLogger(cfg.LogLevel, cfg.LogFormat)

	scheduler := asynq.NewScheduler(
		redisOpt,
		&asynq.SchedulerOpts{
			LogLevel: asynq.InfoLevel,
			Logger:   &asynqLoggerAdapter{logger: logger},
		},
	)

	task := asynq.NewTask(
		TaskReminderTick,
		nil,
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
		asynq.Unique(time.Minute), // prevent tick pileup if a cycle runs long
	)

	entryID, err := scheduler.Register("@every 1m", task)
	if err != nil {
		return nil, fmt.Errorf("failed to register reminder tick: %w", err)
	}

	if err := scheduler.Start(); err != nil {
		return nil, fmt.Errorf("failed to start scheduler: %w", err)
	}

	hour, minute := cfg.ReminderTime()
	logger.Info(
		"Scheduler started",
		"reminder_time", fmt.Sprintf("%02d:%02d", hour, minute),
		"entry_id", entryID,
	)

	return func() { scheduler.Shutdown() }, nil
}
