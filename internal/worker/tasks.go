package worker

import (
	"time"

	"github.com/hibiken/asynq"
)

// Task type constants
const (
	// TaskReminderTick wakes the reminder scheduler; the handler decides
	// whether the daily cycle actually fires.
	TaskReminderTick = "reminder:tick"

	// TaskAnnounceRelease checks for an unannounced release on startup.
	TaskAnnounceRelease = "release:announce"
)

// Package-level Asynq client (singleton)
var client *asynq.Client

// InitClient initializes the global Asynq client for task enqueueing.
// Must be called before any EnqueueX functions.
func InitClient(redisURL string) error {
	opt, err := asynq.ParseRedisURI(redisURL)
	if err != nil {
		return err
	}

	client = asynq.NewClient(opt)
	return nil
}

// CloseClient closes the Asynq client connection gracefully.
func CloseClient() error {
	if client != nil {
		return client.Close()
	}
	return nil
}

// EnqueueAnnounceRelease enqueues the startup release-announcement check.
// The claim inside the handler is what makes announcement at-most-once;
// uniqueness here just avoids queueing busywork when supervisor restarts
// overlap.
func EnqueueAnnounceRelease() error {
	task := asynq.NewTask(
		TaskAnnounceRelease,
		nil,
		asynq.MaxRetry(3),
		asynq.Timeout(2*time.Minute),
		asynq.Retention(24*time.Hour),
		asynq.Unique(10*time.Minute),
	)
	_, err := client.Enqueue(task)
	return err
}
