// Package reminder implements the daily-reminder cycle: computing which
// active users still owe a daily update and notifying them once per day.
//
// Firing is guarded by two conditions that together survive restarts: the
// current organizational time must have reached the configured trigger
// time, and the persisted last-run date must not already be today. A
// restart after the trigger but before midnight therefore cannot fire a
// second time; a restart before the trigger still fires once when the time
// arrives.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/teampulse/pulsebot/internal/models"
	"github.com/teampulse/pulsebot/internal/notify"
	"github.com/teampulse/pulsebot/internal/orgtime"
	"github.com/teampulse/pulsebot/internal/store"
)

// DispatchGuard is a best-effort, once-per-day claim taken just before
// messages go out. It narrows the window in which a crash between dispatch
// and the last-run-date persist could re-send reminders. Guard failures
// degrade to the persisted-date behavior (at most one duplicate run).
type DispatchGuard interface {
	Acquire(ctx context.Context, date string) (bool, error)
}

// Service runs reminder cycles against the store and the notification
// dispatcher.
type Service struct {
	store    *store.Store
	notifier notify.Dispatcher
	guard    DispatchGuard
	logger   *slog.Logger

	triggerHour   int
	triggerMinute int
	channelID     string

	// Pause between direct messages so the gateway is not flooded.
	// Zeroed in tests.
	DMPause time.Duration
}

// New creates a reminder Service. guard may be nil; channelID may be empty,
// in which case the aggregated channel announcement is skipped silently.
func New(s *store.Store, n notify.Dispatcher, guard DispatchGuard, hour, minute int, channelID string, logger *slog.Logger) *Service {
	return &Service{
		store:         s,
		notifier:      n,
		guard:         guard,
		logger:        logger,
		triggerHour:   hour,
		triggerMinute: minute,
		channelID:     channelID,
		DMPause:       time.Second,
	}
}

// Result describes what one cycle did.
type Result struct {
	Fired      bool
	TargetDate string
	Pending    []string
	Notified   []string
}

// RunScheduled is invoked once per minute by the background scheduler. It
// fires the daily cycle when the trigger time has been reached and the
// cycle has not yet run today; otherwise it returns without side effects.
func (s *Service) RunScheduled(ctx context.Context, now time.Time) (*Result, error) {
	now = orgtime.In(now)
	if now.Hour() < s.triggerHour ||
		(now.Hour() == s.triggerHour && now.Minute() < s.triggerMinute) {
		return &Result{}, nil
	}

	state, err := s.store.SchedulerState(ctx)
	if err != nil {
		return nil, err
	}
	today := orgtime.DateOf(now)
	if state.LastRunDate == today {
		return &Result{}, nil
	}

	result, err := s.fire(ctx, now, false, "")
	if err != nil {
		return nil, err
	}

	// Persisting after dispatch means a crash in between causes at most
	// one duplicate run on restart; the dispatch guard absorbs that.
	if err := s.store.SetLastRunDate(ctx, today); err != nil {
		return nil, err
	}
	return result, nil
}

// RunManual runs an on-demand sweep requested by an admin or product
// owner. It never advances the last-run date, so the scheduled cycle still
// fires on its own, and unlike the scheduled cycle it runs on weekends too.
func (s *Service) RunManual(ctx context.Context, requestedBy string) (*Result, error) {
	return s.fire(ctx, orgtime.Now(), true, requestedBy)
}

func (s *Service) fire(ctx context.Context, now time.Time, manual bool, requestedBy string) (*Result, error) {
	cycleID := uuid.NewString()[:8]
	today := orgtime.DateOf(now)
	logger := s.logger.With("cycle_id", cycleID, "manual", manual)

	enabled, err := s.store.FeatureEnabled(ctx, models.FeatureDailyCollection)
	if err != nil {
		return nil, err
	}
	if !enabled {
		logger.Info("Daily collection disabled, skipping reminder cycle")
		return &Result{Fired: true}, nil
	}

	// Scheduled cycles stay quiet on weekends. A manual sweep is a
	// deliberate request and still runs, targeting the last workday.
	if !manual && orgtime.IsWeekend(now) {
		logger.Info("Weekend, skipping reminder cycle", "date", today)
		return &Result{Fired: true}, nil
	}

	targetDate := orgtime.PreviousWorkday(now)
	for _, date := range []string{today, targetDate} {
		ignored, err := s.store.ShouldIgnoreDate(ctx, date)
		if err != nil {
			return nil, err
		}
		if ignored {
			logger.Info("Date is configured as ignored, skipping reminder cycle", "date", date)
			return &Result{Fired: true, TargetDate: targetDate}, nil
		}
	}

	active, err := s.store.ActiveReportableUsers(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.store.MissingDailyUpdates(ctx, targetDate, active)
	if err != nil {
		return nil, err
	}

	result := &Result{Fired: true, TargetDate: targetDate, Pending: pending}
	if len(pending) == 0 {
		logger.Info("All daily updates submitted, nothing to remind", "target_date", targetDate)
		return result, nil
	}

	if !manual && s.guard != nil {
		acquired, err := s.guard.Acquire(ctx, today)
		if err != nil {
			logger.Warn("Dispatch guard unavailable, proceeding without it", "error", err.Error())
		} else if !acquired {
			logger.Info("Dispatch already performed today by an earlier attempt, skipping send")
			return result, nil
		}
	}

	logger.Info("Dispatching reminders", "target_date", targetDate, "pending", len(pending))
	for i, userID := range pending {
		if i > 0 && s.DMPause > 0 {
			time.Sleep(s.DMPause)
		}
		if err := s.notifier.SendDirect(ctx, userID, dmTitle(manual), s.dmBody(targetDate, manual, requestedBy)); err != nil {
			// One unreachable recipient never blocks the rest.
			logger.Error("Failed to send reminder", "user_id", userID, "error", err.Error())
			continue
		}
		result.Notified = append(result.Notified, userID)
	}

	if s.channelID == "" {
		logger.Info("No reminder channel configured, skipping channel announcement")
		return result, nil
	}
	if err := s.notifier.PostChannel(ctx, s.channelID, channelTitle(manual), channelBody(targetDate, pending, requestedBy)); err != nil {
		logger.Error("Failed to post channel announcement", "channel_id", s.channelID, "error", err.Error())
	}
	return result, nil
}

func dmTitle(manual bool) string {
	if manual {
		return "Daily update requested"
	}
	return "Reminder: daily update pending"
}

func (s *Service) dmBody(targetDate string, manual bool, requestedBy string) string {
	if manual {
		return fmt.Sprintf(
			"Project management (%s) noticed your daily update for %s is still missing. Please submit it as soon as possible.",
			requestedBy, targetDate)
	}
	return fmt.Sprintf(
		"You have not submitted your daily update for %s yet. Please describe what you worked on that day.",
		targetDate)
}

func channelTitle(manual bool) string {
	if manual {
		return "Pending daily updates (management sweep)"
	}
	return "Pending daily updates"
}

func channelBody(targetDate string, pending []string, requestedBy string) string {
	body := fmt.Sprintf("Daily updates for %s are still missing from:\n", targetDate)
	for _, userID := range pending {
		body += fmt.Sprintf("  - <@%s>\n", userID)
	}
	if requestedBy != "" {
		body += fmt.Sprintf("\nSweep requested by <@%s>.", requestedBy)
	}
	return body
}
