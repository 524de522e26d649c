// Package tracker implements the attendance state machine: per user,
// OUT -> (clock-in) -> IN -> (clock-out) -> OUT, gated by the system-wide
// tracking toggle.
package tracker

import (
	"context"
	"time"

	"github.com/teampulse/pulsebot/internal/models"
	"github.com/teampulse/pulsebot/internal/orgtime"
	"github.com/teampulse/pulsebot/internal/store"
)

// Tracker coordinates clock operations through the store.
type Tracker struct {
	store *store.Store
}

// New creates a Tracker.
func New(s *store.Store) *Tracker {
	return &Tracker{store: s}
}

// Report is the result of a period query: per-user totals plus any
// currently-open sessions, reported as a caveat rather than an error.
type Report struct {
	Users map[string]*store.HoursSummary
}

func (t *Tracker) trackingEnabled(ctx context.Context) (bool, error) {
	return t.store.FeatureEnabled(ctx, models.FeatureAttendance)
}

// ClockIn opens a session for the user at the current organizational time.
// Fails with a StateError when tracking is disabled or a session is open.
func (t *Tracker) ClockIn(ctx context.Context, externalID, observation string) (time.Time, error) {
	enabled, err := t.trackingEnabled(ctx)
	if err != nil {
		return time.Time{}, err
	}
	if !enabled {
		return time.Time{}, &store.StateError{Reason: "tracking disabled"}
	}

	entry, err := t.store.ClockIn(ctx, externalID, orgtime.Now(), observation)
	if err != nil {
		return time.Time{}, err
	}
	return entry.ClockIn, nil
}

// ClockOut closes the user's open session and returns the elapsed session
// duration. Fails with a StateError when no session is open.
func (t *Tracker) ClockOut(ctx context.Context, externalID, observation string) (time.Duration, error) {
	enabled, err := t.trackingEnabled(ctx)
	if err != nil {
		return 0, err
	}
	if !enabled {
		return 0, &store.StateError{Reason: "tracking disabled"}
	}

	entry, err := t.store.ClockOut(ctx, externalID, orgtime.Now(), observation)
	if err != nil {
		return 0, err
	}
	return entry.Duration(), nil
}

// Status returns the user's open session, or nil when clocked out.
func (t *Tracker) Status(ctx context.Context, externalID string) (*models.TimeEntry, error) {
	return t.store.OpenEntry(ctx, externalID)
}

// ToggleTracking flips the system-wide tracking flag and returns the new
// value. Disabling never closes open sessions retroactively.
func (t *Tracker) ToggleTracking(ctx context.Context) (bool, error) {
	return t.store.ToggleFeature(ctx, models.FeatureAttendance)
}

// SetTracking sets the system-wide tracking flag.
func (t *Tracker) SetTracking(ctx context.Context, enabled bool) error {
	return t.store.SetFeature(ctx, models.FeatureAttendance, enabled)
}

// ReportHours aggregates hours over [from, to]. Pass an empty externalID
// for all users.
func (t *Tracker) ReportHours(ctx context.Context, externalID string, from, to time.Time) (*Report, error) {
	users, err := t.store.ComputeHours(ctx, externalID, from, to)
	if err != nil {
		return nil, err
	}
	return &Report{Users: users}, nil
}
