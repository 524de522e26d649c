package store

import (
	"context"
	"errors"
	"time"

	"github.com/teampulse/pulsebot/internal/models"
	"gorm.io/gorm"
)

// HoursSummary aggregates one user's attendance over a window. Open
// sessions are excluded from Total and reported separately so callers can
// distinguish "still clocked in" from "forgot to clock out".
type HoursSummary struct {
	Total        time.Duration
	Entries      []models.TimeEntry
	OpenSessions []models.TimeEntry
}

// Hours returns the total as fractional hours.
func (h *HoursSummary) Hours() float64 {
	return h.Total.Hours()
}

// ClockIn opens a new attendance session at the given timestamp. Fails with
// a StateError if the user already has an open session. The partial unique
// index on open rows makes the insert an atomic claim, so of two concurrent
// clock-ins exactly one commits and the other observes the violation.
func (s *Store) ClockIn(ctx context.Context, externalID string, at time.Time, observation string) (*models.TimeEntry, error) {
	entry := models.TimeEntry{
		UserExternalID: externalID,
		ClockIn:        at,
		Observation:    observation,
	}

	err := s.db.WithContext(ctx).Create(&entry).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, &StateError{Reason: "already clocked in"}
	}
	if err != nil {
		return nil, persistErr("clock in", err)
	}
	return &entry, nil
}

// ClockOut closes the user's open session at the given timestamp and
// returns the completed entry. Fails with a StateError if no session is
// open. A non-empty observation replaces the one captured at clock-in.
func (s *Store) ClockOut(ctx context.Context, externalID string, at time.Time, observation string) (*models.TimeEntry, error) {
	var entry models.TimeEntry

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_external_id = ? AND clock_out IS NULL", externalID).
			Order("clock_in DESC").First(&entry).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &StateError{Reason: "not clocked in"}
		}
		if err != nil {
			return err
		}

		updates := map[string]interface{}{"clock_out": at}
		if observation != "" {
			updates["observation"] = observation
		}
		return tx.Model(&entry).Updates(updates).Error
	})
	if err != nil {
		if IsStateError(err) {
			return nil, err
		}
		return nil, persistErr("clock out", err)
	}

	entry.ClockOut = &at
	if observation != "" {
		entry.Observation = observation
	}
	return &entry, nil
}

// OpenEntry returns the user's unmatched clock-in, or nil when the user is
// clocked out.
func (s *Store) OpenEntry(ctx context.Context, externalID string) (*models.TimeEntry, error) {
	var entry models.TimeEntry
	err := s.db.WithContext(ctx).
		Where("user_external_id = ? AND clock_out IS NULL", externalID).
		Order("clock_in DESC").First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, persistErr("query open entry", err)
	}
	return &entry, nil
}

// ComputeHours sums closed sessions overlapping [from, to] per user. Pass
// an empty externalID to aggregate every user with entries in the window.
func (s *Store) ComputeHours(ctx context.Context, externalID string, from, to time.Time) (map[string]*HoursSummary, error) {
	closed := s.db.WithContext(ctx).
		Where("clock_out IS NOT NULL AND clock_in <= ? AND clock_out >= ?", to, from)
	open := s.db.WithContext(ctx).
		Where("clock_out IS NULL AND clock_in <= ?", to)
	if externalID != "" {
		closed = closed.Where("user_external_id = ?", externalID)
		open = open.Where("user_external_id = ?", externalID)
	}

	var closedEntries []models.TimeEntry
	if err := closed.Order("clock_in").Find(&closedEntries).Error; err != nil {
		return nil, persistErr("compute hours", err)
	}
	var openEntries []models.TimeEntry
	if err := open.Order("clock_in").Find(&openEntries).Error; err != nil {
		return nil, persistErr("compute hours", err)
	}

	result := make(map[string]*HoursSummary)
	summary := func(id string) *HoursSummary {
		if _, ok := result[id]; !ok {
			result[id] = &HoursSummary{}
		}
		return result[id]
	}
	for _, e := range closedEntries {
		sum := summary(e.UserExternalID)
		sum.Entries = append(sum.Entries, e)
		sum.Total += e.Duration()
	}
	for _, e := range openEntries {
		sum := summary(e.UserExternalID)
		sum.OpenSessions = append(sum.OpenSessions, e)
	}
	return result, nil
}

// ResetTimeEntries is the explicit administrative bulk wipe of attendance
// records. Users and daily updates are untouched.
func (s *Store) ResetTimeEntries(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Unscoped().Delete(&models.TimeEntry{})
	if result.Error != nil {
		return 0, persistErr("reset time entries", result.Error)
	}
	return result.RowsAffected, nil
}
