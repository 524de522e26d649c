// Package daily implements daily-update submission and period reporting.
// A daily update describes a calendar date in the organizational timezone;
// the asynchronous-standup convention is that an update without an explicit
// date reports on the previous day.
package daily

import (
	"context"
	"errors"
	"fmt"

	"github.com/teampulse/pulsebot/internal/models"
	"github.com/teampulse/pulsebot/internal/orgtime"
	"github.com/teampulse/pulsebot/internal/store"
)

// Validation errors reported to the caller; no state changes.
var (
	ErrBadDate    = errors.New("malformed date, expected YYYY-MM-DD")
	ErrFutureDate = errors.New("date is in the future")
	ErrEmpty      = errors.New("update content is empty")
)

// Periods accepted by View.
const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

// Tracker coordinates daily updates through the store.
type Tracker struct {
	store *store.Store
}

// New creates a Tracker.
func New(s *store.Store) *Tracker {
	return &Tracker{store: s}
}

// Submit stores a daily update for the user. An empty reportDate defaults
// to yesterday in the organizational timezone. Future dates are rejected;
// resubmitting for a date overwrites the previous content.
func (t *Tracker) Submit(ctx context.Context, externalID, reportDate, content string) (string, error) {
	if content == "" {
		return "", ErrEmpty
	}
	if _, err := t.store.GetUser(ctx, externalID); err != nil {
		return "", err
	}

	if reportDate == "" {
		reportDate = orgtime.Yesterday()
	}
	if _, err := orgtime.ParseDate(reportDate); err != nil {
		return "", fmt.Errorf("%w: %q", ErrBadDate, reportDate)
	}
	if reportDate > orgtime.Today() {
		return "", fmt.Errorf("%w: %s", ErrFutureDate, reportDate)
	}

	if err := t.store.UpsertDailyUpdate(ctx, externalID, reportDate, content, orgtime.Now()); err != nil {
		return "", err
	}
	return reportDate, nil
}

// View returns the user's updates within the trailing week or month window
// anchored to now, ordered by date.
func (t *Tracker) View(ctx context.Context, externalID, period string) ([]models.DailyUpdate, error) {
	now := orgtime.Now()
	var from string
	switch period {
	case PeriodWeek:
		from = orgtime.DateOf(now.AddDate(0, 0, -7))
	case PeriodMonth:
		from = orgtime.DateOf(now.AddDate(0, -1, 0))
	default:
		return nil, fmt.Errorf("unknown period %q", period)
	}
	return t.store.DailyUpdates(ctx, externalID, from, orgtime.Today())
}

// CoverageCell is one (user, date) slot in a coverage report.
type CoverageCell struct {
	User      string `json:"user"`
	Date      string `json:"date"`
	Submitted bool   `json:"submitted"`
	Content   string `json:"content,omitempty"`
}

// Report returns, per date and per active user in scope, whether an update
// exists and its content. roleFilter narrows the user set like
// Store.ListUsers; weekends inside the range are skipped.
func (t *Tracker) Report(ctx context.Context, fromDate, toDate, roleFilter string) ([]CoverageCell, error) {
	from, err := orgtime.ParseDate(fromDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadDate, fromDate)
	}
	to, err := orgtime.ParseDate(toDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadDate, toDate)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range %s..%s", ErrBadDate, fromDate, toDate)
	}

	users, err := t.store.ListUsers(ctx, roleFilter)
	if err != nil {
		return nil, err
	}
	updates, err := t.store.AllDailyUpdates(ctx, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	byUserDate := make(map[string]map[string]string)
	for user, list := range updates {
		byUserDate[user] = make(map[string]string, len(list))
		for _, u := range list {
			byUserDate[user][u.ReportDate] = u.Content
		}
	}

	var cells []CoverageCell
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if orgtime.IsWeekend(d) {
			continue
		}
		date := orgtime.DateOf(d)
		for _, u := range users {
			if u.Role == models.RoleAdmin {
				continue
			}
			content, ok := byUserDate[u.ExternalID][date]
			cells = append(cells, CoverageCell{
				User:      u.ExternalID,
				Date:      date,
				Submitted: ok,
				Content:   content,
			})
		}
	}
	return cells, nil
}
