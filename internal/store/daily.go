package store

import (
	"context"
	"time"

	"github.com/teampulse/pulsebot/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UpsertDailyUpdate stores a daily update for (user, date), overwriting the
// content of any prior submission for the same date. The uniqueness
// invariant is enforced by the composite index plus an ON CONFLICT update,
// so a concurrent resubmission can never produce a duplicate row.
func (s *Store) UpsertDailyUpdate(ctx context.Context, externalID, reportDate, content string, submittedAt time.Time) error {
	update := models.DailyUpdate{
		UserExternalID: externalID,
		ReportDate:     reportDate,
		Content:        content,
		SubmittedAt:    submittedAt,
		LastUpdatedAt:  submittedAt,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_external_id"}, {Name: "report_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"content", "last_updated_at"}),
	}).Create(&update).Error
	if err != nil {
		return persistErr("upsert daily update", err)
	}
	return nil
}

// DailyUpdates returns one user's updates with report dates inside
// [fromDate, toDate], ordered by date. Empty bounds are unbounded.
func (s *Store) DailyUpdates(ctx context.Context, externalID, fromDate, toDate string) ([]models.DailyUpdate, error) {
	q := s.db.WithContext(ctx).Where("user_external_id = ?", externalID)
	if fromDate != "" {
		q = q.Where("report_date >= ?", fromDate)
	}
	if toDate != "" {
		q = q.Where("report_date <= ?", toDate)
	}

	var updates []models.DailyUpdate
	if err := q.Order("report_date").Find(&updates).Error; err != nil {
		return nil, persistErr("query daily updates", err)
	}
	return updates, nil
}

// AllDailyUpdates returns every update with a report date inside
// [fromDate, toDate], grouped by user external id.
func (s *Store) AllDailyUpdates(ctx context.Context, fromDate, toDate string) (map[string][]models.DailyUpdate, error) {
	var updates []models.DailyUpdate
	err := s.db.WithContext(ctx).
		Where("report_date >= ? AND report_date <= ?", fromDate, toDate).
		Order("user_external_id, report_date").
		Find(&updates).Error
	if err != nil {
		return nil, persistErr("query all daily updates", err)
	}

	grouped := make(map[string][]models.DailyUpdate)
	for _, u := range updates {
		grouped[u.UserExternalID] = append(grouped[u.UserExternalID], u)
	}
	return grouped, nil
}

// MissingDailyUpdates returns the users from activeUsers with no update
// recorded for reportDate, preserving input order.
func (s *Store) MissingDailyUpdates(ctx context.Context, reportDate string, activeUsers []string) ([]string, error) {
	if len(activeUsers) == 0 {
		return nil, nil
	}

	var submitted []string
	err := s.db.WithContext(ctx).
		Model(&models.DailyUpdate{}).
		Where("report_date = ? AND user_external_id IN ?", reportDate, activeUsers).
		Distinct().
		Pluck("user_external_id", &submitted).Error
	if err != nil {
		return nil, persistErr("query missing daily updates", err)
	}

	seen := make(map[string]bool, len(submitted))
	for _, id := range submitted {
		seen[id] = true
	}

	var missing []string
	for _, id := range activeUsers {
		if !seen[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// HasDailyUpdate reports whether the user already submitted for reportDate.
func (s *Store) HasDailyUpdate(ctx context.Context, externalID, reportDate string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.DailyUpdate{}).
		Where("user_external_id = ? AND report_date = ?", externalID, reportDate).
		Count(&count).Error
	if err != nil {
		return false, persistErr("query daily update", err)
	}
	return count > 0, nil
}

// ClearDailyUpdates is the administrative bulk wipe of daily updates, for
// test/reset use only. Clock entries and users are untouched.
func (s *Store) ClearDailyUpdates(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.DailyUpdate{})
	if result.Error != nil {
		return 0, persistErr("clear daily updates", result.Error)
	}
	return result.RowsAffected, nil
}
