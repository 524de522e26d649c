package store

import (
	"context"
	"time"

	"github.com/teampulse/pulsebot/internal/models"
	"gorm.io/gorm"
)

// AddIgnoredDate records an inclusive date range to skip in daily-update
// collection. Dates must already be validated YYYY-MM-DD strings.
func (s *Store) AddIgnoredDate(ctx context.Context, startDate, endDate, createdBy string) (*models.IgnoredDate, error) {
	row := models.IgnoredDate{
		StartDate: startDate,
		EndDate:   endDate,
		CreatedAt: time.Now().UTC(),
		CreatedBy: createdBy,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, persistErr("add ignored date", err)
	}
	return &row, nil
}

// RemoveIgnoredDate deletes one ignored-date range by id.
func (s *Store) RemoveIgnoredDate(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.IgnoredDate{}, id)
	if result.Error != nil {
		return persistErr("remove ignored date", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListIgnoredDates returns all configured ranges ordered by start date.
func (s *Store) ListIgnoredDates(ctx context.Context) ([]models.IgnoredDate, error) {
	var rows []models.IgnoredDate
	if err := s.db.WithContext(ctx).Order("start_date").Find(&rows).Error; err != nil {
		return nil, persistErr("list ignored dates", err)
	}
	return rows, nil
}

// ShouldIgnoreDate reports whether the given YYYY-MM-DD date falls inside
// any configured range. String comparison is correct for this layout.
func (s *Store) ShouldIgnoreDate(ctx context.Context, date string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.IgnoredDate{}).
		Where("start_date <= ? AND end_date >= ?", date, date).
		Count(&count).Error
	if err != nil {
		return false, persistErr("check ignored date", err)
	}
	return count > 0, nil
}

// ClearIgnoredDates removes every configured range.
func (s *Store) ClearIgnoredDates(ctx context.Context) error {
	err := s.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.IgnoredDate{}).Error
	if err != nil {
		return persistErr("clear ignored dates", err)
	}
	return nil
}
