package store

import (
	"context"
	"errors"

	"github.com/teampulse/pulsebot/internal/models"
	"gorm.io/gorm"
)

const schedulerStateID = 1

// SchedulerState reads the single-row scheduler state, creating it on first
// access.
func (s *Store) SchedulerState(ctx context.Context) (*models.SchedulerState, error) {
	var state models.SchedulerState
	err := s.db.WithContext(ctx).
		Where(models.SchedulerState{ID: schedulerStateID}).
		FirstOrCreate(&state).Error
	if err != nil {
		return nil, persistErr("get scheduler state", err)
	}
	return &state, nil
}

// SetLastRunDate persists the reminder scheduler's last-run date
// (YYYY-MM-DD, organizational timezone).
func (s *Store) SetLastRunDate(ctx context.Context, date string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var state models.SchedulerState
		if err := tx.Where(models.SchedulerState{ID: schedulerStateID}).FirstOrCreate(&state).Error; err != nil {
			return err
		}
		return tx.Model(&state).Update("last_run_date", date).Error
	})
	if err != nil {
		return persistErr("set last run date", err)
	}
	return nil
}

// FeatureEnabled reports whether the named feature toggle is on. Unknown
// toggles are off.
func (s *Store) FeatureEnabled(ctx context.Context, name string) (bool, error) {
	var toggle models.FeatureToggle
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&toggle).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, persistErr("get feature toggle", err)
	}
	return toggle.Enabled, nil
}

// SetFeature sets the named feature toggle. Open attendance sessions are
// never closed retroactively by disabling tracking.
func (s *Store) SetFeature(ctx context.Context, name string, enabled bool) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var toggle models.FeatureToggle
		if err := tx.Where(models.FeatureToggle{Name: name}).FirstOrCreate(&toggle).Error; err != nil {
			return err
		}
		return tx.Model(&toggle).Update("enabled", enabled).Error
	})
	if err != nil {
		return persistErr("set feature toggle", err)
	}
	return nil
}

// ToggleFeature flips the named feature toggle and returns the new value.
func (s *Store) ToggleFeature(ctx context.Context, name string) (bool, error) {
	var newValue bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var toggle models.FeatureToggle
		if err := tx.Where(models.FeatureToggle{Name: name}).FirstOrCreate(&toggle).Error; err != nil {
			return err
		}
		newValue = !toggle.Enabled
		return tx.Model(&toggle).Update("enabled", newValue).Error
	})
	if err != nil {
		return false, persistErr("toggle feature", err)
	}
	return newValue, nil
}
