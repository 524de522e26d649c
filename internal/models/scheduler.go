package models

import "time"

// Feature names for the FeatureToggle table.
const (
	FeatureAttendance      = "attendance"
	FeatureDailyCollection = "daily_collection"
)

// SchedulerState is a single-row record (ID always 1) holding the last
// reminder-run date. Persisting it keeps the fire-once-per-day guarantee
// across process restarts.
type SchedulerState struct {
	ID          uint   `gorm:"primaryKey"`
	LastRunDate string `gorm:"not null;default:''"`
}

// FeatureToggle is a persisted on/off switch keyed by feature name.
type FeatureToggle struct {
	Name    string `gorm:"primaryKey"`
	Enabled bool   `gorm:"not null;default:false"`
}

// IgnoredDate is an inclusive calendar-date range during which daily-update
// collection is suspended (holidays, team offsites). Dates are YYYY-MM-DD
// in the organizational timezone.
type IgnoredDate struct {
	ID        uint      `gorm:"primaryKey"`
	StartDate string    `gorm:"not null"`
	EndDate   string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	CreatedBy string    `gorm:"not null"`
}
