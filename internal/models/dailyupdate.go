package models

import (
	"time"
)

// DailyUpdate is an asynchronous status report tied to a calendar date in
// the organizational timezone (ReportDate, YYYY-MM-DD), not to submission
// time. The (user, date) pair is unique; resubmission overwrites Content.
type DailyUpdate struct {
	ID             uint      `gorm:"primaryKey"`
	UserExternalID string    `gorm:"column:user_external_id;not null;uniqueIndex:idx_daily_user_date"`
	ReportDate     string    `gorm:"not null;uniqueIndex:idx_daily_user_date"`
	Content        string    `gorm:"type:text;not null"`
	SubmittedAt    time.Time `gorm:"not null"`
	LastUpdatedAt  time.Time `gorm:"not null"`
}
