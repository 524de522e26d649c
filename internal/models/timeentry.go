package models

import (
	"time"

	"gorm.io/gorm"
)

// TimeEntry is one attendance session: a clock-in and, once closed, the
// matching clock-out. An open entry has a nil ClockOut. Strict in/out
// alternation is equivalent to "at most one open entry per user", enforced
// by the partial unique index on open rows so that two concurrent
// clock-ins can never both commit.
type TimeEntry struct {
	gorm.Model
	UserExternalID string     `gorm:"column:user_external_id;not null;index;uniqueIndex:idx_time_entries_one_open,where:clock_out IS NULL AND deleted_at IS NULL"`
	ClockIn        time.Time  `gorm:"not null"`
	ClockOut       *time.Time `gorm:"index"`
	Observation    string     `gorm:"type:text"`
}

// Open reports whether the entry is still missing its clock-out.
func (e TimeEntry) Open() bool {
	return e.ClockOut == nil
}

// Duration returns the session length for a closed entry, zero otherwise.
func (e TimeEntry) Duration() time.Duration {
	if e.ClockOut == nil {
		return 0
	}
	return e.ClockOut.Sub(e.ClockIn)
}
