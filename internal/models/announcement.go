package models

import (
	"time"

	"gorm.io/datatypes"
)

// ReleaseAnnouncement marks a version as announced. Version is the primary
// key, so the claim is an atomic insert-if-absent; once a row exists the
// version can never be announced again. Changes keeps the categorized
// change lists as captured at announcement time, for operator audit.
type ReleaseAnnouncement struct {
	Version     string         `gorm:"primaryKey"`
	AnnouncedAt time.Time      `gorm:"not null"`
	Changes     datatypes.JSON `gorm:"type:json"`
}
