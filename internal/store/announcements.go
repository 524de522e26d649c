package store

import (
	"context"
	"time"

	"github.com/teampulse/pulsebot/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

// RecordAnnouncement atomically claims a version for announcement. The
// insert-if-absent runs as a single statement (ON CONFLICT DO NOTHING), so
// of two concurrent claims exactly one succeeds; the loser gets
// ErrVersionAnnounced and must not send.
func (s *Store) RecordAnnouncement(ctx context.Context, version string, changes []byte) error {
	row := models.ReleaseAnnouncement{
		Version:     version,
		AnnouncedAt: time.Now().UTC(),
		Changes:     datatypes.JSON(changes),
	}
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row)
	if result.Error != nil {
		return persistErr("record announcement", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrVersionAnnounced
	}
	return nil
}

// AnnouncedVersions returns every version ever announced. Ordering is
// left to the caller; version strings sort semantically, not lexically.
func (s *Store) AnnouncedVersions(ctx context.Context) ([]string, error) {
	var versions []string
	err := s.db.WithContext(ctx).
		Model(&models.ReleaseAnnouncement{}).
		Pluck("version", &versions).Error
	if err != nil {
		return nil, persistErr("list announced versions", err)
	}
	return versions, nil
}
