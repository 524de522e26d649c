package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/teampulse/pulsebot/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.TimeEntry{},
		&models.DailyUpdate{},
		&models.ReleaseAnnouncement{},
		&models.SchedulerState{},
		&models.FeatureToggle{},
		&models.IgnoredDate{},
	))
	return New(db)
}

func registerUser(t *testing.T, s *Store, externalID, role string) {
	t.Helper()
	_, err := s.UpsertUser(context.Background(), externalID, "user "+externalID, role, "admin-1")
	require.NoError(t, err)
}
