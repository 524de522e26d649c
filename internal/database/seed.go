package database

import (
	"log"
	"time"

	"github.com/teampulse/pulsebot/internal/models"
	"github.com/teampulse/pulsebot/internal/orgtime"
	"gorm.io/gorm"
)

// SeedDevData populates the database with development test data.
// Idempotent: skips if data already exists.
func SeedDevData(db *gorm.DB) error {
	var existing models.User
	result := db.Where("external_id = ?", "dev-admin").First(&existing)
	if result.Error == nil {
		log.Println("Seed data already exists, skipping")
		return nil
	}

	users := []models.User{
		{ExternalID: "dev-admin", Name: "Dev Admin", Role: models.RoleAdmin, RegisteredBy: "seed"},
		{ExternalID: "dev-po", Name: "Dev PO", Role: models.RoleProductOwner, RegisteredBy: "seed"},
		{ExternalID: "dev-member", Name: "Dev Member", Role: models.RoleMember, RegisteredBy: "seed"},
	}
	for i := range users {
		if err := db.Create(&users[i]).Error; err != nil {
			return err
		}
	}

	// One closed attendance session and one daily update for yesterday, so
	// reports and the reminder query have something to chew on locally.
	in := orgtime.Now().Add(-4 * time.Hour)
	out := orgtime.Now().Add(-30 * time.Minute)
	entry := models.TimeEntry{
		UserExternalID: "dev-member",
		ClockIn:        in,
		ClockOut:       &out,
	}
	if err := db.Create(&entry).Error; err != nil {
		return err
	}

	update := models.DailyUpdate{
		UserExternalID: "dev-member",
		ReportDate:     orgtime.Yesterday(),
		Content:        "Wired up the dev environment.",
		SubmittedAt:    orgtime.Now(),
		LastUpdatedAt:  orgtime.Now(),
	}
	if err := db.Create(&update).Error; err != nil {
		return err
	}

	log.Println("Seeded dev data: 3 users, 1 time entry, 1 daily update")
	return nil
}
