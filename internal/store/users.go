package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/teampulse/pulsebot/internal/models"
	"gorm.io/gorm"
)

// RoleAll matches every role in ListUsers.
const RoleAll = "all"

// UpsertUser registers a user or, if the external id is already known,
// updates their name, role and registering admin. Returns true when a new
// record was created.
func (s *Store) UpsertUser(ctx context.Context, externalID, name, role, registeredBy string) (bool, error) {
	if !models.ValidRole(role) {
		return false, fmt.Errorf("invalid role %q", role)
	}

	created := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.User
		err := tx.Where("external_id = ?", externalID).First(&existing).Error
		switch {
		case err == nil:
			return tx.Model(&existing).Updates(map[string]interface{}{
				"name":          name,
				"role":          role,
				"registered_by": registeredBy,
			}).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			created = true
			user := models.User{
				ExternalID:   externalID,
				Name:         name,
				Role:         role,
				RegisteredBy: registeredBy,
			}
			return tx.Create(&user).Error
		default:
			return err
		}
	})
	if err != nil {
		return false, persistErr("upsert user", err)
	}
	return created, nil
}

// GetUser looks up an active user by external id.
func (s *Store) GetUser(ctx context.Context, externalID string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("external_id = ?", externalID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, persistErr("get user", err)
	}
	return &user, nil
}

// RemoveUser soft-deletes a user. Removed users no longer appear in any
// listing, pending-reminder or report computation; their historical records
// stay intact.
func (s *Store) RemoveUser(ctx context.Context, externalID string) error {
	result := s.db.WithContext(ctx).Where("external_id = ?", externalID).Delete(&models.User{})
	if result.Error != nil {
		return persistErr("remove user", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ListUsers returns active users, optionally filtered by role. roleFilter
// may be a role constant, RoleAll, or empty (same as RoleAll).
func (s *Store) ListUsers(ctx context.Context, roleFilter string) ([]models.User, error) {
	q := s.db.WithContext(ctx).Order("external_id")
	if roleFilter != "" && roleFilter != RoleAll {
		if !models.ValidRole(roleFilter) {
			return nil, fmt.Errorf("invalid role filter %q", roleFilter)
		}
		q = q.Where("role = ?", roleFilter)
	}

	var users []models.User
	if err := q.Find(&users).Error; err != nil {
		return nil, persistErr("list users", err)
	}
	return users, nil
}

// ActiveReportableUsers returns the external ids of users whose daily
// updates are collected: members and product owners, never admins.
func (s *Store) ActiveReportableUsers(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role IN ?", []string{models.RoleMember, models.RoleProductOwner}).
		Order("external_id").
		Pluck("external_id", &ids).Error
	if err != nil {
		return nil, persistErr("list reportable users", err)
	}
	return ids, nil
}
