package models

import (
	"gorm.io/gorm"
)

// User roles. Roles form a closed set; permission checks compare against
// these constants rather than free-form strings.
const (
	RoleMember       = "member"
	RoleProductOwner = "product_owner"
	RoleAdmin        = "admin"
)

// ValidRole reports whether role is one of the known role constants.
func ValidRole(role string) bool {
	switch role {
	case RoleMember, RoleProductOwner, RoleAdmin:
		return true
	}
	return false
}

// User represents a registered team member. ExternalID is the opaque chat
// platform identity; registration time is CreatedAt. Removal is a soft
// delete so historical clock and update records keep a valid reference.
type User struct {
	gorm.Model
	ExternalID   string `gorm:"uniqueIndex:idx_users_external_id_not_deleted,where:deleted_at IS NULL;not null"`
	Name         string `gorm:"not null;default:''"`
	Role         string `gorm:"not null;default:'member'"`
	RegisteredBy string `gorm:"not null;default:''"`
}
