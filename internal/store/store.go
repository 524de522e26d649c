// Package store owns all durable state: users, attendance sessions, daily
// updates, release-announcement markers, scheduler state, feature toggles
// and ignored dates. Every other component goes through this contract;
// mutating operations run inside a transaction so a failure partway leaves
// prior state intact.
package store

import (
	"gorm.io/gorm"
)

// Store provides transactional access to the persistent record model.
type Store struct {
	db *gorm.DB
}

// New creates a Store over an initialized gorm connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}
