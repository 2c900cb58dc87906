// Package models contains the gorm models of the user management schema.
// Rows reference each other by id; join tables are flat records.
package models

import "time"

// User is a managed account.
type User struct {
	// ID is generated by the database.
	ID int64 `gorm:"primaryKey;autoIncrement"`
	// Email is unique across all users, stored trimmed.
	Email string `gorm:"size:256;not null;uniqueIndex:idx_users_email"`
	// DisplayName is stored trimmed.
	DisplayName string `gorm:"size:200;not null"`
	// IsActive has no database default; callers always set it explicitly.
	IsActive bool `gorm:"not null"`
	// CreatedAt is set once in UTC and never updated.
	CreatedAt time.Time `gorm:"not null"`
}

// TableName overrides gorm's naming.
func (User) TableName() string {
	return "users"
}
