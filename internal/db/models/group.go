package models

import "time"

// Group bundles permissions and has users as members.
type Group struct {
	// ID is generated by the database, seeded groups use fixed ids.
	ID int64 `gorm:"primaryKey;autoIncrement"`
	// Name is unique across groups.
	Name string `gorm:"size:100;not null;uniqueIndex:idx_groups_name"`
	// Description is optional.
	Description string `gorm:"size:400"`
	// CreatedAt is set once in UTC.
	CreatedAt time.Time `gorm:"not null"`
}

// TableName overrides gorm's naming.
func (Group) TableName() string {
	return "groups"
}
