package models

import "time"

// UserGroup is the membership of a user in a group.
// Deleting either side removes the membership (CASCADE).
type UserGroup struct {
	UserID  int64 `gorm:"primaryKey;column:user_id;autoIncrement:false"`
	GroupID int64 `gorm:"primaryKey;column:group_id;autoIncrement:false;index:idx_user_groups_group_id"`
	// AddedAt is the UTC time the membership was created.
	AddedAt time.Time `gorm:"not null"`

	// User and Group only carry the foreign key constraints, they are never loaded.
	User  User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Group Group `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
}

// TableName overrides gorm's naming.
func (UserGroup) TableName() string {
	return "user_groups"
}
