package models

// Permission is a named capability in dotted resource.action form, e.g. "users.read".
// Permissions are data only, nothing enforces them.
type Permission struct {
	ID int64 `gorm:"primaryKey;autoIncrement"`
	// Key is unique across permissions.
	Key string `gorm:"size:150;not null;uniqueIndex:idx_permissions_key"`
	// Description is optional.
	Description string `gorm:"size:400"`
}

// TableName overrides gorm's naming.
func (Permission) TableName() string {
	return "permissions"
}
