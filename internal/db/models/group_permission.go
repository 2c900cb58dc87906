package models

// GroupPermission grants a permission to a group.
// Deleting either side removes the grant (CASCADE).
type GroupPermission struct {
	GroupID      int64 `gorm:"primaryKey;column:group_id;autoIncrement:false"`
	PermissionID int64 `gorm:"primaryKey;column:permission_id;autoIncrement:false;index:idx_group_permissions_permission_id"`

	Group      Group      `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
	Permission Permission `gorm:"foreignKey:PermissionID;constraint:OnDelete:CASCADE"`
}

// TableName overrides gorm's naming.
func (GroupPermission) TableName() string {
	return "group_permissions"
}

// All lists every model in dependency order.
func All() []any {
	return []any{
		&User{},
		&Group{},
		&Permission{},
		&UserGroup{},
		&GroupPermission{},
	}
}
