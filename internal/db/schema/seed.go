package schema

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/GoUserAdmin/GoUserAdmin/internal/db/models"
)

// Seeded group ids.
const (
	GroupAdmin  int64 = 1
	GroupLevel1 int64 = 2
	GroupLevel2 int64 = 3
)

// SeedTime is the creation time of every seeded row.
var SeedTime = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC) //nolint:gochecknoglobals

// SeedGroups returns the reference groups.
func SeedGroups() []models.Group {
	return []models.Group{
		{ID: GroupAdmin, Name: "Admin", Description: "Full access", CreatedAt: SeedTime},
		{ID: GroupLevel1, Name: "Level1", Description: "Operational access", CreatedAt: SeedTime},
		{ID: GroupLevel2, Name: "Level2", Description: "Read-only access", CreatedAt: SeedTime},
	}
}

// SeedPermissions returns the reference permissions.
func SeedPermissions() []models.Permission {
	return []models.Permission{
		{ID: 1, Key: "users.read", Description: "View users"},
		{ID: 2, Key: "users.manage", Description: "Create/update/deactivate users"},
		{ID: 3, Key: "groups.read", Description: "View groups"},
		{ID: 4, Key: "groups.manage", Description: "Create/update/delete groups"},
		{ID: 5, Key: "permissions.read", Description: "View permissions"},
		{ID: 6, Key: "billing.read", Description: "View billing"},
		{ID: 7, Key: "billing.manage", Description: "Manage billing"},
		{ID: 8, Key: "reports.read", Description: "View reports"},
		{ID: 9, Key: "reports.export", Description: "Export reports"},
	}
}

// SeedGrants returns which permission ids each seeded group holds.
func SeedGrants() map[int64][]int64 {
	return map[int64][]int64{
		GroupAdmin:  {1, 2, 3, 4, 5, 6, 7, 8, 9},
		GroupLevel1: {1, 3, 5, 6, 8, 9},
		GroupLevel2: {6, 8},
	}
}

// Seed inserts the reference data. Existing rows are left untouched, so Seed
// can run on every start.
func Seed(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return ErrDBNil
	}

	groups := SeedGroups()
	permissions := SeedPermissions()

	grants := make([]models.GroupPermission, 0)

	for _, g := range groups {
		for _, pid := range SeedGrants()[g.ID] {
			grants = append(grants, models.GroupPermission{GroupID: g.ID, PermissionID: pid})
		}
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		insert := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Omit(clause.Associations).
			Session(&gorm.Session{})

		if err := insert.Create(&groups).Error; err != nil {
			return errors.Wrap(err, "seed groups")
		}

		if err := insert.Create(&permissions).Error; err != nil {
			return errors.Wrap(err, "seed permissions")
		}

		if err := insert.Create(&grants).Error; err != nil {
			return errors.Wrap(err, "seed group permissions")
		}

		return nil
	})
	if err != nil {
		return err //nolint:wrapcheck
	}

	if db.Name() == "postgres" {
		return syncSequences(ctx, db)
	}

	return nil
}

// syncSequences moves the postgres id sequences past the explicitly inserted ids.
func syncSequences(ctx context.Context, db *gorm.DB) error {
	for _, table := range []string{"groups", "permissions"} {
		stmt := `SELECT setval(pg_get_serial_sequence('"` + table + `"', 'id'), ` +
			`(SELECT COALESCE(MAX(id), 1) FROM "` + table + `"))`

		if err := db.WithContext(ctx).Exec(stmt).Error; err != nil {
			return errors.Wrapf(err, "sync %s id sequence", table)
		}
	}

	return nil
}
