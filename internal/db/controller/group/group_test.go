package group

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoUserAdmin/GoUserAdmin/internal/db/dbtest"
	"github.com/GoUserAdmin/GoUserAdmin/internal/db/models"
	"github.com/GoUserAdmin/GoUserAdmin/internal/db/schema"
)

func TestList_NilDB(t *testing.T) {
	_, err := NewService(nil).List(context.Background())
	assert.ErrorIs(t, err, ErrDBNil)
}

func TestList(t *testing.T) {
	groups, err := NewService(dbtest.New(t)).List(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 3)

	assert.Equal(t, "Admin", groups[0].Name)
	assert.Equal(t, "Full access", groups[0].Description)
	assert.Len(t, groups[0].Permissions, 9)
	assert.True(t, groups[0].CreatedAt.Equal(schema.SeedTime))

	assert.Equal(t, "Level1", groups[1].Name)
	assert.Equal(t, []string{
		"billing.read", "groups.read", "permissions.read", "reports.export", "reports.read", "users.read",
	}, groups[1].Permissions)

	assert.Equal(t, "Level2", groups[2].Name)
	assert.Equal(t, []string{"billing.read", "reports.read"}, groups[2].Permissions)
}

func TestList_GroupWithoutPermissions(t *testing.T) {
	db := dbtest.New(t)

	require.NoError(t, db.Create(&models.Group{Name: "Auditors", CreatedAt: schema.SeedTime}).Error)

	groups, err := NewService(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 4)

	assert.Equal(t, "Auditors", groups[1].Name)
	assert.NotNil(t, groups[1].Permissions)
	assert.Empty(t, groups[1].Permissions)
}
