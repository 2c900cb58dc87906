// Package group provides read access to groups and their permissions.
package group

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/GoUserAdmin/GoUserAdmin/internal/db/models"
	"github.com/GoUserAdmin/GoUserAdmin/internal/dto"
)

// ErrDBNil is returned when the database connection is nil.
var ErrDBNil = errors.New("database connection is nil")

// Service lists groups.
type Service struct {
	db *gorm.DB
}

// NewService returns a Service using db.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns every group ordered by name. Permission keys are sorted.
func (s *Service) List(ctx context.Context) ([]dto.GroupResponse, error) {
	if s == nil || s.db == nil {
		return nil, ErrDBNil
	}

	db := s.db.WithContext(ctx)

	var groups []models.Group
	if err := db.Order("name").Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}

	var grants []models.GroupPermission
	if err := db.Model(&models.GroupPermission{}).Find(&grants).Error; err != nil {
		return nil, fmt.Errorf("list grants: %w", err)
	}

	var permissions []models.Permission
	if err := db.Find(&permissions).Error; err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}

	keys := make(map[int64]string, len(permissions))
	for _, p := range permissions {
		keys[p.ID] = p.Key
	}

	byGroup := make(map[int64][]string)
	for _, g := range grants {
		byGroup[g.GroupID] = append(byGroup[g.GroupID], keys[g.PermissionID])
	}

	out := make([]dto.GroupResponse, 0, len(groups))

	for _, g := range groups {
		perms := byGroup[g.ID]
		if perms == nil {
			perms = []string{}
		}

		sort.Strings(perms)

		out = append(out, dto.GroupResponse{
			ID:          g.ID,
			Name:        g.Name,
			Description: g.Description,
			CreatedAt:   g.CreatedAt.UTC(),
			Permissions: perms,
		})
	}

	return out, nil
}
