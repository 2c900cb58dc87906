// Package user implements the user aggregate: users together with their group memberships.
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/GoUserAdmin/GoUserAdmin/internal/db/models"
	"github.com/GoUserAdmin/GoUserAdmin/internal/dto"
)

// Service reads and mutates users. Every mutation runs in one transaction.
type Service struct {
	db *gorm.DB
}

// NewService returns a Service using db.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) conn(ctx context.Context) (*gorm.DB, error) {
	if s == nil || s.db == nil {
		return nil, ErrDBNil
	}

	return s.db.WithContext(ctx), nil
}

// GetByID returns the user with its groups, or nil if no such user exists.
func (s *Service) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	var u models.User
	if err := db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil //nolint:nilnil
		}

		return nil, fmt.Errorf("load user %d: %w", id, err)
	}

	refs, err := groupRefs(db, []int64{id})
	if err != nil {
		return nil, err
	}

	out := project(&u, refs[id])

	return &out, nil
}

// List returns every user ordered by id.
func (s *Service) List(ctx context.Context) ([]dto.UserResponse, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	var users []models.User
	if err := db.Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	refs, err := groupRefs(db, nil)
	if err != nil {
		return nil, err
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, project(&users[i], refs[users[i].ID]))
	}

	return out, nil
}

// Create stores a new user with its memberships and returns the new id.
// Email and display name are trimmed, duplicate group ids are collapsed.
func (s *Service) Create(ctx context.Context, req dto.CreateUserRequest) (int64, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return 0, err
	}

	var (
		now      = time.Now().UTC()
		groupIDs = distinct(req.GroupIDs)
		u        = models.User{
			Email:       strings.TrimSpace(req.Email),
			DisplayName: strings.TrimSpace(req.DisplayName),
			IsActive:    true,
			CreatedAt:   now,
		}
	)

	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := ensureEmailFree(tx, u.Email, 0); err != nil {
			return err
		}

		if err := ensureGroupsExist(tx, groupIDs); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(&u).Error; err != nil {
			return err //nolint:wrapcheck
		}

		return addMemberships(tx, u.ID, groupIDs, now)
	})
	if err != nil {
		return 0, translate(err, "create user")
	}

	return u.ID, nil
}

// Update applies the present fields of req to user id. A present GroupIDs,
// even an empty one, replaces all memberships. It reports false if the user does not exist.
func (s *Service) Update(ctx context.Context, id int64, req dto.UpdateUserRequest) (bool, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return false, err
	}

	var found bool

	err = db.Transaction(func(tx *gorm.DB) error {
		var u models.User
		if err := tx.Select("id").First(&u, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}

			return err //nolint:wrapcheck
		}

		found = true
		changes := map[string]any{}

		if req.Email != nil {
			email := strings.TrimSpace(*req.Email)
			if err := ensureEmailFree(tx, email, id); err != nil {
				return err
			}

			changes["email"] = email
		}

		if req.DisplayName != nil {
			changes["display_name"] = strings.TrimSpace(*req.DisplayName)
		}

		if req.IsActive != nil {
			changes["is_active"] = *req.IsActive
		}

		var groupIDs []int64
		if req.GroupIDs != nil {
			groupIDs = distinct(*req.GroupIDs)
			if err := ensureGroupsExist(tx, groupIDs); err != nil {
				return err
			}
		}

		if len(changes) > 0 {
			if err := tx.Model(&models.User{}).Where("id = ?", id).Updates(changes).Error; err != nil {
				return err //nolint:wrapcheck
			}
		}

		if req.GroupIDs == nil {
			return nil
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.UserGroup{}).Error; err != nil {
			return err //nolint:wrapcheck
		}

		return addMemberships(tx, id, groupIDs, time.Now().UTC())
	})
	if err != nil {
		return false, translate(err, fmt.Sprintf("update user %d", id))
	}

	return found, nil
}

// Delete removes the user and its memberships. It reports false if the user does not exist.
func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return false, err
	}

	var deleted bool

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.UserGroup{}).Error; err != nil {
			return err //nolint:wrapcheck
		}

		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return res.Error
		}

		deleted = res.RowsAffected > 0

		return nil
	})
	if err != nil {
		return false, fmt.Errorf("delete user %d: %w", id, err)
	}

	return deleted, nil
}

// TotalCount returns the number of users.
func (s *Service) TotalCount(ctx context.Context) (int64, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return 0, err
	}

	var n int64
	if err := db.Model(&models.User{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}

	return n, nil
}

// UsersPerGroup returns the member count of every group, empty groups included, ordered by group name.
func (s *Service) UsersPerGroup(ctx context.Context) ([]dto.UsersPerGroup, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	var groups []models.Group
	if err := db.Order("name").Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}

	var counts []struct {
		GroupID   int64
		UserCount int64
	}

	if err := db.Model(&models.UserGroup{}).
		Select("group_id, COUNT(*) AS user_count").
		Group("group_id").
		Scan(&counts).Error; err != nil {
		return nil, fmt.Errorf("count memberships: %w", err)
	}

	byGroup := make(map[int64]int64, len(counts))
	for _, c := range counts {
		byGroup[c.GroupID] = c.UserCount
	}

	out := make([]dto.UsersPerGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, dto.UsersPerGroup{
			GroupID:   g.ID,
			GroupName: g.Name,
			UserCount: byGroup[g.ID],
		})
	}

	return out, nil
}
