package user

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/GoUserAdmin/GoUserAdmin/internal/db/models"
	"github.com/GoUserAdmin/GoUserAdmin/internal/dto"
)

// distinct drops repeated ids, keeping the first occurrence.
func distinct(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}

	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}

// ensureEmailFree fails with ErrEmailAlreadyExists if a user other than exceptID owns email.
func ensureEmailFree(tx *gorm.DB, email string, exceptID int64) error {
	q := tx.Model(&models.User{}).Where("email = ?", email)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		return err //nolint:wrapcheck
	}

	if n > 0 {
		return ErrEmailAlreadyExists
	}

	return nil
}

// ensureGroupsExist fails with ErrInvalidGroupIDs unless every id names a group.
// ids must be distinct.
func ensureGroupsExist(tx *gorm.DB, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	var n int64
	if err := tx.Model(&models.Group{}).Where("id IN ?", ids).Count(&n).Error; err != nil {
		return err //nolint:wrapcheck
	}

	if n != int64(len(ids)) {
		return ErrInvalidGroupIDs
	}

	return nil
}

func addMemberships(tx *gorm.DB, userID int64, groupIDs []int64, addedAt time.Time) error {
	if len(groupIDs) == 0 {
		return nil
	}

	rows := make([]models.UserGroup, 0, len(groupIDs))
	for _, gid := range groupIDs {
		rows = append(rows, models.UserGroup{UserID: userID, GroupID: gid, AddedAt: addedAt})
	}

	return tx.Omit(clause.Associations).Create(&rows).Error //nolint:wrapcheck
}

// groupRefs loads the groups of the given users, all users when userIDs is nil.
// Each user's groups are ordered by group id.
func groupRefs(db *gorm.DB, userIDs []int64) (map[int64][]dto.GroupRef, error) {
	var memberships []models.UserGroup

	q := db.Model(&models.UserGroup{}).Order("user_id").Order("group_id")
	if userIDs != nil {
		q = q.Where("user_id IN ?", userIDs)
	}

	if err := q.Find(&memberships).Error; err != nil {
		return nil, fmt.Errorf("load memberships: %w", err)
	}

	out := make(map[int64][]dto.GroupRef)
	if len(memberships) == 0 {
		return out, nil
	}

	ids := make([]int64, 0, len(memberships))
	for _, m := range memberships {
		ids = append(ids, m.GroupID)
	}

	var groups []models.Group
	if err := db.Where("id IN ?", distinct(ids)).Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("load groups: %w", err)
	}

	names := make(map[int64]string, len(groups))
	for _, g := range groups {
		names[g.ID] = g.Name
	}

	for _, m := range memberships {
		out[m.UserID] = append(out[m.UserID], dto.GroupRef{ID: m.GroupID, Name: names[m.GroupID]})
	}

	return out, nil
}

func project(u *models.User, groups []dto.GroupRef) dto.UserResponse {
	if groups == nil {
		groups = []dto.GroupRef{}
	}

	return dto.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt.UTC(),
		Groups:      groups,
	}
}

// translate maps store constraint violations that slipped past the checks to domain errors.
func translate(err error, op string) error {
	switch {
	case errors.Is(err, ErrEmailAlreadyExists), errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrEmailAlreadyExists
	case errors.Is(err, ErrInvalidGroupIDs), errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrInvalidGroupIDs
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
