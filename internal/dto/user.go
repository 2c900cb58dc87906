// Package dto holds the JSON shapes exchanged between the REST API and its clients.
package dto

import "time"

// GroupRef is the short form of a group embedded in a user.
type GroupRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UserResponse is the read projection of a user.
type UserResponse struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"displayName"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
	Groups      []GroupRef `json:"groups"`
}

// GroupIDs returns the ids of the user's groups.
func (u *UserResponse) GroupIDs() []int64 {
	ids := make([]int64, 0, len(u.Groups))
	for _, g := range u.Groups {
		ids = append(ids, g.ID)
	}

	return ids
}

// CreateUserRequest is the body of POST /api/users.
// IsActive defaults to true when omitted.
type CreateUserRequest struct {
	Email       string  `json:"email"       validate:"required,email,max=256"`
	DisplayName string  `json:"displayName" validate:"required,max=200"`
	IsActive    *bool   `json:"isActive,omitempty"`
	GroupIDs    []int64 `json:"groupIds,omitempty" validate:"dive,gt=0"`
}

// UpdateUserRequest is the body of PUT /api/users/{id}. Nil fields are left unchanged,
// a non-nil empty GroupIDs removes every membership.
type UpdateUserRequest struct {
	Email       *string  `json:"email,omitempty"       validate:"omitnil,min=1,email,max=256"`
	DisplayName *string  `json:"displayName,omitempty" validate:"omitnil,min=1,max=200"`
	IsActive    *bool    `json:"isActive,omitempty"`
	GroupIDs    *[]int64 `json:"groupIds,omitempty"    validate:"omitnil,dive,gt=0"`
}

// UsersPerGroup is one row of GET /api/users/count-per-group.
type UsersPerGroup struct {
	GroupID   int64  `json:"groupId"`
	GroupName string `json:"groupName"`
	UserCount int64  `json:"userCount"`
}

// Count is the body of GET /api/users/count.
type Count struct {
	Count int64 `json:"count"`
}
