// Package handlertest provides an in-memory API client and a recording view
// engine for front-end handler tests.
package handlertest

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/GoUserAdmin/GoUserAdmin/internal/apiclient"
	"github.com/GoUserAdmin/GoUserAdmin/internal/dto"
)

// Views records the last rendered template and writes its name as the body.
type Views struct {
	mu     sync.Mutex
	name   string
	layout string
	data   fiber.Map
}

// Load implements fiber.Views.
func (v *Views) Load() error { return nil }

// Render implements fiber.Views.
func (v *Views) Render(w io.Writer, name string, data interface{}, layout ...string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.name = name
	v.data, _ = data.(fiber.Map)
	v.layout = ""

	if len(layout) > 0 {
		v.layout = layout[0]
	}

	_, err := io.WriteString(w, name)

	return err
}

// Last returns the name, layout and data of the last rendered template.
func (v *Views) Last() (string, string, fiber.Map) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.name, v.layout, v.data
}

// API is an in-memory stand-in for the REST API.
type API struct {
	mu sync.Mutex

	Users    []dto.UserResponse
	Groups   []dto.GroupResponse
	PerGroup []dto.UsersPerGroup

	// Err fails every call when set.
	Err error
	// CreateErr and UpdateErr fail only the matching call.
	CreateErr error
	UpdateErr error

	Created []dto.CreateUserRequest
	Updated map[int64]dto.UpdateUserRequest
	Deleted []int64
}

// NewAPI returns an API knowing two groups and one user in the first group.
func NewAPI() *API {
	return &API{
		Groups: []dto.GroupResponse{
			{ID: 1, Name: "Admin", Permissions: []string{"users.manage"}},
			{ID: 2, Name: "Level1", Permissions: []string{"reports.read"}},
		},
		Users: []dto.UserResponse{
			{
				ID:          1,
				Email:       "ada@example.com",
				DisplayName: "Ada",
				IsActive:    true,
				CreatedAt:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
				Groups:      []dto.GroupRef{{ID: 1, Name: "Admin"}},
			},
		},
		PerGroup: []dto.UsersPerGroup{
			{GroupID: 1, GroupName: "Admin", UserCount: 1},
			{GroupID: 2, GroupName: "Level1", UserCount: 0},
		},
		Updated: map[int64]dto.UpdateUserRequest{},
	}
}

func (a *API) find(id int64) int {
	for i := range a.Users {
		if a.Users[i].ID == id {
			return i
		}
	}

	return -1
}

// ListUsers implements handler.APIClient.
func (a *API) ListUsers(_ context.Context) ([]dto.UserResponse, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.Err != nil {
		return nil, a.Err
	}

	return append([]dto.UserResponse{}, a.Users...), nil
}

// GetUser implements handler.APIClient.
func (a *API) GetUser(_ context.Context, id int64) (*dto.UserResponse, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.Err != nil {
		return nil, a.Err
	}

	i := a.find(id)
	if i < 0 {
		return nil, nil //nolint:nilnil
	}

	u := a.Users[i]

	return &u, nil
}

// CreateUser implements handler.APIClient.
func (a *API) CreateUser(_ context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.Err != nil {
		return nil, a.Err
	}

	if a.CreateErr != nil {
		return nil, a.CreateErr
	}

	a.Created = append(a.Created, in)

	u := dto.UserResponse{
		ID:          int64(len(a.Users)) + 1,
		Email:       in.Email,
		DisplayName: in.DisplayName,
		IsActive:    in.IsActive == nil || *in.IsActive,
		CreatedAt:   time.Now().UTC(),
		Groups:      []dto.GroupRef{},
	}
	a.Users = append(a.Users, u)

	return &u, nil
}

// UpdateUser implements handler.APIClient.
func (a *API) UpdateUser(_ context.Context, id int64, in dto.UpdateUserRequest) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.Err != nil {
		return a.Err
	}

	if a.UpdateErr != nil {
		return a.UpdateErr
	}

	if a.find(id) < 0 {
		return &apiclient.APIError{StatusCode: http.StatusNotFound, Message: "User not found."}
	}

	a.Updated[id] = in

	return nil
}

// DeleteUser implements handler.APIClient.
func (a *API) DeleteUser(_ context.Context, id int64) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.Err != nil {
		return false, a.Err
	}

	i := a.find(id)
	if i < 0 {
		return false, nil
	}

	a.Users = append(a.Users[:i], a.Users[i+1:]...)
	a.Deleted = append(a.Deleted, id)

	return true, nil
}

// Count implements handler.APIClient.
func (a *API) Count(_ context.Context) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.Err != nil {
		return 0, a.Err
	}

	return int64(len(a.Users)), nil
}

// CountPerGroup implements handler.APIClient.
func (a *API) CountPerGroup(_ context.Context) ([]dto.UsersPerGroup, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.Err != nil {
		return nil, a.Err
	}

	return append([]dto.UsersPerGroup{}, a.PerGroup...), nil
}

// ListGroups implements handler.APIClient.
func (a *API) ListGroups(_ context.Context) ([]dto.GroupResponse, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.Err != nil {
		return nil, a.Err
	}

	return append([]dto.GroupResponse{}, a.Groups...), nil
}
