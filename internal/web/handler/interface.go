// Package handler holds what the front-end handlers share: layout names,
// the API client contract and the error page.
package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/GoUserAdmin/GoUserAdmin/internal/config"
	"github.com/GoUserAdmin/GoUserAdmin/internal/dto"
)

// APIClient is the part of the REST API the front-end uses.
type APIClient interface {
	ListUsers(ctx context.Context) ([]dto.UserResponse, error)
	GetUser(ctx context.Context, id int64) (*dto.UserResponse, error)
	CreateUser(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error)
	UpdateUser(ctx context.Context, id int64, in dto.UpdateUserRequest) error
	DeleteUser(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)
	CountPerGroup(ctx context.Context) ([]dto.UsersPerGroup, error)
	ListGroups(ctx context.Context) ([]dto.GroupResponse, error)
}

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, api APIClient)
}
