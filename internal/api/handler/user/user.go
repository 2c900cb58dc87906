// Package user provides the REST endpoints of the user aggregate.
package user

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoUserAdmin/GoUserAdmin/internal/api/handler"
	"github.com/GoUserAdmin/GoUserAdmin/internal/config"
	usercontroller "github.com/GoUserAdmin/GoUserAdmin/internal/db/controller/user"
	"github.com/GoUserAdmin/GoUserAdmin/internal/dto"
	"github.com/GoUserAdmin/GoUserAdmin/internal/validation"
)

const (
	// Path is the collection path of users.
	Path = handler.RootPath + "/users"

	// PathCount is the total user count.
	PathCount = Path + "/count"

	// PathCountPerGroup is the member count per group.
	PathCountPerGroup = Path + "/count-per-group"

	// PathID is a single user. Non-integer ids do not match and answer 404.
	PathID = Path + "/:id<int>"
)

// Service is the user API handler service.
type Service struct {
	handler.Service
	users *usercontroller.Service
}

// Init registers the user routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.users = usercontroller.NewService(db)

	// count routes first, they would otherwise look like ids
	app.Get(PathCount, s.Count)
	app.Get(PathCountPerGroup, s.CountPerGroup)

	app.Get(Path, s.List)
	app.Post(Path, s.Create)
	app.Get(PathID, s.Get)
	app.Put(PathID, s.Update)
	app.Delete(PathID, s.Delete)
}

// Location returns the URL of user id.
func Location(id int64) string {
	return Path + "/" + strconv.FormatInt(id, 10)
}

func idParam(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fiber.ErrNotFound
	}

	return id, nil
}

// List answers every user.
func (s *Service) List(c *fiber.Ctx) error {
	users, err := s.users.List(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(users)
}

// Get answers one user or 404.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	u, err := s.users.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}

	if u == nil {
		return handler.Error(c, fiber.StatusNotFound, handler.MsgUserNotFound)
	}

	return c.JSON(u)
}

// Create validates and stores a new user, answering 201 with the stored user.
func (s *Service) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if ok, err := handler.DecodeJSON(c, &req); !ok {
		return err
	}

	if fields := validation.Create(req); len(fields) > 0 {
		return handler.ValidationError(c, fields)
	}

	id, err := s.users.Create(c.UserContext(), req)
	if err != nil {
		return serviceError(c, err)
	}

	u, err := s.users.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}

	if u == nil {
		return fmt.Errorf("created user %d not found", id)
	}

	log.Info().Int64("userId", id).Str("email", u.Email).Msg("user created")

	c.Location(Location(id))

	return c.Status(fiber.StatusCreated).JSON(u)
}

// Update applies a partial update and answers 204.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req dto.UpdateUserRequest
	if ok, err := handler.DecodeJSON(c, &req); !ok {
		return err
	}

	if fields := validation.Update(req); len(fields) > 0 {
		return handler.ValidationError(c, fields)
	}

	found, err := s.users.Update(c.UserContext(), id, req)
	if err != nil {
		return serviceError(c, err)
	}

	if !found {
		return handler.Error(c, fiber.StatusNotFound, handler.MsgUserNotFound)
	}

	log.Info().Int64("userId", id).Msg("user updated")

	return c.SendStatus(fiber.StatusNoContent)
}

// Delete removes a user and answers 204.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	deleted, err := s.users.Delete(c.UserContext(), id)
	if err != nil {
		return err
	}

	if !deleted {
		return handler.Error(c, fiber.StatusNotFound, handler.MsgUserNotFound)
	}

	log.Info().Int64("userId", id).Msg("user deleted")

	return c.SendStatus(fiber.StatusNoContent)
}

// Count answers the number of users.
func (s *Service) Count(c *fiber.Ctx) error {
	n, err := s.users.TotalCount(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(dto.Count{Count: n})
}

// CountPerGroup answers the member count of every group.
func (s *Service) CountPerGroup(c *fiber.Ctx) error {
	rows, err := s.users.UsersPerGroup(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(rows)
}

// serviceError maps the domain errors of the user service, anything else goes to the error handler.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usercontroller.ErrEmailAlreadyExists):
		return handler.Error(c, fiber.StatusConflict, usercontroller.ErrEmailAlreadyExists.Error())
	case errors.Is(err, usercontroller.ErrInvalidGroupIDs):
		return handler.Error(c, fiber.StatusBadRequest, usercontroller.ErrInvalidGroupIDs.Error())
	default:
		return err
	}
}
