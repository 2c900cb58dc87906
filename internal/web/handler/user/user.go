// Package user provides the pages for listing, creating, editing and deleting users.
package user

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoUserAdmin/GoUserAdmin/internal/apiclient"
	"github.com/GoUserAdmin/GoUserAdmin/internal/config"
	"github.com/GoUserAdmin/GoUserAdmin/internal/dto"
	"github.com/GoUserAdmin/GoUserAdmin/internal/web/handler"
	"github.com/GoUserAdmin/GoUserAdmin/internal/web/navigation"
	"github.com/GoUserAdmin/GoUserAdmin/internal/web/session"
)

const (
	// Path is the base path for user management.
	Path = handler.RootPath + "users"

	// TemplateList is the template for listing users.
	TemplateList = "users/list"
	// TemplateForm is the template for creating/updating a user.
	TemplateForm = "users/form"
	// TemplateDelete asks to confirm a deletion.
	TemplateDelete = "users/delete"

	msgNotFound    = "User not found."
	msgInvalidForm = "Invalid form data."
)

// Form is the posted user form. Unchecked checkboxes are simply absent.
type Form struct {
	Email       string  `form:"email"`
	DisplayName string  `form:"displayName"`
	IsActive    bool    `form:"isActive"`
	GroupIDs    []int64 `form:"groupIds"`
}

// FormView is the data of the user form template.
type FormView struct {
	Action      string
	Submit      string
	UserID      int64
	Form        Form
	Groups      []dto.GroupResponse
	Error       string
	FieldErrors map[string]string
}

// Service provides the user pages.
type Service struct {
	handler.Service
	api handler.APIClient
}

// Init registers routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, api handler.APIClient) {
	if app == nil || cfg == nil || api == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.api = api

	app.Get(Path, s.List)
	app.Get(Path+"/new", s.New)
	app.Post(Path, s.Create)
	app.Get(Path+"/:id<int>/edit", s.Edit)
	app.Post(Path+"/:id<int>", s.Update)
	app.Get(Path+"/:id<int>/delete", s.ConfirmDelete)
	app.Post(Path+"/:id<int>/delete", s.Delete)
}

// EditPath returns the edit page of user id.
func EditPath(id int64) string {
	return Path + "/" + strconv.FormatInt(id, 10) + "/edit"
}

func idParam(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fiber.ErrNotFound
	}

	return id, nil
}

// List shows all users.
func (s *Service) List(c *fiber.Ctx) error {
	nav := navigation.NewContext("Users", navigation.SectionUsers).
		Add("Users", Path)

	users, err := s.api.ListUsers(c.UserContext())
	if err != nil {
		return handler.APIFailure(err, "list users")
	}

	return c.Render(TemplateList, fiber.Map{
		"Navigation": nav,
		"Flash":      session.PopFlash(c),
		"Users":      users,
	}, handler.BaseLayout)
}

// New shows the creation form.
func (s *Service) New(c *fiber.Ctx) error {
	return s.renderForm(c, fiber.StatusOK, newView(Form{IsActive: true}))
}

// Create submits the creation form to the API.
func (s *Service) Create(c *fiber.Ctx) error {
	var f Form

	view := newView(f)

	if err := c.BodyParser(&f); err != nil {
		view.Error = msgInvalidForm

		return s.renderForm(c, fiber.StatusBadRequest, view)
	}

	view.Form = f

	u, err := s.api.CreateUser(c.UserContext(), dto.CreateUserRequest{
		Email:       f.Email,
		DisplayName: f.DisplayName,
		IsActive:    &f.IsActive,
		GroupIDs:    f.GroupIDs,
	})
	if err != nil {
		return s.rejected(c, err, view, "create user")
	}

	flash(c, session.FlashSuccess, "User "+u.Email+" created.")

	return c.Redirect(Path, fiber.StatusSeeOther)
}

// Edit shows the form of an existing user.
func (s *Service) Edit(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	u, err := s.api.GetUser(c.UserContext(), id)
	if err != nil {
		return handler.APIFailure(err, "get user")
	}

	if u == nil {
		return notFound(c)
	}

	view := editView(id, Form{
		Email:       u.Email,
		DisplayName: u.DisplayName,
		IsActive:    u.IsActive,
		GroupIDs:    u.GroupIDs(),
	})

	return s.renderForm(c, fiber.StatusOK, view)
}

// Update submits the edit form. Every field is sent, so unchecked groups are removed.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var f Form

	view := editView(id, f)

	if err := c.BodyParser(&f); err != nil {
		view.Error = msgInvalidForm

		return s.renderForm(c, fiber.StatusBadRequest, view)
	}

	view.Form = f

	groupIDs := f.GroupIDs
	if groupIDs == nil {
		groupIDs = []int64{}
	}

	err = s.api.UpdateUser(c.UserContext(), id, dto.UpdateUserRequest{
		Email:       &f.Email,
		DisplayName: &f.DisplayName,
		IsActive:    &f.IsActive,
		GroupIDs:    &groupIDs,
	})
	if apiclient.IsStatus(err, fiber.StatusNotFound) {
		return notFound(c)
	}

	if err != nil {
		return s.rejected(c, err, view, "update user")
	}

	flash(c, session.FlashSuccess, "User updated.")

	return c.Redirect(Path, fiber.StatusSeeOther)
}

// ConfirmDelete asks before deleting a user.
func (s *Service) ConfirmDelete(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	u, err := s.api.GetUser(c.UserContext(), id)
	if err != nil {
		return handler.APIFailure(err, "get user")
	}

	if u == nil {
		return notFound(c)
	}

	nav := navigation.NewContext("Delete user", navigation.SectionUsers).
		Add("Users", Path).
		Add("Delete", c.Path())

	return c.Render(TemplateDelete, fiber.Map{
		"Navigation": nav,
		"User":       u,
	}, handler.BaseLayout)
}

// Delete removes a user.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	deleted, err := s.api.DeleteUser(c.UserContext(), id)
	if err != nil {
		return handler.APIFailure(err, "delete user")
	}

	if !deleted {
		return notFound(c)
	}

	flash(c, session.FlashSuccess, "User deleted.")

	return c.Redirect(Path, fiber.StatusSeeOther)
}

func newView(f Form) *FormView {
	return &FormView{
		Action: Path,
		Submit: "Create",
		Form:   f,
	}
}

func editView(id int64, f Form) *FormView {
	return &FormView{
		Action: Path + "/" + strconv.FormatInt(id, 10),
		Submit: "Save",
		UserID: id,
		Form:   f,
	}
}

func (s *Service) renderForm(c *fiber.Ctx, status int, view *FormView) error {
	groups, err := s.api.ListGroups(c.UserContext())
	if err != nil {
		return handler.APIFailure(err, "list groups")
	}

	view.Groups = groups

	if view.FieldErrors == nil {
		view.FieldErrors = map[string]string{}
	}

	title, crumb := "New user", "New"
	if view.UserID != 0 {
		title, crumb = "Edit user", "Edit"
	}

	nav := navigation.NewContext(title, navigation.SectionUsers).
		Add("Users", Path).
		Add(crumb, c.Path())

	return c.Status(status).Render(TemplateForm, fiber.Map{
		"Navigation": nav,
		"Flash":      session.PopFlash(c),
		"View":       view,
	}, handler.BaseLayout)
}

// rejected shows a 4xx API answer on the form, anything else is an API failure.
func (s *Service) rejected(c *fiber.Ctx, err error, view *FormView, action string) error {
	var apiErr *apiclient.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode < 400 || apiErr.StatusCode >= 500 {
		return handler.APIFailure(err, action)
	}

	view.Error = apiErr.Message
	view.FieldErrors = make(map[string]string, len(apiErr.Fields))

	for _, fe := range apiErr.Fields {
		view.FieldErrors[fe.Field] = fe.Message
	}

	return s.renderForm(c, apiErr.StatusCode, view)
}

func notFound(c *fiber.Ctx) error {
	flash(c, session.FlashError, msgNotFound)

	return c.Redirect(Path, fiber.StatusSeeOther)
}

func flash(c *fiber.Ctx, kind, msg string) {
	if err := session.SetFlash(c, kind, msg); err != nil {
		log.Warn().Err(err).Msg("can't store flash message")
	}
}
