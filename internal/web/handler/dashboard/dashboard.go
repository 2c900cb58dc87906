// Package dashboard provides the dashboard page with user statistics.
package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoUserAdmin/GoUserAdmin/internal/config"
	"github.com/GoUserAdmin/GoUserAdmin/internal/dto"
	"github.com/GoUserAdmin/GoUserAdmin/internal/web/handler"
	"github.com/GoUserAdmin/GoUserAdmin/internal/web/navigation"
	"github.com/GoUserAdmin/GoUserAdmin/internal/web/session"
)

const (
	// Path is the path to the dashboard page.
	Path = handler.RootPath + "dashboard"

	// TemplateName is the name of the dashboard template.
	TemplateName = "dashboard/dashboard"
)

// Data represents the complete dashboard data.
type Data struct {
	TotalUsers  int64
	Memberships int64
	Groups      []dto.UsersPerGroup
}

// Service is the dashboard handler service.
type Service struct {
	handler.Service
	api handler.APIClient
}

// Init initializes the dashboard handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, api handler.APIClient) {
	if app == nil || cfg == nil || api == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.api = api

	app.Get(Path, s.Get)
}

// Get handles the dashboard page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	nav := navigation.NewContext("Dashboard", navigation.SectionDashboard).
		Add("Dashboard", Path)

	total, err := s.api.Count(c.UserContext())
	if err != nil {
		return handler.APIFailure(err, "count users")
	}

	groups, err := s.api.CountPerGroup(c.UserContext())
	if err != nil {
		return handler.APIFailure(err, "count users per group")
	}

	data := Data{
		TotalUsers: total,
		Groups:     groups,
	}

	for _, g := range groups {
		data.Memberships += g.UserCount
	}

	log.Debug().
		Int64("total_users", data.TotalUsers).
		Int("groups", len(groups)).
		Int64("memberships", data.Memberships).
		Msg("dashboard statistics retrieved")

	return c.Render(TemplateName, fiber.Map{
		"Navigation": nav,
		"Flash":      session.PopFlash(c),
		"Data":       data,
	}, handler.BaseLayout)
}
