// Package group provides the read-only group endpoint.
package group

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoUserAdmin/GoUserAdmin/internal/api/handler"
	"github.com/GoUserAdmin/GoUserAdmin/internal/config"
	groupcontroller "github.com/GoUserAdmin/GoUserAdmin/internal/db/controller/group"
)

// Path lists the groups.
const Path = handler.RootPath + "/groups"

// Service is the group API handler service.
type Service struct {
	handler.Service
	groups *groupcontroller.Service
}

// Init registers the group routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.groups = groupcontroller.NewService(db)

	app.Get(Path, s.List)
}

// List answers every group with its permission keys.
func (s *Service) List(c *fiber.Ctx) error {
	groups, err := s.groups.List(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(groups)
}
