// Package api serves the REST API of the user management system.
package api

import (
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoUserAdmin/GoUserAdmin/internal/api/handler"
	grouphandler "github.com/GoUserAdmin/GoUserAdmin/internal/api/handler/group"
	userhandler "github.com/GoUserAdmin/GoUserAdmin/internal/api/handler/user"
	"github.com/GoUserAdmin/GoUserAdmin/internal/config"
	fiberlogger "github.com/GoUserAdmin/GoUserAdmin/internal/logger/adapter/fiber"
)

const (
	// CheckAlivePath answers 200 while the service accepts traffic.
	CheckAlivePath = "/checkalive"

	// MetricsPath exposes the Prometheus metrics.
	MetricsPath = "/metrics"
)

// Service represents the REST API service.
type Service struct {
	App   *fiber.App
	alive atomic.Bool
}

// Listen serves on addr until Shutdown is called.
func (s *Service) Listen(addr string) error {
	if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err //nolint:wrapcheck
	}

	return nil
}

// Shutdown stops the http server.
func (s *Service) Shutdown() error {
	return s.App.Shutdown() //nolint:wrapcheck
}

// SetAlive switches the /checkalive answer.
func (s *Service) SetAlive(alive bool) {
	s.alive.Store(alive)
}

// New creates the REST API service with the given configuration.
func New(cfg *config.Config, db *gorm.DB) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	app := fiber.New(
		fiber.Config{
			AppName:       cfg.Title + " API",
			CaseSensitive: true,
			Immutable:     true,
			ErrorHandler:  handler.ErrorHandler,
		},
	)

	if !cfg.API.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))

	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	service := &Service{
		App: app,
	}
	service.alive.Store(true)

	app.Get(CheckAlivePath, service.checkAlive)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	for _, h := range []handler.Service{
		&userhandler.Service{},
		&grouphandler.Service{},
	} {
		h.Init(app, cfg, db)
	}

	log.Debug().Int("routes", len(app.GetRoutes(true))).Msg("api routes registered")

	return service
}

func (s *Service) checkAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	return c.SendString("OK")
}
