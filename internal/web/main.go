// Package web serves the server-rendered front-end. It owns no data and
// talks to the REST API for everything it shows.
package web

import (
	"errors"
	"net/http"
	"slices"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/GoUserAdmin/GoUserAdmin/internal/config"
	fiberlogger "github.com/GoUserAdmin/GoUserAdmin/internal/logger/adapter/fiber"
	"github.com/GoUserAdmin/GoUserAdmin/internal/uniuri"
	"github.com/GoUserAdmin/GoUserAdmin/internal/web/handler"
	"github.com/GoUserAdmin/GoUserAdmin/internal/web/handler/dashboard"
	"github.com/GoUserAdmin/GoUserAdmin/internal/web/handler/group"
	"github.com/GoUserAdmin/GoUserAdmin/internal/web/handler/user"
	"github.com/GoUserAdmin/GoUserAdmin/internal/web/session"
)

const (
	// CheckAlivePath answers 200 while the service accepts traffic.
	CheckAlivePath = "/checkalive"

	// CSRFField is the hidden form field carrying the CSRF token.
	CSRFField = "_csrf"

	// CSRFCookie holds the CSRF token on the client.
	CSRFCookie = "csrf_"

	// localCSRF and localAppTitle are passed to every view.
	localCSRF     = "csrf"
	localAppTitle = "appTitle"
)

// Service represents the web service.
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

// newTemplateEngine returns the embedded templates, or the ones on disk in dev mode.
func newTemplateEngine(devMode bool) *html.Engine {
	templateEngine := html.NewFileSystem(http.FS(templateEmbedFS{embeddedTemplates}), ".gohtml")

	// in dev mode, use local filesystem for templates
	if devMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("dev mode enabled: using local filesystem for templates")
	}

	templateEngine.AddFunc("hasGroup", func(ids []int64, id int64) bool {
		return slices.Contains(ids, id)
	})
	templateEngine.AddFunc("formatTime", func(t time.Time) string {
		return t.UTC().Format("2006-01-02 15:04 UTC")
	})

	return templateEngine
}

// New creates the web service. api is the REST API client, storage backs the
// sessions (nil for memory).
func New(cfg *config.Config, api handler.APIClient, storage fiber.Storage) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if api == nil {
		panic("api client cannot be nil")
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize:    8192,
			AppName:           cfg.Title,
			CaseSensitive:     true,
			Immutable:         true,
			Views:             newTemplateEngine(cfg.DevMode),
			PassLocalsToViews: true,
			ErrorHandler:      handler.ErrorHandler,
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))

	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	// serve embedded static files
	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
			},
		),
	)

	service := &Service{App: app}
	service.alive.Store(true)

	app.Get(CheckAlivePath, service.checkAlive)

	session.Init(storage, cfg.Webserver.Session.ExpiryTime)

	app.Use(func(c *fiber.Ctx) error {
		c.Locals(localAppTitle, cfg.Title)

		return c.Next()
	})

	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:" + CSRFField,
		CookieName:     CSRFCookie,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
		CookieHTTPOnly: true,
		Expiration:     cfg.Webserver.Session.ExpiryTime,
		KeyGenerator:   uniuri.NewToken,
		ContextKey:     localCSRF,
		ErrorHandler: func(_ *fiber.Ctx, err error) error {
			log.Warn().Err(err).Msg("csrf check failed")

			return fiber.NewError(fiber.StatusForbidden, "Invalid or missing form token, please reload the page.")
		},
	}))

	for _, h := range []handler.Service{
		&dashboard.Service{},
		&user.Service{},
		&group.Service{},
	} {
		h.Init(app, cfg, api)
	}

	// redirect root to the user list
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect(user.Path)
	})

	return service
}

func (s *Service) checkAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	return c.SendString("OK")
}
