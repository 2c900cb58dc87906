// Package daemon wires configuration, database and http servers into the
// long running processes of the application.
package daemon

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoUserAdmin/GoUserAdmin/internal/api"
	"github.com/GoUserAdmin/GoUserAdmin/internal/apiclient"
	"github.com/GoUserAdmin/GoUserAdmin/internal/config"
	"github.com/GoUserAdmin/GoUserAdmin/internal/db"
	"github.com/GoUserAdmin/GoUserAdmin/internal/db/dsn"
	"github.com/GoUserAdmin/GoUserAdmin/internal/db/schema"
	"github.com/GoUserAdmin/GoUserAdmin/internal/web"
	"github.com/GoUserAdmin/GoUserAdmin/internal/web/session"
)

// openDB is replaced in tests.
var openDB = db.Open //nolint:gochecknoglobals

// Migrate opens the configured database, brings the schema up to date and
// inserts the missing seed rows. With reset every schema version is rolled
// back first, which drops all data. The connection is closed on failure.
func Migrate(ctx context.Context, cfg *config.Config, reset bool) (*gorm.DB, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	gdb, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	if err := migrate(ctx, gdb, cfg.DB.GormEngine, reset); err != nil {
		closeDB(gdb)

		return nil, err
	}

	return gdb, nil
}

func migrate(ctx context.Context, gdb *gorm.DB, engine string, reset bool) error {
	if reset {
		log.Warn().Str("engine", engine).Msg("resetting database schema")

		if err := schema.Reset(ctx, gdb, engine); err != nil {
			return errors.Wrap(err, "reset schema")
		}
	}

	if err := schema.Migrate(ctx, gdb, engine); err != nil {
		return errors.Wrap(err, "migrate schema")
	}

	if err := schema.Seed(ctx, gdb); err != nil {
		return errors.Wrap(err, "seed database")
	}

	version, err := schema.Version(ctx, gdb, engine)
	if err != nil {
		return errors.Wrap(err, "read schema version")
	}

	log.Info().
		Str("engine", engine).
		Int64("version", version).
		Msg("database is up to date")

	return nil
}

// closeDB closes the pool behind gdb.
func closeDB(gdb *gorm.DB) {
	sqlDB, err := gdb.DB()
	if err != nil {
		log.Error().Err(err).Msg("can't get sql db")

		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Error().Err(err).Msg("can't close database")
	}
}

// RunAPI migrates the database and serves the REST API until SIGINT or SIGTERM.
func RunAPI(ctx context.Context, cfg *config.Config) error {
	gdb, err := Migrate(ctx, cfg, false)
	if err != nil {
		return err
	}

	defer closeDB(gdb)

	svc := api.New(cfg, gdb)

	return serve(ctx, svc, shutdown{
		name:    "api",
		addr:    fmt.Sprintf(":%d", cfg.API.Port),
		seconds: cfg.API.ShutDownTime,
		fast:    cfg.DevMode,
	})
}

// RunWeb serves the front-end until SIGINT or SIGTERM.
func RunWeb(ctx context.Context, cfg *config.Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	sessionCfg := cfg.Webserver.Session
	if sessionCfg.ConnectionURI == "" {
		sessionCfg.ConnectionURI = dsn.SessionURI(cfg)
	}

	storage, err := session.NewStorage(sessionCfg)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if storage != nil {
		defer func() {
			if err := storage.Close(); err != nil {
				log.Error().Err(err).Msg("can't close session storage")
			}
		}()
	}

	client := apiclient.New(cfg.Webserver.APIBaseURL, cfg.Webserver.APITimeout)

	log.Info().
		Str("api", cfg.Webserver.APIBaseURL).
		Str("sessions", sessionCfg.Storage).
		Msg("starting front-end")

	svc := web.New(cfg, client, storage)

	return serve(ctx, svc, shutdown{
		name:    "web",
		addr:    fmt.Sprintf(":%d", cfg.Webserver.Port),
		seconds: cfg.Webserver.ShutDownTime,
		fast:    cfg.DevMode,
	})
}
