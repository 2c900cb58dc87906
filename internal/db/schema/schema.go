// Package schema versions the database schema with goose and seeds the reference data.
package schema

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoUserAdmin/GoUserAdmin/internal/config"
	"github.com/GoUserAdmin/GoUserAdmin/internal/db/models"
)

// ErrDBNil is returned when the database connection is nil.
var ErrDBNil = errors.New("database connection is nil")

// Dialect maps a gorm engine name to the goose dialect.
func Dialect(engine string) (goose.Dialect, error) {
	switch engine {
	case config.EngineMySQL:
		return goose.DialectMySQL, nil
	case config.EnginePostgres:
		return goose.DialectPostgres, nil
	case config.EngineSQLite, "":
		return goose.DialectSQLite3, nil
	default:
		return "", config.ErrUnknownGormEngine
	}
}

// migrations lists the schema versions. Table definitions come from the gorm
// models so one definition serves every engine.
func migrations(db *gorm.DB) []*goose.Migration {
	return []*goose.Migration{
		goose.NewGoMigration(1,
			&goose.GoFunc{RunDB: func(ctx context.Context, _ *sql.DB) error {
				return db.WithContext(ctx).AutoMigrate(models.All()...)
			}},
			&goose.GoFunc{RunDB: func(ctx context.Context, _ *sql.DB) error {
				m := db.WithContext(ctx).Migrator()

				all := models.All()
				for i := len(all) - 1; i >= 0; i-- {
					if err := m.DropTable(all[i]); err != nil {
						return err //nolint:wrapcheck
					}
				}

				return nil
			}},
		),
	}
}

func provider(db *gorm.DB, engine string) (*goose.Provider, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	dialect, err := Dialect(engine)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get sql.DB from gorm")
	}

	p, err := goose.NewProvider(dialect, sqlDB, nil,
		goose.WithDisableGlobalRegistry(true),
		goose.WithGoMigrations(migrations(db)...),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create goose provider")
	}

	return p, nil
}

// Migrate applies every pending schema version.
func Migrate(ctx context.Context, db *gorm.DB, engine string) error {
	p, err := provider(db, engine)
	if err != nil {
		return err
	}

	results, err := p.Up(ctx)
	if err != nil {
		return errors.Wrap(err, "schema migration failed")
	}

	for _, r := range results {
		log.Info().
			Int64("version", r.Source.Version).
			Dur("duration", r.Duration).
			Msg("schema version applied")
	}

	return nil
}

// Version returns the current schema version, 0 on an empty database.
func Version(ctx context.Context, db *gorm.DB, engine string) (int64, error) {
	p, err := provider(db, engine)
	if err != nil {
		return 0, err
	}

	v, err := p.GetDBVersion(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to read schema version")
	}

	return v, nil
}

// Reset rolls back every applied schema version.
func Reset(ctx context.Context, db *gorm.DB, engine string) error {
	p, err := provider(db, engine)
	if err != nil {
		return err
	}

	if _, err := p.DownTo(ctx, 0); err != nil {
		return errors.Wrap(err, "schema reset failed")
	}

	return nil
}
