// Package db opens the gorm connection for the configured engine.
package db

import (
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/GoUserAdmin/GoUserAdmin/internal/config"
	"github.com/GoUserAdmin/GoUserAdmin/internal/db/dsn"
	gormadapter "github.com/GoUserAdmin/GoUserAdmin/internal/logger/adapter/gorm"
)

// Dialector returns the gorm dialector for cfg.DB.GormEngine.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		return mysql.Open(dsn.Create(cfg)), nil
	case config.EnginePostgres:
		return postgres.Open(dsn.Create(cfg)), nil
	case config.EngineSQLite, "":
		return sqlite.Open(dsn.Create(cfg)), nil
	default:
		return nil, config.ErrUnknownGormEngine
	}
}

// GormConfig is shared by the application and the tests: UTC timestamps,
// driver errors translated to gorm.ErrDuplicatedKey and gorm.ErrForeignKeyViolated,
// logging through zerolog.
func GormConfig(slowQueryThreshold time.Duration) *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		Logger: gormadapter.New(slowQueryThreshold),
	}
}

// Open connects to the configured database.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	slow := time.Duration(cfg.Log.SlowQueryThreshold) * time.Millisecond

	db, err := gorm.Open(dialector, GormConfig(slow))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect %s database", cfg.DB.GormEngine)
	}

	return db, nil
}
