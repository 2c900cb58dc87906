// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/GoUserAdmin/GoUserAdmin/internal/config"
)

const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// Create builds the DSN for the configured gorm engine.
func Create(cfg *config.Config) string {
	db := cfg.DB

	switch db.GormEngine {
	case config.EngineMySQL:
		return MySQL(db)
	case config.EnginePostgres:
		return Postgres(db)
	default:
		return SQLite(db)
	}
}

// MySQL builds a go-sql-driver/mysql DSN. parseTime is always enabled so
// DATETIME columns scan into time.Time.
func MySQL(db config.DB) string {
	params := "parseTime=true&loc=UTC"
	if db.Extras != "" {
		params += "&" + db.Extras
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		db.User,
		db.Password,
		db.Host,
		db.Port,
		db.Name,
		params,
	)
}

// Postgres builds a pgx keyword/value DSN.
func Postgres(db config.DB) string {
	parts := []string{
		"host=" + db.Host,
		fmt.Sprintf("port=%d", db.Port),
		"user=" + db.User,
		"password=" + db.Password,
		"dbname=" + db.Name,
		"TimeZone=UTC",
	}

	if db.Extras != "" {
		parts = append(parts, db.Extras)
	}

	return strings.Join(parts, " ")
}

// SQLite builds a file DSN with foreign keys enabled.
func SQLite(db config.DB) string {
	params := sqlitePragmas
	if db.Extras != "" {
		params += "&" + db.Extras
	}

	return db.Name + "?" + params
}

// SessionURI builds the connection uri used by the session storages when no
// explicit one is configured.
func SessionURI(cfg *config.Config) string {
	db := cfg.DB

	switch db.GormEngine {
	case config.EngineMySQL:
		return MySQL(db)
	case config.EnginePostgres:
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(db.User, db.Password),
			Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
			Path:   "/" + db.Name,
		}

		return u.String()
	default:
		return ""
	}
}
