package config

const (
	// EngineSQLite is the pure go sqlite engine, Name is the database file.
	EngineSQLite = "sqlite"
	// EngineMySQL is the mysql/mariadb engine.
	EngineMySQL = "mysql"
	// EnginePostgres is the postgresql engine.
	EnginePostgres = "postgres"
)

// DB holds the database configuration settings.
type DB struct {
	Extras     string // appended to the dsn, e.g. "parseTime=true" for mysql
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	GormEngine string // sqlite, mysql or postgres
}
