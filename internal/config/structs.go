package config

import (
	"time"

	"github.com/GoUserAdmin/GoUserAdmin/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // reload templates from disk, skip the graceful shutdown delay
	DB        DB
	Log       logger.Log
	Title     string
	API       API
	Webserver Webserver
}

// API holds the REST API server settings.
type API struct {
	Port           int  // listening port of the REST API
	ShutDownTime   int  // seconds /checkalive answers 503 before the server stops
	DisableRecover bool // disable recover middleware
}

// Session storage backends.
const (
	SessionStorageMemory   = "memory"
	SessionStorageMySQL    = "mysql"
	SessionStoragePostgres = "postgres"
)

// Session settings of the front-end.
type Session struct {
	ExpiryTime    time.Duration
	Storage       string // memory, mysql or postgres
	ConnectionURI string // used by the mysql and postgres storages
	Table         string
}

// Webserver holds the front-end server settings.
type Webserver struct {
	DisableRecover bool          // disable recover middleware
	Port           int           // listening port of the front-end
	ShutDownTime   int           // seconds /checkalive answers 503 before the server stops
	URL            string        // public base url of the front-end
	APIBaseURL     string        // base url the front-end uses to reach the REST API
	APITimeout     time.Duration // per request timeout towards the REST API
	Session        Session
}
