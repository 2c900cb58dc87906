// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

const (
	// EnvConfigJSON holds a JSON document overriding the toml settings.
	EnvConfigJSON = "GO_USER_ADMIN_CONFIG_JSON"

	// DefaultPath is used when no config directory is given.
	DefaultPath = "./etc/"

	defaultShutDownTime = 5
	defaultAPITimeout   = 10 * time.Second
	defaultSessionTable = "sessions"
	defaultSessionTTL   = time.Hour
)

// ReadConfig reads main.toml below path and applies the JSON override from EnvConfigJSON.
func ReadConfig(path string) (Config, error) {
	var c Config

	if path == "" {
		path = DefaultPath
	}

	if _, err := toml.DecodeFile(filepath.Join(path, "main.toml"), &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	if override := os.Getenv(EnvConfigJSON); override != "" {
		if err := json.Unmarshal([]byte(override), &c); err != nil {
			return Config{}, errors.Wrap(err, "failed to decode "+EnvConfigJSON)
		}
	}

	if err := validate(&c); err != nil {
		return Config{}, err
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer

	if err := toml.NewEncoder(&buffer).Encode(c); err != nil {
		return "", err //nolint:wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer

	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint:wrapcheck
	}

	return buffer.String(), nil
}

// validate rejects unusable settings and fills defaults.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.API.Port == 0 {
		return errors.Wrap(ErrAPIPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Webserver.APIBaseURL == "" {
		return errors.Wrap(ErrEmptyAPIBaseURL, invalidErrMessage)
	}

	switch c.DB.GormEngine {
	case "":
		c.DB.GormEngine = EngineSQLite
	case EngineSQLite, EngineMySQL, EnginePostgres:
	default:
		return errors.Wrap(ErrUnknownGormEngine, invalidErrMessage)
	}

	switch c.Webserver.Session.Storage {
	case "":
		c.Webserver.Session.Storage = SessionStorageMemory
	case SessionStorageMemory, SessionStorageMySQL, SessionStoragePostgres:
	default:
		return errors.Wrap(ErrUnknownSessionStorage, invalidErrMessage)
	}

	if c.API.ShutDownTime == 0 {
		c.API.ShutDownTime = defaultShutDownTime
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	if c.Webserver.APITimeout == 0 {
		c.Webserver.APITimeout = defaultAPITimeout
	}

	if c.Webserver.Session.ExpiryTime == 0 {
		c.Webserver.Session.ExpiryTime = defaultSessionTTL
	}

	if c.Webserver.Session.Table == "" {
		c.Webserver.Session.Table = defaultSessionTable
	}

	return nil
}
