package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrEmptyAPIBaseURL error if config webserver.APIBaseURL is empty.
	ErrEmptyAPIBaseURL = errors.New("toml config webserver.apibaseurl can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrAPIPortCanNotBeZero error if config api listening port is 0.
	ErrAPIPortCanNotBeZero = errors.New("toml config api.port listening port can not be 0")

	// ErrUnknownGormEngine error if config db.gormengine is not supported.
	ErrUnknownGormEngine = errors.New("toml config db.gormengine must be sqlite, mysql or postgres")

	// ErrUnknownSessionStorage error if config webserver.session.storage is not supported.
	ErrUnknownSessionStorage = errors.New("toml config webserver.session.storage must be memory, mysql or postgres")
)
