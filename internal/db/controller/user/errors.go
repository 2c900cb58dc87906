package user

import "errors"

var (
	// ErrEmailAlreadyExists is returned when another user already owns the email.
	ErrEmailAlreadyExists = errors.New("Email already exists.") //nolint:stylecheck,revive

	// ErrInvalidGroupIDs is returned when a referenced group does not exist.
	ErrInvalidGroupIDs = errors.New("One or more GroupIds are invalid.") //nolint:stylecheck,revive

	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)
