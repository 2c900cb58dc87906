package handler

const (
	// RootPath is the prefix of every API route.
	RootPath = "/api"

	// ErrNilACDFatalLogMsg is used if app or cfg or db var pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or db is nil"

	// MsgUnexpected is the body of every 500 answer, the cause is only logged.
	MsgUnexpected = "An unexpected error occurred."

	// MsgValidationFailed is the error of a 400 answer carrying field errors.
	MsgValidationFailed = "Validation failed."

	// MsgMalformedBody is the error of a 400 answer to a body that is not valid JSON.
	MsgMalformedBody = "Malformed request body."

	// MsgUserNotFound is the error of a 404 answer for an unknown user id.
	MsgUserNotFound = "User not found."
)
