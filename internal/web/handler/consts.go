package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// TemplateError renders an error page.
	TemplateError = "errors/error"

	// RootPath is the root path the route group.
	RootPath = "/"

	// ErrNilACDFatalLogMsg is used if app, cfg or the api client is nil.
	ErrNilACDFatalLogMsg = "app, cfg or api client is nil"

	// MsgAPIUnavailable is shown when the REST API can't be reached or fails.
	MsgAPIUnavailable = "The user service is currently unavailable."
)
