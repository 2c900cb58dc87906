package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoUserAdmin/GoUserAdmin/internal/web/navigation"
)

// ErrorHandler renders the error page. A *fiber.Error keeps its code and message,
// anything else becomes a logged 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Something went wrong."

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	} else {
		log.Error().Err(err).Str("path", c.Path()).Msg("unhandled web error")
	}

	c.Status(code)

	renderErr := c.Render(TemplateError, fiber.Map{
		"Navigation": navigation.NewContext("Error", ""),
		"Status":     code,
		"Message":    msg,
	}, BaseLayout)
	if renderErr != nil {
		log.Error().Err(renderErr).Msg("can't render error page")

		return c.Status(code).SendString(msg)
	}

	return nil
}

// APIFailure logs a failed API call and turns it into a 502 error page.
func APIFailure(err error, action string) error {
	log.Error().Err(err).Str("action", action).Msg("api call failed")

	return fiber.NewError(fiber.StatusBadGateway, MsgAPIUnavailable)
}
