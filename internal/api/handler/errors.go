package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoUserAdmin/GoUserAdmin/internal/dto"
)

// ErrorHandler answers every error as JSON. A *fiber.Error keeps its code and message,
// anything else is logged and answered with a generic 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Error: fe.Message})
	}

	log.Error().
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Str("requestId", c.GetRespHeader(fiber.HeaderXRequestID)).
		Msg("unhandled api error")

	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: MsgUnexpected})
}

// Error answers status with {error: msg}.
func Error(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: msg})
}

// ValidationError answers 400 with the rejected fields.
func ValidationError(c *fiber.Ctx, fields []dto.FieldError) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error:  MsgValidationFailed,
		Fields: fields,
	})
}

// DecodeJSON decodes the request body into v with the app's JSON decoder.
// It answers 400 itself and reports false when the body is not valid JSON.
func DecodeJSON(c *fiber.Ctx, v any) (bool, error) {
	if err := c.App().Config().JSONDecoder(c.Body(), v); err != nil {
		log.Debug().Err(err).Str("path", c.Path()).Msg("malformed request body")

		return false, Error(c, fiber.StatusBadRequest, MsgMalformedBody)
	}

	return true, nil
}
