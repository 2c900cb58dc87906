// Package handler holds what the REST API handlers share: route prefix, messages
// and the JSON error handling.
package handler

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/GoUserAdmin/GoUserAdmin/internal/config"
)

// Service is the interface for an API handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, db *gorm.DB)
}
