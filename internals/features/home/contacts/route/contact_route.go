package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"library_backend/internals/features/home/contacts/controller"
	rateLimiter "library_backend/internals/middlewares"
)

func ContactRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewContactController(db)
	api.Post("/contact", rateLimiter.ContactRateLimiter(), ctl.Create)
}
