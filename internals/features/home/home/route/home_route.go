package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"library_backend/internals/features/home/home/controller"
)

func HomeRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewHomeController(db)
	api.Get("/", ctl.Index)
	api.Get("/home", ctl.Index)
}
