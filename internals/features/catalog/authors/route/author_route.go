package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"library_backend/internals/features/catalog/authors/controller"
)

func AuthorPublicRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewAuthorController(db)

	authors := api.Group("/authors")
	authors.Get("/", ctl.List)
	authors.Get("/:id", ctl.Detail)
}

func AuthorAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewAuthorController(db)

	authors := admin.Group("/authors")
	authors.Post("/", ctl.Create)
	authors.Put("/:id", ctl.Update)
	authors.Patch("/:id", ctl.Update)
	authors.Delete("/:id", ctl.Delete)
}
