package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"library_backend/internals/features/catalog/categories/controller"
)

func CategoryPublicRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewCategoryController(db)

	cats := api.Group("/categories")
	cats.Get("/", ctl.List)
	cats.Get("/:id", ctl.Detail) // buku per kategori (paginasi)
}

func CategoryAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewCategoryController(db)

	cats := admin.Group("/categories")
	cats.Post("/", ctl.Create)
	cats.Put("/:id", ctl.Update)
	cats.Patch("/:id", ctl.Update)
	cats.Delete("/:id", ctl.Delete)
}
