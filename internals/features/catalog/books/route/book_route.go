package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"library_backend/internals/features/catalog/books/controller"
)

// 🌐 Public
func BookPublicRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewBookController(db)

	books := api.Group("/books")
	books.Get("/", ctl.List)      // 📚 katalog + filter
	books.Get("/:id", ctl.Detail) // 🔍 detail + review
}

// 🔐 Admin
func BookAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewBookController(db)

	books := admin.Group("/books")
	books.Post("/", ctl.Create)
	books.Put("/:id", ctl.Update)
	books.Patch("/:id", ctl.Update)
	books.Delete("/:id", ctl.Delete)
}
