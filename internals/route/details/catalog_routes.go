package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authorRoutes "library_backend/internals/features/catalog/authors/route"
	bookRoutes "library_backend/internals/features/catalog/books/route"
	categoryRoutes "library_backend/internals/features/catalog/categories/route"
)

// ✅ Publik: /api/books, /api/authors, /api/categories
func CatalogPublicRoutes(api fiber.Router, db *gorm.DB) {
	bookRoutes.BookPublicRoutes(api, db)
	authorRoutes.AuthorPublicRoutes(api, db)
	categoryRoutes.CategoryPublicRoutes(api, db)
}

// 🔐 Admin: /api/a/books, /api/a/authors, /api/a/categories
func CatalogAdminRoutes(admin fiber.Router, db *gorm.DB) {
	bookRoutes.BookAdminRoutes(admin, db)
	authorRoutes.AuthorAdminRoutes(admin, db)
	categoryRoutes.CategoryAdminRoutes(admin, db)
}
