package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	contactRoutes "library_backend/internals/features/home/contacts/route"
	homeRoutes "library_backend/internals/features/home/home/route"
)

// ✅ Untuk route publik (token opsional)
// Contoh akses: /api/, /api/contact
func HomePublicRoutes(api fiber.Router, db *gorm.DB) {
	homeRoutes.HomeRoutes(api, db)
	contactRoutes.ContactRoutes(api, db)
}
