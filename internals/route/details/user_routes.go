package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	profileRoute "library_backend/internals/features/users/user_profiles/route"
)

// 👤 /api/u/profile
func UserRoutes(user fiber.Router, db *gorm.DB) {
	profileRoute.UserProfileRoutes(user, db)
}
