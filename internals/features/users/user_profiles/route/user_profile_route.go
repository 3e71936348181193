package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"library_backend/internals/features/users/user_profiles/controller"
)

func UserProfileRoutes(user fiber.Router, db *gorm.DB) {
	ctl := controller.NewUserProfileController(db)

	profile := user.Group("/profile")
	profile.Get("/", ctl.Get)
	profile.Patch("/", ctl.Update)
	profile.Put("/", ctl.Update)
}
