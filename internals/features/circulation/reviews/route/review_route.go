package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"library_backend/internals/features/circulation/reviews/controller"
)

func ReviewUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := controller.NewReviewController(db)

	user.Post("/books/:id/reviews", ctl.Create)
}
