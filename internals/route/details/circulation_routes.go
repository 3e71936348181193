package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	borrowingRoutes "library_backend/internals/features/circulation/borrowings/route"
	reviewRoutes "library_backend/internals/features/circulation/reviews/route"
)

// 👤 User login: /api/u/books/:id/borrow, /api/u/my-books, ...
func CirculationUserRoutes(user fiber.Router, db *gorm.DB) {
	borrowingRoutes.BorrowingUserRoutes(user, db)
	reviewRoutes.ReviewUserRoutes(user, db)
}
