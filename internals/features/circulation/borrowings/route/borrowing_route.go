package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"library_backend/internals/features/circulation/borrowings/controller"
)

// 👤 User login (group sudah dipasangi RequireAuth)
func BorrowingUserRoutes(user fiber.Router, db *gorm.DB) {
	ctl := controller.NewBorrowingController(db)

	user.Post("/books/:id/borrow", ctl.Borrow)
	user.Post("/borrowings/:id/return", ctl.Return)
	user.Get("/my-books", ctl.MyBooks)
}
