package controller

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	bookService "library_backend/internals/features/catalog/books/service"
	"library_backend/internals/features/circulation/borrowings/dto"
	borrowingService "library_backend/internals/features/circulation/borrowings/service"
	helper "library_backend/internals/helpers"
	"library_backend/internals/helpers/dbtime"
)

const myBooksPath = "/my-books"

type BorrowingController struct {
	DB         *gorm.DB
	Borrowings *borrowingService.Service
	Books      *bookService.Service
}

func NewBorrowingController(db *gorm.DB) *BorrowingController {
	return &BorrowingController{DB: db, Borrowings: borrowingService.New(db), Books: bookService.New(db)}
}

// bookRating: rating buku untuk response notice; gagal → zero value + log.
func (ctl *BorrowingController) bookRating(c *fiber.Ctx, bookID uint) bookService.Rating {
	r, err := ctl.Books.Rating(c.UserContext(), bookID)
	if err != nil {
		log.Printf("[WARN] rating book %d: %v", bookID, err)
	}
	return r
}

func bookPath(id uint) string {
	return fmt.Sprintf("/books/%d", id)
}

// =======================
// 📖 POST /api/u/books/:id/borrow
// =======================
func (ctl *BorrowingController) Borrow(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	bookID, err := helper.ParseUintParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Book not found")
	}

	b, err := ctl.Borrowings.Borrow(c.UserContext(), userID, bookID)
	if err != nil {
		redirect := bookPath(bookID)
		switch {
		case helper.IsNotFound(err):
			return helper.JsonError(c, fiber.StatusNotFound, "Book not found")
		case errors.Is(err, borrowingService.ErrBookUnavailable):
			return helper.JsonNotice(c, 0, helper.LevelError,
				"Sorry, this book is not available for borrowing.", redirect, nil)
		case errors.Is(err, borrowingService.ErrAlreadyBorrowed):
			return helper.JsonNotice(c, 0, helper.LevelWarning,
				"You have already borrowed this book.", redirect, nil)
		case errors.Is(err, borrowingService.ErrBorrowLimitReached):
			return helper.JsonNotice(c, 0, helper.LevelError,
				fmt.Sprintf("You have reached the maximum borrowing limit (%d books).", ctl.Borrowings.MaxActive), redirect, nil)
		}
		log.Printf("[ERROR] borrow user=%s book=%d: %v", userID, bookID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to borrow book")
	}

	title := ""
	if b.Book != nil {
		title = b.Book.BookTitle
	}
	msg := fmt.Sprintf("You have successfully borrowed %q. Please return it by %s.",
		title, dbtime.FormatDate(c, b.BorrowingDueDate))
	return helper.JsonNotice(c, fiber.StatusCreated, helper.LevelSuccess, msg, bookPath(bookID),
		dto.ToBorrowingResponse(*b, ctl.bookRating(c, bookID), time.Now()))
}

// =======================
// ↩️ POST /api/u/borrowings/:id/return
// =======================
func (ctl *BorrowingController) Return(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUintParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Borrowing not found")
	}

	b, err := ctl.Borrowings.Return(c.UserContext(), userID, id)
	if err != nil {
		switch {
		case helper.IsNotFound(err):
			// pinjaman orang lain juga 404
			return helper.JsonError(c, fiber.StatusNotFound, "Borrowing not found")
		case errors.Is(err, borrowingService.ErrAlreadyReturned):
			return helper.JsonNotice(c, 0, helper.LevelWarning,
				"This book has already been returned.", myBooksPath, nil)
		}
		log.Printf("[ERROR] return user=%s borrowing=%d: %v", userID, id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to return book")
	}

	title := ""
	if b.Book != nil {
		title = b.Book.BookTitle
	}
	return helper.JsonNotice(c, fiber.StatusOK, helper.LevelSuccess,
		fmt.Sprintf("You have successfully returned %q.", title), myBooksPath,
		dto.ToBorrowingResponse(*b, ctl.bookRating(c, b.BorrowingBookID), time.Now()))
}

// =======================
// 📋 GET /api/u/my-books
// =======================
func (ctl *BorrowingController) MyBooks(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	current, past, err := ctl.Borrowings.ListForUser(c.UserContext(), userID)
	if err != nil {
		log.Printf("[ERROR] my-books user=%s: %v", userID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load borrowings")
	}
	ratings, err := ctl.Books.Ratings(c.UserContext(), dto.BookIDs(current, past))
	if err != nil {
		log.Printf("[ERROR] my-books ratings user=%s: %v", userID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load borrowings")
	}
	now := time.Now()
	return helper.JsonOK(c, "ok", dto.MyBooksResponse{
		CurrentBorrowings: dto.ToBorrowingResponses(current, ratings, now),
		PastBorrowings:    dto.ToBorrowingResponses(past, ratings, now),
		MaxActive:         ctl.Borrowings.MaxActive,
	})
}
