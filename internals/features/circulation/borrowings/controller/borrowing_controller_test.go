package controller

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"library_backend/internals/databases/dbtest"
	reviewModel "library_backend/internals/features/circulation/reviews/model"
)

type noticeBody struct {
	Success  bool   `json:"success"`
	Level    string `json:"level"`
	Message  string `json:"message"`
	Redirect string `json:"redirect"`
}

func newBorrowApp(db *gorm.DB, userID uuid.UUID) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", userID.String())
		return c.Next()
	})
	ctl := NewBorrowingController(db)
	app.Post("/books/:id/borrow", ctl.Borrow)
	app.Post("/borrowings/:id/return", ctl.Return)
	app.Get("/my-books", ctl.MyBooks)
	return app
}

func do(t *testing.T, app *fiber.App, method, path string) (int, noticeBody) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, path, nil))
	require.NoError(t, err)
	var body noticeBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestBorrowAndReturnNotices(t *testing.T) {
	db := dbtest.NewTestDB(t)
	u := dbtest.User(t, db, "ada")
	a := dbtest.Author(t, db, "Frank Herbert")
	b := dbtest.Book(t, db, a.AuthorID, "Dune", 1)
	app := newBorrowApp(db, u.ID)
	borrowPath := fmt.Sprintf("/books/%d/borrow", b.BookID)

	status, body := do(t, app, fiber.MethodPost, borrowPath)
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "success", body.Level)
	assert.Contains(t, body.Message, `You have successfully borrowed "Dune". Please return it by `)
	assert.Equal(t, fmt.Sprintf("/books/%d", b.BookID), body.Redirect)

	status, body = do(t, app, fiber.MethodPost, borrowPath)
	assert.Equal(t, fiber.StatusConflict, status)
	// stok 0 dicek lebih dulu daripada duplikat
	assert.Equal(t, "Sorry, this book is not available for borrowing.", body.Message)

	var borrowingID uint
	require.NoError(t, db.Table("borrowings").Select("borrowing_id").Where("borrowing_book_id = ?", b.BookID).Scan(&borrowingID).Error)
	returnPath := fmt.Sprintf("/borrowings/%d/return", borrowingID)

	status, body = do(t, app, fiber.MethodPost, returnPath)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, `You have successfully returned "Dune".`, body.Message)
	assert.Equal(t, "/my-books", body.Redirect)

	status, body = do(t, app, fiber.MethodPost, returnPath)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "warning", body.Level)
	assert.Equal(t, "This book has already been returned.", body.Message)
}

func TestBorrowLimitNotice(t *testing.T) {
	db := dbtest.NewTestDB(t)
	u := dbtest.User(t, db, "ada")
	a := dbtest.Author(t, db, "Author")
	app := newBorrowApp(db, u.ID)

	for i := 0; i < 5; i++ {
		b := dbtest.Book(t, db, a.AuthorID, fmt.Sprintf("Book %d", i), 2)
		status, _ := do(t, app, fiber.MethodPost, fmt.Sprintf("/books/%d/borrow", b.BookID))
		require.Equal(t, fiber.StatusCreated, status)
	}
	extra := dbtest.Book(t, db, a.AuthorID, "One Too Many", 2)
	status, body := do(t, app, fiber.MethodPost, fmt.Sprintf("/books/%d/borrow", extra.BookID))
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "error", body.Level)
	assert.Equal(t, "You have reached the maximum borrowing limit (5 books).", body.Message)
}

func TestBorrowUnknownBookAndForeignReturn(t *testing.T) {
	db := dbtest.NewTestDB(t)
	owner := dbtest.User(t, db, "owner")
	other := dbtest.User(t, db, "other")
	a := dbtest.Author(t, db, "Author")
	b := dbtest.Book(t, db, a.AuthorID, "Mine", 1)

	status, _ := do(t, newBorrowApp(db, owner.ID), fiber.MethodPost, "/books/9999/borrow")
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = do(t, newBorrowApp(db, owner.ID), fiber.MethodPost, fmt.Sprintf("/books/%d/borrow", b.BookID))
	require.Equal(t, fiber.StatusCreated, status)

	var borrowingID uint
	require.NoError(t, db.Table("borrowings").Select("borrowing_id").Scan(&borrowingID).Error)
	status, _ = do(t, newBorrowApp(db, other.ID), fiber.MethodPost, fmt.Sprintf("/borrowings/%d/return", borrowingID))
	assert.Equal(t, fiber.StatusNotFound, status)
}

type myBooksBody struct {
	Data struct {
		CurrentBorrowings []struct {
			Book struct {
				BookID        uint    `json:"book_id"`
				AverageRating float64 `json:"average_rating"`
				RatingCount   int64   `json:"rating_count"`
			} `json:"book"`
		} `json:"current_borrowings"`
	} `json:"data"`
}

func TestMyBooksIncludesBookRating(t *testing.T) {
	db := dbtest.NewTestDB(t)
	u := dbtest.User(t, db, "ada")
	a := dbtest.Author(t, db, "Ursula K. Le Guin")
	b := dbtest.Book(t, db, a.AuthorID, "The Dispossessed", 3)
	for i, rating := range []int{5, 4} {
		reader := dbtest.User(t, db, fmt.Sprintf("reader%d", i))
		require.NoError(t, db.Create(&reviewModel.ReviewModel{
			ReviewUserID: reader.ID,
			ReviewBookID: b.BookID,
			ReviewRating: rating,
		}).Error)
	}
	app := newBorrowApp(db, u.ID)

	status, _ := do(t, app, fiber.MethodPost, fmt.Sprintf("/books/%d/borrow", b.BookID))
	require.Equal(t, fiber.StatusCreated, status)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/my-books", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body myBooksBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	require.Len(t, body.Data.CurrentBorrowings, 1)
	got := body.Data.CurrentBorrowings[0].Book
	assert.Equal(t, b.BookID, got.BookID)
	assert.InDelta(t, 4.5, got.AverageRating, 0.001)
	assert.Equal(t, int64(2), got.RatingCount)
}
