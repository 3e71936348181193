package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"library_backend/internals/configs"
	"library_backend/internals/features/catalog/books/dto"
	bookService "library_backend/internals/features/catalog/books/service"
	categoryService "library_backend/internals/features/catalog/categories/service"
	helper "library_backend/internals/helpers"
	"library_backend/internals/helpers/media"
)

var validate = helper.RegisterJSONTagName(validator.New())

const coverFolder = "book_covers"

type BookController struct {
	DB         *gorm.DB
	Books      *bookService.Service
	Categories *categoryService.Service
	Media      *media.Store
}

func NewBookController(db *gorm.DB) *BookController {
	return &BookController{
		DB:         db,
		Books:      bookService.New(db),
		Categories: categoryService.New(db),
		Media:      media.NewStore(configs.MediaRoot),
	}
}

// =======================
// 📚 GET /books?q=&category=&sort=&page=
// =======================
func (ctl *BookController) List(c *fiber.Ctx) error {
	q := bookService.ListQuery{
		Search:     c.Query("q"),
		CategoryID: bookService.ParseCategoryID(c.Query("category")),
		Sort:       c.Query("sort"),
		Page:       helper.ResolvePage(c),
	}

	page, err := ctl.Books.List(c.UserContext(), q)
	if err != nil {
		log.Printf("[ERROR] list books: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load books")
	}
	cats, err := ctl.Categories.List(c.UserContext())
	if err != nil {
		log.Printf("[ERROR] list categories: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load categories")
	}

	return helper.JsonListEx(c, "ok",
		dto.ToBookResponses(page.Items),
		&page.Pagination,
		dto.ToBookListIncludes(page.Query, cats),
	)
}

// =======================
// 🔍 GET /books/:id
// =======================
func (ctl *BookController) Detail(c *fiber.Ctx) error {
	id, err := helper.ParseUintParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Book not found")
	}

	d, err := ctl.Books.Detail(c.UserContext(), id, helper.OptionalUserID(c))
	if err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "Book not found")
		}
		log.Printf("[ERROR] book detail %d: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load book")
	}
	return helper.JsonOK(c, "ok", dto.ToBookDetailResponse(d))
}

// =======================
// ➕ POST /api/a/books (JSON / multipart)
// =======================
func (ctl *BookController) Create(c *fiber.Ctx) error {
	var req dto.CreateBookRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	in := req.ToInput()
	url, err := ctl.saveCover(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if url != "" {
		in.CoverImage = &url
	}

	book, err := ctl.Books.Create(c.UserContext(), in)
	if err != nil {
		ctl.Media.Delete(url)
		return ctl.writeError(c, err)
	}
	return helper.JsonCreated(c, "Book created", dto.ToBookResponse(*book, bookService.Rating{}))
}

// =======================
// ✏️ PUT /api/a/books/:id
// =======================
func (ctl *BookController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUintParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Book not found")
	}

	var req dto.UpdateBookRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	old, err := ctl.Books.Get(c.UserContext(), id)
	if err != nil {
		return ctl.writeError(c, err)
	}

	in := req.ToInput()
	url, err := ctl.saveCover(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if url != "" {
		in.CoverImage = &url
	}

	book, err := ctl.Books.Update(c.UserContext(), id, in)
	if err != nil {
		ctl.Media.Delete(url)
		return ctl.writeError(c, err)
	}
	if url != "" && old.BookCoverImage != "" {
		ctl.Media.Delete(old.BookCoverImage)
	}

	rating, err := ctl.Books.Rating(c.UserContext(), id)
	if err != nil {
		log.Printf("[WARN] rating book %d: %v", id, err)
	}
	return helper.JsonUpdated(c, "Book updated", dto.ToBookResponse(*book, rating))
}

// =======================
// 🗑️ DELETE /api/a/books/:id
// =======================
func (ctl *BookController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUintParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Book not found")
	}
	book, err := ctl.Books.Delete(c.UserContext(), id)
	if err != nil {
		return ctl.writeError(c, err)
	}
	ctl.Media.Delete(book.BookCoverImage)
	return helper.JsonDeleted(c, "Book deleted", fiber.Map{"book_id": id})
}

// saveCover: file opsional "book_cover_image" di multipart.
func (ctl *BookController) saveCover(c *fiber.Ctx) (string, error) {
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return "", nil
	}
	fh, err := c.FormFile("book_cover_image")
	if err != nil || fh == nil {
		return "", nil
	}
	return ctl.Media.SaveImage(coverFolder, fh, media.BookCoverOptions)
}

func (ctl *BookController) writeError(c *fiber.Ctx, err error) error {
	switch {
	case helper.IsNotFound(err):
		return helper.JsonError(c, fiber.StatusNotFound, "Book not found")
	case errors.Is(err, bookService.ErrAuthorNotFound),
		errors.Is(err, bookService.ErrCategoryNotFound),
		errors.Is(err, bookService.ErrInvalidCopies):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, bookService.ErrCopiesBelowOnLoan):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	}
	log.Printf("[ERROR] book admin: %v", err)
	return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save book")
}
