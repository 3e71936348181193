package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	bookDto "library_backend/internals/features/catalog/books/dto"
	bookService "library_backend/internals/features/catalog/books/service"
	"library_backend/internals/features/catalog/categories/dto"
	categoryService "library_backend/internals/features/catalog/categories/service"
	helper "library_backend/internals/helpers"
)

var validate = helper.RegisterJSONTagName(validator.New())

type CategoryController struct {
	DB         *gorm.DB
	Categories *categoryService.Service
	Books      *bookService.Service
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{
		DB:         db,
		Categories: categoryService.New(db),
		Books:      bookService.New(db),
	}
}

// GET /categories
func (ctl *CategoryController) List(c *fiber.Ctx) error {
	rows, err := ctl.Categories.ListWithCounts(c.UserContext())
	if err != nil {
		log.Printf("[ERROR] list categories: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load categories")
	}
	return helper.JsonList(c, "ok", dto.ToCategoryResponses(rows), nil)
}

// GET /categories/:id?page= (9 buku per halaman)
func (ctl *CategoryController) Detail(c *fiber.Ctx) error {
	id, err := helper.ParseUintParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Category not found")
	}
	cat, page, err := ctl.Books.ByCategory(c.UserContext(), id, helper.ResolvePage(c))
	if err != nil {
		return ctl.writeError(c, err)
	}

	books := bookDto.ToBookResponses(page.Items)
	return helper.JsonList(c, "ok", dto.CategoryDetailResponse{
		CategoryResponse: dto.ToCategoryResponse(cat, page.Pagination.Total),
		Books:            books,
	}, withCount(page.Pagination, len(books)))
}

func withCount(p helper.Pagination, n int) *helper.Pagination {
	p.Count = n
	return &p
}

// POST /api/a/categories
func (ctl *CategoryController) Create(c *fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	m, err := ctl.Categories.Create(c.UserContext(), req.ToInput())
	if err != nil {
		return ctl.writeError(c, err)
	}
	return helper.JsonCreated(c, "Category created", dto.ToCategoryResponse(*m, 0))
}

// PUT /api/a/categories/:id
func (ctl *CategoryController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUintParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Category not found")
	}
	var req dto.UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	m, err := ctl.Categories.Update(c.UserContext(), id, req.ToInput())
	if err != nil {
		return ctl.writeError(c, err)
	}
	return helper.JsonUpdated(c, "Category updated", dto.ToCategoryResponse(*m, 0))
}

// DELETE /api/a/categories/:id (buku tetap, kategori jadi kosong)
func (ctl *CategoryController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUintParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Category not found")
	}
	if _, err := ctl.Categories.Delete(c.UserContext(), id); err != nil {
		return ctl.writeError(c, err)
	}
	return helper.JsonDeleted(c, "Category deleted", fiber.Map{"category_id": id})
}

func (ctl *CategoryController) writeError(c *fiber.Ctx, err error) error {
	switch {
	case helper.IsNotFound(err):
		return helper.JsonError(c, fiber.StatusNotFound, "Category not found")
	case errors.Is(err, categoryService.ErrCategoryExists):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	}
	log.Printf("[ERROR] category: %v", err)
	return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to process category")
}
