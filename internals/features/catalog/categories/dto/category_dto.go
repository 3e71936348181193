package dto

import (
	"time"

	bookDto "library_backend/internals/features/catalog/books/dto"
	categoryModel "library_backend/internals/features/catalog/categories/model"
	categoryService "library_backend/internals/features/catalog/categories/service"
)

type CreateCategoryRequest struct {
	CategoryName string `json:"category_name" form:"category_name" validate:"required,max=100"`
	CategoryIcon string `json:"category_icon" form:"category_icon" validate:"max=50"`
}

func (r CreateCategoryRequest) ToInput() categoryService.CategoryInput {
	return categoryService.CategoryInput{Name: &r.CategoryName, Icon: &r.CategoryIcon}
}

type UpdateCategoryRequest struct {
	CategoryName *string `json:"category_name" form:"category_name" validate:"omitempty,min=1,max=100"`
	CategoryIcon *string `json:"category_icon" form:"category_icon" validate:"omitempty,max=50"`
}

func (r UpdateCategoryRequest) ToInput() categoryService.CategoryInput {
	return categoryService.CategoryInput{Name: r.CategoryName, Icon: r.CategoryIcon}
}

type CategoryResponse struct {
	CategoryID        uint      `json:"category_id"`
	CategoryName      string    `json:"category_name"`
	CategoryIcon      string    `json:"category_icon"`
	CategoryBookCount int64     `json:"category_book_count"`
	CategoryCreatedAt time.Time `json:"category_created_at"`
}

func ToCategoryResponse(m categoryModel.CategoryModel, bookCount int64) CategoryResponse {
	return CategoryResponse{
		CategoryID:        m.CategoryID,
		CategoryName:      m.CategoryName,
		CategoryIcon:      m.CategoryIcon,
		CategoryBookCount: bookCount,
		CategoryCreatedAt: m.CategoryCreatedAt,
	}
}

func ToCategoryResponses(rows []categoryService.CategoryWithCount) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToCategoryResponse(r.CategoryModel, r.BookCount))
	}
	return out
}

// CategoryDetailResponse: kategori + buku halaman ini (pagination di envelope).
type CategoryDetailResponse struct {
	CategoryResponse
	Books []bookDto.BookResponse `json:"books"`
}
