package dto

import (
	"time"

	bookModel "library_backend/internals/features/catalog/books/model"
	bookService "library_backend/internals/features/catalog/books/service"
	categoryModel "library_backend/internals/features/catalog/categories/model"
	reviewDto "library_backend/internals/features/circulation/reviews/dto"
)

/* =========================================================
   REQUEST (admin)
   JSON atau multipart (book_cover_image sebagai file)
========================================================= */

type CreateBookRequest struct {
	BookTitle           string `json:"book_title" form:"book_title" validate:"required,max=300"`
	BookAuthorID        uint   `json:"book_author_id" form:"book_author_id" validate:"required,gt=0"`
	BookCategoryID      *uint  `json:"book_category_id" form:"book_category_id" validate:"omitempty,gt=0"`
	BookDescription     string `json:"book_description" form:"book_description"`
	BookPublicationYear *int   `json:"book_publication_year" form:"book_publication_year" validate:"omitempty,min=0,max=9999"`
	BookPages           *int   `json:"book_pages" form:"book_pages" validate:"omitempty,min=0"`
	BookLanguage        string `json:"book_language" form:"book_language" validate:"max=50"`
	BookTotalCopies     *int   `json:"book_total_copies" form:"book_total_copies" validate:"omitempty,min=1"`
}

func (r CreateBookRequest) ToInput() bookService.BookInput {
	in := bookService.BookInput{
		Title:           &r.BookTitle,
		AuthorID:        &r.BookAuthorID,
		CategoryID:      r.BookCategoryID,
		Description:     &r.BookDescription,
		PublicationYear: r.BookPublicationYear,
		Pages:           r.BookPages,
		TotalCopies:     r.BookTotalCopies,
	}
	if r.BookLanguage != "" {
		in.Language = &r.BookLanguage
	}
	return in
}

type UpdateBookRequest struct {
	BookTitle           *string `json:"book_title" form:"book_title" validate:"omitempty,min=1,max=300"`
	BookAuthorID        *uint   `json:"book_author_id" form:"book_author_id" validate:"omitempty,gt=0"`
	BookCategoryID      *uint   `json:"book_category_id" form:"book_category_id" validate:"omitempty,gt=0"`
	ClearCategory       bool    `json:"clear_category" form:"clear_category"`
	BookDescription     *string `json:"book_description" form:"book_description"`
	BookPublicationYear *int    `json:"book_publication_year" form:"book_publication_year" validate:"omitempty,min=0,max=9999"`
	BookPages           *int    `json:"book_pages" form:"book_pages" validate:"omitempty,min=0"`
	BookLanguage        *string `json:"book_language" form:"book_language" validate:"omitempty,max=50"`
	BookTotalCopies     *int    `json:"book_total_copies" form:"book_total_copies" validate:"omitempty,min=1"`
}

func (r UpdateBookRequest) ToInput() bookService.BookInput {
	return bookService.BookInput{
		Title:           r.BookTitle,
		AuthorID:        r.BookAuthorID,
		CategoryID:      r.BookCategoryID,
		ClearCategory:   r.ClearCategory,
		Description:     r.BookDescription,
		PublicationYear: r.BookPublicationYear,
		Pages:           r.BookPages,
		Language:        r.BookLanguage,
		TotalCopies:     r.BookTotalCopies,
	}
}

/* =========================================================
   RESPONSE
========================================================= */

type AuthorBrief struct {
	AuthorID    uint   `json:"author_id"`
	AuthorName  string `json:"author_name"`
	AuthorPhoto string `json:"author_photo,omitempty"`
}

type CategoryBrief struct {
	CategoryID   uint   `json:"category_id"`
	CategoryName string `json:"category_name"`
	CategoryIcon string `json:"category_icon"`
}

type BookResponse struct {
	BookID              uint           `json:"book_id"`
	BookTitle           string         `json:"book_title"`
	BookDescription     string         `json:"book_description"`
	BookCoverImage      string         `json:"book_cover_image"`
	BookPublicationYear int            `json:"book_publication_year"`
	BookPages           int            `json:"book_pages"`
	BookLanguage        string         `json:"book_language"`
	BookTotalCopies     int            `json:"book_total_copies"`
	BookAvailableCopies int            `json:"book_available_copies"`
	IsAvailable         bool           `json:"is_available"`
	AverageRating       float64        `json:"average_rating"`
	RatingCount         int64          `json:"rating_count"`
	Author              *AuthorBrief   `json:"author,omitempty"`
	Category            *CategoryBrief `json:"category,omitempty"`
	BookCreatedAt       time.Time      `json:"book_created_at"`
}

func ToBookResponse(b bookModel.BookModel, r bookService.Rating) BookResponse {
	out := BookResponse{
		BookID:              b.BookID,
		BookTitle:           b.BookTitle,
		BookDescription:     b.BookDescription,
		BookCoverImage:      b.BookCoverImage,
		BookPublicationYear: b.BookPublicationYear,
		BookPages:           b.BookPages,
		BookLanguage:        b.BookLanguage,
		BookTotalCopies:     b.BookTotalCopies,
		BookAvailableCopies: b.BookAvailableCopies,
		IsAvailable:         b.IsAvailable(),
		AverageRating:       r.Average,
		RatingCount:         r.Count,
		BookCreatedAt:       b.BookCreatedAt,
	}
	if b.Author != nil {
		out.Author = &AuthorBrief{
			AuthorID:    b.Author.AuthorID,
			AuthorName:  b.Author.AuthorName,
			AuthorPhoto: b.Author.AuthorPhoto,
		}
	}
	if b.Category != nil {
		out.Category = ToCategoryBrief(*b.Category)
	}
	return out
}

func ToCategoryBrief(c categoryModel.CategoryModel) *CategoryBrief {
	return &CategoryBrief{
		CategoryID:   c.CategoryID,
		CategoryName: c.CategoryName,
		CategoryIcon: c.CategoryIcon,
	}
}

func ToBookResponses(items []bookService.BookWithRating) []BookResponse {
	out := make([]BookResponse, 0, len(items))
	for _, it := range items {
		out = append(out, ToBookResponse(it.Book, it.Rating))
	}
	return out
}

type BookDetailResponse struct {
	BookResponse
	Reviews               []reviewDto.ReviewResponse `json:"reviews"`
	UserHasBorrowed       bool                       `json:"user_has_borrowed"`
	UserCurrentlyBorrowed bool                       `json:"user_currently_borrowed"`
	UserHasReviewed       bool                       `json:"user_has_reviewed"`
}

func ToBookDetailResponse(d *bookService.Detail) BookDetailResponse {
	return BookDetailResponse{
		BookResponse:          ToBookResponse(d.Book, d.Rating),
		Reviews:               reviewDto.ToReviewResponses(d.Reviews),
		UserHasBorrowed:       d.UserHasBorrowed,
		UserCurrentlyBorrowed: d.UserCurrentlyBorrowed,
		UserHasReviewed:       d.UserHasReviewed,
	}
}

/* =========================================================
   LIST INCLUDES (state filter untuk UI)
========================================================= */

type CategoryOption struct {
	CategoryBrief
	IsSelected bool `json:"is_selected"`
}

type BookListIncludes struct {
	SearchQuery      string           `json:"search_query"`
	SelectedCategory *uint            `json:"selected_category"`
	SortBy           string           `json:"sort_by"`
	Categories       []CategoryOption `json:"categories"`
}

func ToBookListIncludes(q bookService.ListQuery, cats []categoryModel.CategoryModel) BookListIncludes {
	opts := make([]CategoryOption, 0, len(cats))
	for _, c := range cats {
		opts = append(opts, CategoryOption{
			CategoryBrief: *ToCategoryBrief(c),
			IsSelected:    q.CategoryID != nil && *q.CategoryID == c.CategoryID,
		})
	}
	return BookListIncludes{
		SearchQuery:      q.Search,
		SelectedCategory: q.CategoryID,
		SortBy:           q.Sort,
		Categories:       opts,
	}
}
