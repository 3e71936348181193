package dto

import (
	"time"

	authorModel "library_backend/internals/features/catalog/authors/model"
	authorService "library_backend/internals/features/catalog/authors/service"
	bookDto "library_backend/internals/features/catalog/books/dto"
	bookService "library_backend/internals/features/catalog/books/service"
)

// ============================
// Request (admin, JSON / multipart dengan author_photo)
// ============================

type CreateAuthorRequest struct {
	AuthorName string `json:"author_name" form:"author_name" validate:"required,max=200"`
	AuthorBio  string `json:"author_bio" form:"author_bio"`
}

func (r CreateAuthorRequest) ToInput() authorService.AuthorInput {
	return authorService.AuthorInput{Name: &r.AuthorName, Bio: &r.AuthorBio}
}

type UpdateAuthorRequest struct {
	AuthorName *string `json:"author_name" form:"author_name" validate:"omitempty,min=1,max=200"`
	AuthorBio  *string `json:"author_bio" form:"author_bio"`
}

func (r UpdateAuthorRequest) ToInput() authorService.AuthorInput {
	return authorService.AuthorInput{Name: r.AuthorName, Bio: r.AuthorBio}
}

// ============================
// Response
// ============================

type AuthorResponse struct {
	AuthorID        uint      `json:"author_id"`
	AuthorName      string    `json:"author_name"`
	AuthorBio       string    `json:"author_bio"`
	AuthorPhoto     string    `json:"author_photo"`
	AuthorBookCount int64     `json:"author_book_count"`
	AuthorCreatedAt time.Time `json:"author_created_at"`
}

func ToAuthorResponse(m authorModel.AuthorModel, bookCount int64) AuthorResponse {
	return AuthorResponse{
		AuthorID:        m.AuthorID,
		AuthorName:      m.AuthorName,
		AuthorBio:       m.AuthorBio,
		AuthorPhoto:     m.AuthorPhoto,
		AuthorBookCount: bookCount,
		AuthorCreatedAt: m.AuthorCreatedAt,
	}
}

func ToAuthorResponses(rows []authorService.AuthorWithCount) []AuthorResponse {
	out := make([]AuthorResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToAuthorResponse(r.AuthorModel, r.BookCount))
	}
	return out
}

type AuthorDetailResponse struct {
	AuthorResponse
	Books []bookDto.BookResponse `json:"books"`
}

func ToAuthorDetailResponse(m authorModel.AuthorModel, books []bookService.BookWithRating) AuthorDetailResponse {
	return AuthorDetailResponse{
		AuthorResponse: ToAuthorResponse(m, int64(len(books))),
		Books:          bookDto.ToBookResponses(books),
	}
}
