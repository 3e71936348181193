package dto

import (
	bookDto "library_backend/internals/features/catalog/books/dto"
	homeService "library_backend/internals/features/home/home/service"
)

type HomeResponse struct {
	LatestBooks   []bookDto.BookResponse `json:"latest_books"`
	TopRatedBooks []bookDto.BookResponse `json:"top_rated_books"`
	TotalBooks    int64                  `json:"total_books"`
	TotalAuthors  int64                  `json:"total_authors"`
	TotalStudents int64                  `json:"total_students"`
}

func ToHomeResponse(h *homeService.Home) HomeResponse {
	return HomeResponse{
		LatestBooks:   bookDto.ToBookResponses(h.LatestBooks),
		TopRatedBooks: bookDto.ToBookResponses(h.TopRatedBooks),
		TotalBooks:    h.TotalBooks,
		TotalAuthors:  h.TotalAuthors,
		TotalStudents: h.TotalStudents,
	}
}
