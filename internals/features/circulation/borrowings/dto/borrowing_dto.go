package dto

import (
	"time"

	bookDto "library_backend/internals/features/catalog/books/dto"
	bookService "library_backend/internals/features/catalog/books/service"
	borrowingModel "library_backend/internals/features/circulation/borrowings/model"
)

type BorrowingResponse struct {
	BorrowingID         uint                  `json:"borrowing_id"`
	BorrowingBookID     uint                  `json:"borrowing_book_id"`
	BorrowingBorrowDate time.Time             `json:"borrowing_borrow_date"`
	BorrowingDueDate    time.Time             `json:"borrowing_due_date"`
	BorrowingReturnDate *time.Time            `json:"borrowing_return_date"`
	BorrowingReturned   bool                  `json:"borrowing_returned"`
	IsOverdue           bool                  `json:"is_overdue"`
	RemainingDays       int                   `json:"remaining_days"`
	Book                *bookDto.BookResponse `json:"book,omitempty"`
}

// ToBorrowingResponse: rating = rating buku yang dipinjam (zero value kalau belum ada review).
func ToBorrowingResponse(m borrowingModel.BorrowingModel, rating bookService.Rating, now time.Time) BorrowingResponse {
	out := BorrowingResponse{
		BorrowingID:         m.BorrowingID,
		BorrowingBookID:     m.BorrowingBookID,
		BorrowingBorrowDate: m.BorrowingBorrowDate,
		BorrowingDueDate:    m.BorrowingDueDate,
		BorrowingReturnDate: m.BorrowingReturnDate,
		BorrowingReturned:   m.BorrowingReturned,
		IsOverdue:           m.IsOverdue(now),
		RemainingDays:       m.RemainingDays(now),
	}
	if m.Book != nil {
		b := bookDto.ToBookResponse(*m.Book, rating)
		out.Book = &b
	}
	return out
}

func ToBorrowingResponses(list []borrowingModel.BorrowingModel, ratings map[uint]bookService.Rating, now time.Time) []BorrowingResponse {
	out := make([]BorrowingResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToBorrowingResponse(m, ratings[m.BorrowingBookID], now))
	}
	return out
}

// BookIDs: id buku unik dari daftar pinjaman (untuk batch load rating).
func BookIDs(lists ...[]borrowingModel.BorrowingModel) []uint {
	seen := map[uint]struct{}{}
	out := []uint{}
	for _, list := range lists {
		for _, m := range list {
			if _, ok := seen[m.BorrowingBookID]; ok {
				continue
			}
			seen[m.BorrowingBookID] = struct{}{}
			out = append(out, m.BorrowingBookID)
		}
	}
	return out
}

// MyBooksResponse: GET /my-books
type MyBooksResponse struct {
	CurrentBorrowings []BorrowingResponse `json:"current_borrowings"`
	PastBorrowings    []BorrowingResponse `json:"past_borrowings"`
	MaxActive         int                 `json:"max_active"`
}
