package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	authorModel "library_backend/internals/features/catalog/authors/model"
	bookModel "library_backend/internals/features/catalog/books/model"
	categoryModel "library_backend/internals/features/catalog/categories/model"
)

var (
	ErrInvalidCopies     = errors.New("total copies must be at least 1")
	ErrCopiesBelowOnLoan = errors.New("total copies cannot be lower than copies currently on loan")
	ErrAuthorNotFound    = errors.New("author not found")
	ErrCategoryNotFound  = errors.New("category not found")
)

// BookInput: nil = tidak diubah (update), default dipakai saat create.
type BookInput struct {
	Title           *string
	AuthorID        *uint
	CategoryID      *uint
	ClearCategory   bool
	Description     *string
	CoverImage      *string
	PublicationYear *int
	Pages           *int
	Language        *string
	TotalCopies     *int
}

func (s *Service) Get(ctx context.Context, id uint) (*bookModel.BookModel, error) {
	var b bookModel.BookModel
	if err := s.DB.WithContext(ctx).Preload("Author").Preload("Category").First(&b, "book_id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("book %d: %w", id, err)
	}
	return &b, nil
}

// Create: available_copies = total_copies untuk buku baru.
func (s *Service) Create(ctx context.Context, in BookInput) (*bookModel.BookModel, error) {
	b := bookModel.BookModel{
		BookPublicationYear: bookModel.DefaultPublicationYear,
		BookLanguage:        bookModel.DefaultLanguage,
		BookTotalCopies:     bookModel.DefaultCopies,
	}
	if in.AuthorID == nil {
		return nil, ErrAuthorNotFound
	}
	if err := s.checkRefs(ctx, in); err != nil {
		return nil, err
	}
	applyBookInput(&b, in)
	if b.BookTotalCopies < 1 {
		return nil, ErrInvalidCopies
	}
	b.BookAvailableCopies = b.BookTotalCopies

	if err := s.DB.WithContext(ctx).Create(&b).Error; err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}
	return s.Get(ctx, b.BookID)
}

// Update: perubahan total_copies digeser juga ke available_copies secara atomik,
// ditolak kalau hasilnya < jumlah yang sedang dipinjam.
func (s *Service) Update(ctx context.Context, id uint, in BookInput) (*bookModel.BookModel, error) {
	if err := s.checkRefs(ctx, in); err != nil {
		return nil, err
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b bookModel.BookModel
		if err := tx.First(&b, "book_id = ?", id).Error; err != nil {
			return fmt.Errorf("book %d: %w", id, err)
		}

		if in.TotalCopies != nil && *in.TotalCopies != b.BookTotalCopies {
			if *in.TotalCopies < 1 {
				return ErrInvalidCopies
			}
			delta := *in.TotalCopies - b.BookTotalCopies
			res := tx.Model(&bookModel.BookModel{}).
				Where("book_id = ? AND book_available_copies + ? >= 0", id, delta).
				UpdateColumns(map[string]any{
					"book_total_copies":     *in.TotalCopies,
					"book_available_copies": gorm.Expr("book_available_copies + ?", delta),
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrCopiesBelowOnLoan
			}
		}

		fields := in
		fields.TotalCopies = nil
		updates := bookUpdates(fields)
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&bookModel.BookModel{}).Where("book_id = ?", id).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete: borrowing & review buku ikut terhapus (FK cascade).
func (s *Service) Delete(ctx context.Context, id uint) (*bookModel.BookModel, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Delete(&bookModel.BookModel{}, "book_id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("delete book: %w", err)
	}
	return b, nil
}

func (s *Service) checkRefs(ctx context.Context, in BookInput) error {
	db := s.DB.WithContext(ctx)
	if in.AuthorID != nil {
		var n int64
		if err := db.Model(&authorModel.AuthorModel{}).Where("author_id = ?", *in.AuthorID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrAuthorNotFound
		}
	}
	if in.CategoryID != nil {
		var n int64
		if err := db.Model(&categoryModel.CategoryModel{}).Where("category_id = ?", *in.CategoryID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrCategoryNotFound
		}
	}
	return nil
}

func applyBookInput(b *bookModel.BookModel, in BookInput) {
	if in.Title != nil {
		b.BookTitle = strings.TrimSpace(*in.Title)
	}
	if in.AuthorID != nil {
		b.BookAuthorID = *in.AuthorID
	}
	if in.CategoryID != nil {
		id := *in.CategoryID
		b.BookCategoryID = &id
	}
	if in.Description != nil {
		b.BookDescription = strings.TrimSpace(*in.Description)
	}
	if in.CoverImage != nil {
		b.BookCoverImage = *in.CoverImage
	}
	if in.PublicationYear != nil {
		b.BookPublicationYear = *in.PublicationYear
	}
	if in.Pages != nil {
		b.BookPages = *in.Pages
	}
	if in.Language != nil && strings.TrimSpace(*in.Language) != "" {
		b.BookLanguage = strings.TrimSpace(*in.Language)
	}
	if in.TotalCopies != nil {
		b.BookTotalCopies = *in.TotalCopies
	}
}

func bookUpdates(in BookInput) map[string]any {
	m := map[string]any{}
	if in.Title != nil {
		m["book_title"] = strings.TrimSpace(*in.Title)
	}
	if in.AuthorID != nil {
		m["book_author_id"] = *in.AuthorID
	}
	if in.CategoryID != nil {
		m["book_category_id"] = *in.CategoryID
	} else if in.ClearCategory {
		m["book_category_id"] = nil
	}
	if in.Description != nil {
		m["book_description"] = strings.TrimSpace(*in.Description)
	}
	if in.CoverImage != nil {
		m["book_cover_image"] = *in.CoverImage
	}
	if in.PublicationYear != nil {
		m["book_publication_year"] = *in.PublicationYear
	}
	if in.Pages != nil {
		m["book_pages"] = *in.Pages
	}
	if in.Language != nil && strings.TrimSpace(*in.Language) != "" {
		m["book_language"] = strings.TrimSpace(*in.Language)
	}
	return m
}
