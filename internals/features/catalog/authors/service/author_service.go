package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	authorModel "library_backend/internals/features/catalog/authors/model"
)

type AuthorWithCount struct {
	authorModel.AuthorModel
	BookCount int64 `gorm:"column:book_count"`
}

type Service struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// ListWithCounts: semua penulis (urut nama) + jumlah bukunya.
func (s *Service) ListWithCounts(ctx context.Context) ([]AuthorWithCount, error) {
	var rows []AuthorWithCount
	err := s.DB.WithContext(ctx).
		Model(&authorModel.AuthorModel{}).
		Select("authors.*, COUNT(books.book_id) AS book_count").
		Joins("LEFT JOIN books ON books.book_author_id = authors.author_id").
		Group("authors.author_id").
		Order("authors.author_name ASC").Order("authors.author_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	return rows, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*authorModel.AuthorModel, error) {
	var a authorModel.AuthorModel
	if err := s.DB.WithContext(ctx).First(&a, "author_id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("author %d: %w", id, err)
	}
	return &a, nil
}
