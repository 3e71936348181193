package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	categoryModel "library_backend/internals/features/catalog/categories/model"
)

type CategoryWithCount struct {
	categoryModel.CategoryModel
	BookCount int64 `gorm:"column:book_count"`
}

type Service struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// ListWithCounts: semua kategori (urut nama) + jumlah buku.
func (s *Service) ListWithCounts(ctx context.Context) ([]CategoryWithCount, error) {
	var rows []CategoryWithCount
	err := s.DB.WithContext(ctx).
		Model(&categoryModel.CategoryModel{}).
		Select("categories.*, COUNT(books.book_id) AS book_count").
		Joins("LEFT JOIN books ON books.book_category_id = categories.category_id").
		Group("categories.category_id").
		Order("categories.category_name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return rows, nil
}

// List tanpa hitungan (dropdown filter di halaman buku).
func (s *Service) List(ctx context.Context) ([]categoryModel.CategoryModel, error) {
	var rows []categoryModel.CategoryModel
	if err := s.DB.WithContext(ctx).Order("category_name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return rows, nil
}
