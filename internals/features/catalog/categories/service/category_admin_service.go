package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	categoryModel "library_backend/internals/features/catalog/categories/model"
	helper "library_backend/internals/helpers"
)

var ErrCategoryExists = errors.New("category name already exists")

type CategoryInput struct {
	Name *string
	Icon *string
}

func (s *Service) Get(ctx context.Context, id uint) (*categoryModel.CategoryModel, error) {
	var m categoryModel.CategoryModel
	if err := s.DB.WithContext(ctx).First(&m, "category_id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("category %d: %w", id, err)
	}
	return &m, nil
}

func (s *Service) Create(ctx context.Context, in CategoryInput) (*categoryModel.CategoryModel, error) {
	m := categoryModel.CategoryModel{CategoryIcon: categoryModel.DefaultCategoryIcon}
	applyCategoryInput(&m, in)
	if err := s.DB.WithContext(ctx).Create(&m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &m, nil
}

func (s *Service) Update(ctx context.Context, id uint, in CategoryInput) (*categoryModel.CategoryModel, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	applyCategoryInput(m, in)
	if err := s.DB.WithContext(ctx).Save(m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("update category: %w", err)
	}
	return m, nil
}

// Delete: buku di kategori ini tetap ada, category_id jadi NULL.
func (s *Service) Delete(ctx context.Context, id uint) (*categoryModel.CategoryModel, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Delete(&categoryModel.CategoryModel{}, "category_id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("delete category: %w", err)
	}
	return m, nil
}

func applyCategoryInput(m *categoryModel.CategoryModel, in CategoryInput) {
	if in.Name != nil {
		m.CategoryName = strings.TrimSpace(*in.Name)
	}
	if in.Icon != nil {
		if icon := strings.TrimSpace(*in.Icon); icon != "" {
			m.CategoryIcon = icon
		}
	}
}
