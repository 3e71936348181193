package service

import (
	"context"
	"fmt"
	"strings"

	authorModel "library_backend/internals/features/catalog/authors/model"
	bookService "library_backend/internals/features/catalog/books/service"
)

type AuthorInput struct {
	Name  *string
	Bio   *string
	Photo *string
}

// Detail: penulis + semua bukunya (terbaru dulu).
func (s *Service) Detail(ctx context.Context, id uint) (*authorModel.AuthorModel, []bookService.BookWithRating, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	books, err := bookService.New(s.DB).ByAuthor(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return a, books, nil
}

func (s *Service) Create(ctx context.Context, in AuthorInput) (*authorModel.AuthorModel, error) {
	a := authorModel.AuthorModel{}
	applyAuthorInput(&a, in)
	if err := s.DB.WithContext(ctx).Create(&a).Error; err != nil {
		return nil, fmt.Errorf("create author: %w", err)
	}
	return &a, nil
}

func (s *Service) Update(ctx context.Context, id uint, in AuthorInput) (*authorModel.AuthorModel, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	applyAuthorInput(a, in)
	if err := s.DB.WithContext(ctx).Save(a).Error; err != nil {
		return nil, fmt.Errorf("update author: %w", err)
	}
	return a, nil
}

// Delete: buku milik penulis ikut terhapus (FK cascade).
func (s *Service) Delete(ctx context.Context, id uint) (*authorModel.AuthorModel, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Delete(&authorModel.AuthorModel{}, "author_id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("delete author: %w", err)
	}
	return a, nil
}

func applyAuthorInput(a *authorModel.AuthorModel, in AuthorInput) {
	if in.Name != nil {
		a.AuthorName = strings.TrimSpace(*in.Name)
	}
	if in.Bio != nil {
		a.AuthorBio = strings.TrimSpace(*in.Bio)
	}
	if in.Photo != nil {
		a.AuthorPhoto = *in.Photo
	}
}
