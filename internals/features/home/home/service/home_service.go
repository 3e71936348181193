package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"library_backend/internals/constants"
	authorModel "library_backend/internals/features/catalog/authors/model"
	bookModel "library_backend/internals/features/catalog/books/model"
	bookService "library_backend/internals/features/catalog/books/service"
	userModel "library_backend/internals/features/users/user/model"
)

type Home struct {
	LatestBooks   []bookService.BookWithRating
	TopRatedBooks []bookService.BookWithRating
	TotalBooks    int64
	TotalAuthors  int64
	TotalStudents int64
}

type Service struct {
	DB    *gorm.DB
	Books *bookService.Service
}

func New(db *gorm.DB) *Service {
	return &Service{DB: db, Books: bookService.New(db)}
}

// Home: 6 buku terbaru, 3 rating tertinggi, total buku/penulis/anggota (non-admin).
func (s *Service) Home(ctx context.Context) (*Home, error) {
	latest, err := s.Books.Latest(ctx, constants.HomeLatestBooks)
	if err != nil {
		return nil, err
	}
	top, err := s.Books.TopRated(ctx, constants.HomeTopRated)
	if err != nil {
		return nil, err
	}

	out := &Home{LatestBooks: latest, TopRatedBooks: top}
	db := s.DB.WithContext(ctx)
	if err := db.Model(&bookModel.BookModel{}).Count(&out.TotalBooks).Error; err != nil {
		return nil, fmt.Errorf("count books: %w", err)
	}
	if err := db.Model(&authorModel.AuthorModel{}).Count(&out.TotalAuthors).Error; err != nil {
		return nil, fmt.Errorf("count authors: %w", err)
	}
	if err := db.Model(&userModel.UserModel{}).
		Where("role <> ?", constants.RoleAdmin).
		Count(&out.TotalStudents).Error; err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	return out, nil
}
