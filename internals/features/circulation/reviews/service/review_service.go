package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	bookModel "library_backend/internals/features/catalog/books/model"
	borrowingModel "library_backend/internals/features/circulation/borrowings/model"
	reviewModel "library_backend/internals/features/circulation/reviews/model"
	helper "library_backend/internals/helpers"
)

var (
	ErrReviewNotAllowed = errors.New("only borrowed books can be reviewed")
	ErrReviewExists     = errors.New("book already reviewed by this user")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
)

type Service struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// Eligibility: cek gerbang review tanpa menulis apa pun.
func (s *Service) Eligibility(ctx context.Context, userID uuid.UUID, bookID uint) error {
	return checkEligibility(s.DB.WithContext(ctx), userID, bookID)
}

func checkEligibility(db *gorm.DB, userID uuid.UUID, bookID uint) error {
	var book bookModel.BookModel
	if err := db.Select("book_id").First(&book, "book_id = ?", bookID).Error; err != nil {
		return fmt.Errorf("book %d: %w", bookID, err)
	}

	var borrowed int64
	if err := db.Model(&borrowingModel.BorrowingModel{}).
		Where("borrowing_user_id = ? AND borrowing_book_id = ?", userID, bookID).
		Count(&borrowed).Error; err != nil {
		return err
	}
	if borrowed == 0 {
		return ErrReviewNotAllowed
	}

	var reviewed int64
	if err := db.Model(&reviewModel.ReviewModel{}).
		Where("review_user_id = ? AND review_book_id = ?", userID, bookID).
		Count(&reviewed).Error; err != nil {
		return err
	}
	if reviewed > 0 {
		return ErrReviewExists
	}
	return nil
}

// Create: butuh minimal satu peminjaman (status apa pun) dan belum pernah review buku ini.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, bookID uint, rating int, comment string) (*reviewModel.ReviewModel, error) {
	if rating < reviewModel.MinRating || rating > reviewModel.MaxRating {
		return nil, ErrInvalidRating
	}

	var out reviewModel.ReviewModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkEligibility(tx, userID, bookID); err != nil {
			return err
		}
		out = reviewModel.ReviewModel{
			ReviewUserID:  userID,
			ReviewBookID:  bookID,
			ReviewRating:  rating,
			ReviewComment: strings.TrimSpace(comment),
		}
		return insertReview(tx, &out)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// unique (user, book) menang kalau dua request balapan lolos checkEligibility bersamaan
func insertReview(tx *gorm.DB, m *reviewModel.ReviewModel) error {
	if err := tx.Create(m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return ErrReviewExists
		}
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}
