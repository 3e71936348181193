package model

import (
	"time"

	"github.com/google/uuid"

	bookModel "library_backend/internals/features/catalog/books/model"
	userModel "library_backend/internals/features/users/user/model"
)

const (
	MinRating = 1
	MaxRating = 5
)

// ReviewModel: satu user hanya boleh satu review per buku (uq_reviews_user_book).
type ReviewModel struct {
	ReviewID        uint      `gorm:"column:review_id;primaryKey;autoIncrement" json:"review_id"`
	ReviewUserID    uuid.UUID `gorm:"column:review_user_id;type:char(36);not null;uniqueIndex:uq_reviews_user_book,priority:1" json:"review_user_id"`
	ReviewBookID    uint      `gorm:"column:review_book_id;not null;uniqueIndex:uq_reviews_user_book,priority:2;index:idx_reviews_book" json:"review_book_id"`
	ReviewRating    int       `gorm:"column:review_rating;not null;check:chk_reviews_rating,review_rating >= 1 AND review_rating <= 5" json:"review_rating"`
	ReviewComment   string    `gorm:"column:review_comment;type:text" json:"review_comment"`
	ReviewCreatedAt time.Time `gorm:"column:review_created_at;autoCreateTime;index:idx_reviews_created_at" json:"review_created_at"`

	User *userModel.UserModel `gorm:"foreignKey:ReviewUserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"user,omitempty"`
	Book *bookModel.BookModel `gorm:"foreignKey:ReviewBookID;references:BookID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (ReviewModel) TableName() string {
	return "reviews"
}
