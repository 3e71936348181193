package model

import (
	"time"

	authorModel "library_backend/internals/features/catalog/authors/model"
	categoryModel "library_backend/internals/features/catalog/categories/model"
)

// BookModel: stok fisik = book_total_copies, yang sedang tidak dipinjam = book_available_copies.
// 0 <= available <= total dijaga oleh UPDATE bersyarat di service borrowings.
type BookModel struct {
	BookID              uint      `gorm:"column:book_id;primaryKey;autoIncrement" json:"book_id"`
	BookTitle           string    `gorm:"column:book_title;type:varchar(300);not null;index:idx_books_title" json:"book_title"`
	BookAuthorID        uint      `gorm:"column:book_author_id;not null;index:idx_books_author" json:"book_author_id"`
	BookCategoryID      *uint     `gorm:"column:book_category_id;index:idx_books_category" json:"book_category_id,omitempty"`
	BookDescription     string    `gorm:"column:book_description;type:text" json:"book_description"`
	BookCoverImage      string    `gorm:"column:book_cover_image;type:varchar(500)" json:"book_cover_image"`
	BookPublicationYear int       `gorm:"column:book_publication_year;not null" json:"book_publication_year"`
	BookPages           int       `gorm:"column:book_pages;not null" json:"book_pages"`
	BookLanguage        string    `gorm:"column:book_language;type:varchar(50);not null" json:"book_language"`
	BookTotalCopies     int       `gorm:"column:book_total_copies;not null" json:"book_total_copies"`
	BookAvailableCopies int       `gorm:"column:book_available_copies;not null" json:"book_available_copies"`
	BookCreatedAt       time.Time `gorm:"column:book_created_at;autoCreateTime;index:idx_books_created_at" json:"book_created_at"`
	BookUpdatedAt       time.Time `gorm:"column:book_updated_at;autoUpdateTime" json:"book_updated_at"`

	Author   *authorModel.AuthorModel     `gorm:"foreignKey:BookAuthorID;references:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"author,omitempty"`
	Category *categoryModel.CategoryModel `gorm:"foreignKey:BookCategoryID;references:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"category,omitempty"`
}

func (BookModel) TableName() string {
	return "books"
}

func (b BookModel) IsAvailable() bool {
	return b.BookAvailableCopies > 0
}

// Default nilai kolom buku baru (mengikuti form admin)
const (
	DefaultPublicationYear = 2024
	DefaultLanguage        = "English"
	DefaultCopies          = 1
)
