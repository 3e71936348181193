package dbtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	authorModel "library_backend/internals/features/catalog/authors/model"
	bookModel "library_backend/internals/features/catalog/books/model"
	categoryModel "library_backend/internals/features/catalog/categories/model"
	userModel "library_backend/internals/features/users/user/model"
)

// User membuat user aktif role "user" (password bukan hash asli).
func User(t testing.TB, db *gorm.DB, username string) userModel.UserModel {
	t.Helper()
	u := userModel.UserModel{
		UserName: username,
		Email:    username + "@example.com",
		Password: "x",
		IsActive: true,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func Author(t testing.TB, db *gorm.DB, name string) authorModel.AuthorModel {
	t.Helper()
	a := authorModel.AuthorModel{AuthorName: name}
	require.NoError(t, db.Create(&a).Error)
	return a
}

func Category(t testing.TB, db *gorm.DB, name string) categoryModel.CategoryModel {
	t.Helper()
	c := categoryModel.CategoryModel{CategoryName: name, CategoryIcon: categoryModel.DefaultCategoryIcon}
	require.NoError(t, db.Create(&c).Error)
	return c
}

// BookOpt mengubah buku sebelum disimpan.
type BookOpt func(*bookModel.BookModel)

func WithCategory(id uint) BookOpt {
	return func(b *bookModel.BookModel) { b.BookCategoryID = &id }
}

func WithCreatedAt(t time.Time) BookOpt {
	return func(b *bookModel.BookModel) { b.BookCreatedAt = t }
}

// Book: available = total = copies.
func Book(t testing.TB, db *gorm.DB, authorID uint, title string, copies int, opts ...BookOpt) bookModel.BookModel {
	t.Helper()
	b := bookModel.BookModel{
		BookTitle:           title,
		BookAuthorID:        authorID,
		BookPublicationYear: bookModel.DefaultPublicationYear,
		BookLanguage:        bookModel.DefaultLanguage,
		BookPages:           100,
		BookTotalCopies:     copies,
		BookAvailableCopies: copies,
	}
	for _, o := range opts {
		o(&b)
	}
	require.NoError(t, db.Create(&b).Error)
	return b
}

// ReloadBook membaca ulang stok dari DB.
func ReloadBook(t testing.TB, db *gorm.DB, id uint) bookModel.BookModel {
	t.Helper()
	var b bookModel.BookModel
	require.NoError(t, db.First(&b, "book_id = ?", id).Error)
	return b
}
