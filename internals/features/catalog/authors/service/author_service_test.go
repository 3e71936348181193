package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"library_backend/internals/databases/dbtest"
	bookModel "library_backend/internals/features/catalog/books/model"
)

func TestAuthorsWithCountsAndDetail(t *testing.T) {
	db := dbtest.NewTestDB(t)
	ctx := context.Background()
	herbert := dbtest.Author(t, db, "Frank Herbert")
	austen := dbtest.Author(t, db, "Jane Austen")
	dbtest.Book(t, db, herbert.AuthorID, "Dune", 1)
	dbtest.Book(t, db, herbert.AuthorID, "Dune Messiah", 1)
	svc := New(db)

	rows, err := svc.ListWithCounts(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Frank Herbert", rows[0].AuthorName)
	assert.Equal(t, int64(2), rows[0].BookCount)
	assert.Equal(t, austen.AuthorID, rows[1].AuthorID)
	assert.Equal(t, int64(0), rows[1].BookCount)

	a, books, err := svc.Detail(ctx, herbert.AuthorID)
	require.NoError(t, err)
	assert.Equal(t, "Frank Herbert", a.AuthorName)
	assert.Len(t, books, 2)

	_, _, err = svc.Detail(ctx, 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAuthorUpdateAndDeleteCascades(t *testing.T) {
	db := dbtest.NewTestDB(t)
	ctx := context.Background()
	a := dbtest.Author(t, db, "Old Name")
	dbtest.Book(t, db, a.AuthorID, "Gone", 1)
	svc := New(db)

	name, bio := "New Name", "  Wrote things.  "
	updated, err := svc.Update(ctx, a.AuthorID, AuthorInput{Name: &name, Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.AuthorName)
	assert.Equal(t, "Wrote things.", updated.AuthorBio)

	_, err = svc.Delete(ctx, a.AuthorID)
	require.NoError(t, err)

	var n int64
	require.NoError(t, db.Model(&bookModel.BookModel{}).Where("book_author_id = ?", a.AuthorID).Count(&n).Error)
	assert.Equal(t, int64(0), n)
}
