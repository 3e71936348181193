package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"library_backend/internals/databases/dbtest"
	categoryModel "library_backend/internals/features/catalog/categories/model"
)

func TestListWithCounts(t *testing.T) {
	db := dbtest.NewTestDB(t)
	ctx := context.Background()
	a := dbtest.Author(t, db, "Author")
	scifi := dbtest.Category(t, db, "Science Fiction")
	dbtest.Category(t, db, "Biography")
	dbtest.Book(t, db, a.AuthorID, "One", 1, dbtest.WithCategory(scifi.CategoryID))
	dbtest.Book(t, db, a.AuthorID, "Two", 1, dbtest.WithCategory(scifi.CategoryID))

	rows, err := New(db).ListWithCounts(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Biography", rows[0].CategoryName)
	assert.Equal(t, int64(0), rows[0].BookCount)
	assert.Equal(t, "Science Fiction", rows[1].CategoryName)
	assert.Equal(t, int64(2), rows[1].BookCount)
}

func TestCreateDefaultsAndDuplicate(t *testing.T) {
	db := dbtest.NewTestDB(t)
	ctx := context.Background()
	svc := New(db)

	name := " Poetry "
	c, err := svc.Create(ctx, CategoryInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Poetry", c.CategoryName)
	assert.Equal(t, categoryModel.DefaultCategoryIcon, c.CategoryIcon)

	_, err = svc.Create(ctx, CategoryInput{Name: &name})
	assert.ErrorIs(t, err, ErrCategoryExists)
}

func TestDeleteKeepsBooks(t *testing.T) {
	db := dbtest.NewTestDB(t)
	ctx := context.Background()
	a := dbtest.Author(t, db, "Author")
	cat := dbtest.Category(t, db, "Doomed")
	b := dbtest.Book(t, db, a.AuthorID, "Survivor", 1, dbtest.WithCategory(cat.CategoryID))

	_, err := New(db).Delete(ctx, cat.CategoryID)
	require.NoError(t, err)

	got := dbtest.ReloadBook(t, db, b.BookID)
	assert.Nil(t, got.BookCategoryID)

	_, err = New(db).Get(ctx, cat.CategoryID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
