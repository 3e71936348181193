package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"library_backend/internals/databases/dbtest"
	borrowingService "library_backend/internals/features/circulation/borrowings/service"
	reviewModel "library_backend/internals/features/circulation/reviews/model"
)

func TestReviewRequiresBorrowing(t *testing.T) {
	db := dbtest.NewTestDB(t)
	ctx := context.Background()
	u := dbtest.User(t, db, "reader")
	a := dbtest.Author(t, db, "Author")
	b := dbtest.Book(t, db, a.AuthorID, "Unread", 1)

	svc := New(db)
	assert.ErrorIs(t, svc.Eligibility(ctx, u.ID, b.BookID), ErrReviewNotAllowed)

	_, err := svc.Create(ctx, u.ID, b.BookID, 5, "great")
	assert.ErrorIs(t, err, ErrReviewNotAllowed)
}

func TestReviewAfterReturnAndOnlyOnce(t *testing.T) {
	db := dbtest.NewTestDB(t)
	ctx := context.Background()
	u := dbtest.User(t, db, "reader")
	a := dbtest.Author(t, db, "Author")
	b := dbtest.Book(t, db, a.AuthorID, "Read", 1)

	borrowings := borrowingService.New(db)
	br, err := borrowings.Borrow(ctx, u.ID, b.BookID)
	require.NoError(t, err)
	_, err = borrowings.Return(ctx, u.ID, br.BorrowingID)
	require.NoError(t, err)

	svc := New(db)
	require.NoError(t, svc.Eligibility(ctx, u.ID, b.BookID))

	r, err := svc.Create(ctx, u.ID, b.BookID, 4, "  solid read  ")
	require.NoError(t, err)
	assert.Equal(t, 4, r.ReviewRating)
	assert.Equal(t, "solid read", r.ReviewComment)

	_, err = svc.Create(ctx, u.ID, b.BookID, 2, "changed my mind")
	assert.ErrorIs(t, err, ErrReviewExists)
	assert.ErrorIs(t, svc.Eligibility(ctx, u.ID, b.BookID), ErrReviewExists)

	var n int64
	require.NoError(t, db.Model(&reviewModel.ReviewModel{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestReviewWhileBorrowing(t *testing.T) {
	db := dbtest.NewTestDB(t)
	ctx := context.Background()
	u := dbtest.User(t, db, "reader")
	a := dbtest.Author(t, db, "Author")
	b := dbtest.Book(t, db, a.AuthorID, "On loan", 1)

	_, err := borrowingService.New(db).Borrow(ctx, u.ID, b.BookID)
	require.NoError(t, err)

	_, err = New(db).Create(ctx, u.ID, b.BookID, 5, "")
	assert.NoError(t, err)
}

func TestReviewRatingBounds(t *testing.T) {
	db := dbtest.NewTestDB(t)
	ctx := context.Background()
	u := dbtest.User(t, db, "reader")
	a := dbtest.Author(t, db, "Author")
	b := dbtest.Book(t, db, a.AuthorID, "Book", 1)
	_, err := borrowingService.New(db).Borrow(ctx, u.ID, b.BookID)
	require.NoError(t, err)

	svc := New(db)
	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Create(ctx, u.ID, b.BookID, rating, "")
		assert.ErrorIs(t, err, ErrInvalidRating, "rating %d", rating)
	}
}

func TestReviewMissingBook(t *testing.T) {
	db := dbtest.NewTestDB(t)
	u := dbtest.User(t, db, "reader")

	_, err := New(db).Create(context.Background(), u.ID, 404, 3, "")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestInsertReviewDuplicateMapsToExists(t *testing.T) {
	db := dbtest.NewTestDB(t)
	u := dbtest.User(t, db, "reader")
	a := dbtest.Author(t, db, "Author")
	b := dbtest.Book(t, db, a.AuthorID, "Raced", 1)

	first := reviewModel.ReviewModel{ReviewUserID: u.ID, ReviewBookID: b.BookID, ReviewRating: 5}
	require.NoError(t, db.Create(&first).Error)

	// request kedua yang lolos cek eligibility sebelum insert pertama commit
	dup := reviewModel.ReviewModel{ReviewUserID: u.ID, ReviewBookID: b.BookID, ReviewRating: 1}
	err := db.Transaction(func(tx *gorm.DB) error {
		return insertReview(tx, &dup)
	})
	assert.ErrorIs(t, err, ErrReviewExists)

	var n int64
	require.NoError(t, db.Model(&reviewModel.ReviewModel{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}
