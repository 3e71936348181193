package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library_backend/internals/constants"
	"library_backend/internals/databases/dbtest"
	reviewModel "library_backend/internals/features/circulation/reviews/model"
	userModel "library_backend/internals/features/users/user/model"
)

func TestHome(t *testing.T) {
	db := dbtest.NewTestDB(t)
	ctx := context.Background()
	a := dbtest.Author(t, db, "Author")
	dbtest.Author(t, db, "Second Author")
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	var firstID uint
	for i := 0; i < 8; i++ {
		b := dbtest.Book(t, db, a.AuthorID, "Book", 1, dbtest.WithCreatedAt(base.Add(time.Duration(i)*time.Hour)))
		if i == 0 {
			firstID = b.BookID
		}
	}
	reader := dbtest.User(t, db, "reader")
	require.NoError(t, db.Create(&reviewModel.ReviewModel{
		ReviewUserID: reader.ID, ReviewBookID: firstID, ReviewRating: 4,
	}).Error)
	require.NoError(t, db.Create(&userModel.UserModel{
		UserName: "root", Email: "root@example.com", Password: "x", Role: constants.RoleAdmin, IsActive: true,
	}).Error)

	h, err := New(db).Home(ctx)
	require.NoError(t, err)
	assert.Len(t, h.LatestBooks, constants.HomeLatestBooks)
	assert.True(t, h.LatestBooks[0].Book.BookCreatedAt.After(h.LatestBooks[1].Book.BookCreatedAt))
	require.Len(t, h.TopRatedBooks, 1)
	assert.Equal(t, firstID, h.TopRatedBooks[0].Book.BookID)
	assert.Equal(t, 4.0, h.TopRatedBooks[0].Rating.Average)
	assert.Equal(t, int64(8), h.TotalBooks)
	assert.Equal(t, int64(2), h.TotalAuthors)
	assert.Equal(t, int64(1), h.TotalStudents)
}
