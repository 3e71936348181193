package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library_backend/internals/databases/dbtest"
	borrowingService "library_backend/internals/features/circulation/borrowings/service"
	authHelper "library_backend/internals/features/users/auth/helper"
	authService "library_backend/internals/features/users/auth/service"
	userModel "library_backend/internals/features/users/user/model"
)

func strPtr(s string) *string { return &s }

func TestGetOrCreateCreatesMissingProfile(t *testing.T) {
	db := dbtest.NewTestDB(t)
	ctx := context.Background()
	u := dbtest.User(t, db, "ada")
	a := dbtest.Author(t, db, "Author")
	b1 := dbtest.Book(t, db, a.AuthorID, "One", 1)
	b2 := dbtest.Book(t, db, a.AuthorID, "Two", 1)

	borrowings := borrowingService.New(db)
	br, err := borrowings.Borrow(ctx, u.ID, b1.BookID)
	require.NoError(t, err)
	_, err = borrowings.Return(ctx, u.ID, br.BorrowingID)
	require.NoError(t, err)
	_, err = borrowings.Borrow(ctx, u.ID, b2.BookID)
	require.NoError(t, err)

	svc := New(db)
	p, err := svc.GetOrCreate(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, p.Profile.UserProfileUserID)
	assert.NotZero(t, p.Profile.UserProfileID)
	assert.Equal(t, int64(1), p.CurrentlyBorrowed)
	assert.Equal(t, int64(2), p.TotalBorrowed)

	// panggilan kedua tidak membuat baris baru
	again, err := svc.GetOrCreate(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Profile.UserProfileID, again.Profile.UserProfileID)
}

func TestUpdatePartialFields(t *testing.T) {
	db := dbtest.NewTestDB(t)
	ctx := context.Background()
	u := dbtest.User(t, db, "ada")
	svc := New(db)

	p, err := svc.Update(ctx, u.ID, UpdateInput{
		FullName:   strPtr("Ada Lovelace"),
		Phone:      strPtr(" 0812 "),
		PictureURL: strPtr("/media/profile_pictures/ada.webp"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.User.FirstName)
	assert.Equal(t, "Lovelace", p.User.LastName)
	assert.Equal(t, "ada@example.com", p.User.Email)
	assert.Equal(t, "0812", p.Profile.UserProfilePhone)
	assert.Equal(t, "/media/profile_pictures/ada.webp", p.Profile.UserProfilePicture)

	p, err = svc.Update(ctx, u.ID, UpdateInput{Email: strPtr(" new@example.com ")})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", p.User.Email)
	assert.Equal(t, "Ada", p.User.FirstName)
	assert.Equal(t, "0812", p.Profile.UserProfilePhone)
}

func TestUpdateEmailTaken(t *testing.T) {
	db := dbtest.NewTestDB(t)
	ctx := context.Background()
	u := dbtest.User(t, db, "ada")
	dbtest.User(t, db, "grace")
	svc := New(db)

	_, err := svc.Update(ctx, u.ID, UpdateInput{Email: strPtr("GRACE@example.com")})
	assert.ErrorIs(t, err, authService.ErrEmailTaken)

	// email sendiri boleh disimpan ulang
	_, err = svc.Update(ctx, u.ID, UpdateInput{Email: strPtr("ada@example.com")})
	assert.NoError(t, err)
}

func TestUpdatePassword(t *testing.T) {
	db := dbtest.NewTestDB(t)
	ctx := context.Background()
	u := dbtest.User(t, db, "ada")
	svc := New(db)

	_, err := svc.Update(ctx, u.ID, UpdateInput{NewPassword: "short", ConfirmNewPassword: "short"})
	assert.ErrorIs(t, err, authService.ErrPasswordTooShort)

	_, err = svc.Update(ctx, u.ID, UpdateInput{NewPassword: "longenough1", ConfirmNewPassword: "longenough2"})
	assert.ErrorIs(t, err, authService.ErrPasswordMismatch)

	_, err = svc.Update(ctx, u.ID, UpdateInput{NewPassword: "longenough1", ConfirmNewPassword: "longenough1"})
	require.NoError(t, err)

	var got userModel.UserModel
	require.NoError(t, db.First(&got, "id = ?", u.ID).Error)
	assert.NoError(t, authHelper.CheckPasswordHash(got.Password, "longenough1"))
}
