package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"library_backend/internals/databases/dbtest"
	borrowingModel "library_backend/internals/features/circulation/borrowings/model"
)

func newService(t *testing.T) (*Service, *gorm.DB) {
	db := dbtest.NewTestDB(t)
	return New(db), db
}

func TestBorrowThenReturnRestoresAvailability(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	u := dbtest.User(t, db, "reader")
	a := dbtest.Author(t, db, "Ursula K. Le Guin")
	b := dbtest.Book(t, db, a.AuthorID, "The Dispossessed", 2)

	br, err := svc.Borrow(ctx, u.ID, b.BookID)
	require.NoError(t, err)
	assert.False(t, br.BorrowingReturned)
	assert.Nil(t, br.BorrowingReturnDate)
	assert.Equal(t, br.BorrowingBorrowDate.Add(svc.LoanPeriod), br.BorrowingDueDate)
	assert.Equal(t, 1, dbtest.ReloadBook(t, db, b.BookID).BookAvailableCopies)

	ret, err := svc.Return(ctx, u.ID, br.BorrowingID)
	require.NoError(t, err)
	assert.True(t, ret.BorrowingReturned)
	require.NotNil(t, ret.BorrowingReturnDate)
	assert.False(t, ret.BorrowingReturnDate.Before(ret.BorrowingBorrowDate))
	assert.Equal(t, 2, dbtest.ReloadBook(t, db, b.BookID).BookAvailableCopies)

	var stored borrowingModel.BorrowingModel
	require.NoError(t, db.First(&stored, "borrowing_id = ?", br.BorrowingID).Error)
	assert.True(t, stored.BorrowingReturned)
	assert.NotNil(t, stored.BorrowingReturnDate)
}

func TestBorrowUnavailableBook(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	u1 := dbtest.User(t, db, "first")
	u2 := dbtest.User(t, db, "second")
	a := dbtest.Author(t, db, "Author")
	b := dbtest.Book(t, db, a.AuthorID, "Single Copy", 1)

	_, err := svc.Borrow(ctx, u1.ID, b.BookID)
	require.NoError(t, err)

	_, err = svc.Borrow(ctx, u2.ID, b.BookID)
	assert.ErrorIs(t, err, ErrBookUnavailable)
	assert.Equal(t, 0, dbtest.ReloadBook(t, db, b.BookID).BookAvailableCopies)
}

func TestBorrowSameBookTwice(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	u := dbtest.User(t, db, "reader")
	a := dbtest.Author(t, db, "Author")
	b := dbtest.Book(t, db, a.AuthorID, "Plenty", 5)

	_, err := svc.Borrow(ctx, u.ID, b.BookID)
	require.NoError(t, err)
	_, err = svc.Borrow(ctx, u.ID, b.BookID)
	assert.ErrorIs(t, err, ErrAlreadyBorrowed)
	assert.Equal(t, 4, dbtest.ReloadBook(t, db, b.BookID).BookAvailableCopies)
}

func TestBorrowAgainAfterReturn(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	u := dbtest.User(t, db, "reader")
	a := dbtest.Author(t, db, "Author")
	b := dbtest.Book(t, db, a.AuthorID, "Again", 1)

	br, err := svc.Borrow(ctx, u.ID, b.BookID)
	require.NoError(t, err)
	_, err = svc.Return(ctx, u.ID, br.BorrowingID)
	require.NoError(t, err)

	_, err = svc.Borrow(ctx, u.ID, b.BookID)
	assert.NoError(t, err)
}

func TestBorrowLimit(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	u := dbtest.User(t, db, "reader")
	a := dbtest.Author(t, db, "Author")

	for i := 0; i < svc.MaxActive; i++ {
		b := dbtest.Book(t, db, a.AuthorID, "Book", 3)
		_, err := svc.Borrow(ctx, u.ID, b.BookID)
		require.NoError(t, err)
	}

	extra := dbtest.Book(t, db, a.AuthorID, "One too many", 3)
	_, err := svc.Borrow(ctx, u.ID, extra.BookID)
	assert.ErrorIs(t, err, ErrBorrowLimitReached)
	assert.Equal(t, 3, dbtest.ReloadBook(t, db, extra.BookID).BookAvailableCopies)

	counts, err := svc.CountsForUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(svc.MaxActive), counts.Current)
	assert.Equal(t, int64(svc.MaxActive), counts.Total)
}

func TestBorrowMissingBook(t *testing.T) {
	svc, db := newService(t)
	u := dbtest.User(t, db, "reader")

	_, err := svc.Borrow(context.Background(), u.ID, 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestReturnSomeoneElsesBorrowing(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	owner := dbtest.User(t, db, "owner")
	other := dbtest.User(t, db, "other")
	a := dbtest.Author(t, db, "Author")
	b := dbtest.Book(t, db, a.AuthorID, "Mine", 1)

	br, err := svc.Borrow(ctx, owner.ID, b.BookID)
	require.NoError(t, err)

	_, err = svc.Return(ctx, other.ID, br.BorrowingID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Equal(t, 0, dbtest.ReloadBook(t, db, b.BookID).BookAvailableCopies)
}

func TestDoubleReturn(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	u := dbtest.User(t, db, "reader")
	a := dbtest.Author(t, db, "Author")
	b := dbtest.Book(t, db, a.AuthorID, "Twice", 2)

	br, err := svc.Borrow(ctx, u.ID, b.BookID)
	require.NoError(t, err)
	_, err = svc.Return(ctx, u.ID, br.BorrowingID)
	require.NoError(t, err)

	_, err = svc.Return(ctx, u.ID, br.BorrowingID)
	assert.ErrorIs(t, err, ErrAlreadyReturned)
	assert.Equal(t, 2, dbtest.ReloadBook(t, db, b.BookID).BookAvailableCopies)
}

func TestConcurrentBorrowOfLastCopy(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	a := dbtest.Author(t, db, "Author")
	b := dbtest.Book(t, db, a.AuthorID, "Last Copy", 1)

	const n = 8
	users := make([]uuid.UUID, n)
	for i := range users {
		users[i] = dbtest.User(t, db, "user"+uuid.NewString()[:8]).ID
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		ok   int
		errs []error
	)
	for _, uid := range users {
		wg.Add(1)
		go func(uid uuid.UUID) {
			defer wg.Done()
			_, err := svc.Borrow(ctx, uid, b.BookID)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
				return
			}
			errs = append(errs, err)
		}(uid)
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	for _, err := range errs {
		assert.ErrorIs(t, err, ErrBookUnavailable)
	}
	assert.Equal(t, 0, dbtest.ReloadBook(t, db, b.BookID).BookAvailableCopies)

	var active int64
	require.NoError(t, db.Model(&borrowingModel.BorrowingModel{}).
		Where("borrowing_book_id = ? AND borrowing_returned = ?", b.BookID, false).
		Count(&active).Error)
	assert.Equal(t, int64(1), active)
}

func TestListForUser(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	u := dbtest.User(t, db, "reader")
	a := dbtest.Author(t, db, "Author")
	b1 := dbtest.Book(t, db, a.AuthorID, "Old", 1)
	b2 := dbtest.Book(t, db, a.AuthorID, "New", 1)

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return base }
	first, err := svc.Borrow(ctx, u.ID, b1.BookID)
	require.NoError(t, err)
	svc.Now = func() time.Time { return base.Add(time.Hour) }
	_, err = svc.Borrow(ctx, u.ID, b2.BookID)
	require.NoError(t, err)
	svc.Now = func() time.Time { return base.Add(2 * time.Hour) }
	_, err = svc.Return(ctx, u.ID, first.BorrowingID)
	require.NoError(t, err)

	current, past, err := svc.ListForUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, current, 1)
	require.Len(t, past, 1)
	assert.Equal(t, b2.BookID, current[0].BorrowingBookID)
	assert.Equal(t, b1.BookID, past[0].BorrowingBookID)
	require.NotNil(t, current[0].Book)
	require.NotNil(t, current[0].Book.Author)
	assert.Equal(t, "Author", current[0].Book.Author.AuthorName)
}
