package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"library_backend/internals/constants"
	bookModel "library_backend/internals/features/catalog/books/model"
	borrowingModel "library_backend/internals/features/circulation/borrowings/model"
	userModel "library_backend/internals/features/users/user/model"
)

var (
	ErrBookUnavailable    = errors.New("book is not available for borrowing")
	ErrAlreadyBorrowed    = errors.New("book already borrowed by this user")
	ErrBorrowLimitReached = errors.New("borrowing limit reached")
	ErrAlreadyReturned    = errors.New("borrowing already returned")
)

type Service struct {
	DB         *gorm.DB
	MaxActive  int
	LoanPeriod time.Duration
	Now        func() time.Time
}

func New(db *gorm.DB) *Service {
	return &Service{
		DB:         db,
		MaxActive:  constants.MaxActiveBorrowings,
		LoanPeriod: constants.LoanPeriod,
		Now:        func() time.Time { return time.Now().UTC() },
	}
}

// supportsRowLock: sqlite tidak punya SELECT ... FOR UPDATE (writer sudah serial).
func supportsRowLock(db *gorm.DB) bool {
	switch db.Dialector.Name() {
	case "postgres", "mysql":
		return true
	}
	return false
}

// =========================================================
// BORROW
// =========================================================

// Borrow membuat peminjaman baru. Semua cek + decrement dalam satu transaksi;
// stok dikurangi dengan UPDATE bersyarat (available > 0) sehingga tidak bisa negatif.
func (s *Service) Borrow(ctx context.Context, userID uuid.UUID, bookID uint) (*borrowingModel.BorrowingModel, error) {
	var out borrowingModel.BorrowingModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Serialisasi per user: hitungan pinjaman aktif tidak boleh balapan.
		if supportsRowLock(tx) {
			var u userModel.UserModel
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Select("id").
				First(&u, "id = ?", userID).Error; err != nil {
				return fmt.Errorf("lock user: %w", err)
			}
		}

		var book bookModel.BookModel
		if err := tx.First(&book, "book_id = ?", bookID).Error; err != nil {
			return fmt.Errorf("book %d: %w", bookID, err)
		}
		if book.BookAvailableCopies <= 0 {
			return ErrBookUnavailable
		}

		var dup int64
		if err := tx.Model(&borrowingModel.BorrowingModel{}).
			Where("borrowing_user_id = ? AND borrowing_book_id = ? AND borrowing_returned = ?", userID, bookID, false).
			Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return ErrAlreadyBorrowed
		}

		var active int64
		if err := tx.Model(&borrowingModel.BorrowingModel{}).
			Where("borrowing_user_id = ? AND borrowing_returned = ?", userID, false).
			Count(&active).Error; err != nil {
			return err
		}
		if active >= int64(s.MaxActive) {
			return ErrBorrowLimitReached
		}

		res := tx.Model(&bookModel.BookModel{}).
			Where("book_id = ? AND book_available_copies > 0", bookID).
			UpdateColumn("book_available_copies", gorm.Expr("book_available_copies - 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// kalah balapan untuk copy terakhir
			return ErrBookUnavailable
		}

		out = borrowingModel.NewBorrowing(userID, bookID, s.Now(), s.LoanPeriod)
		if err := tx.Create(&out).Error; err != nil {
			return fmt.Errorf("create borrowing: %w", err)
		}

		book.BookAvailableCopies--
		out.Book = &book
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[BORROW] user=%s book=%d due=%s", userID, bookID, out.BorrowingDueDate.Format(time.RFC3339))
	return &out, nil
}

// =========================================================
// RETURN
// =========================================================

// Return menandai peminjaman milik user sebagai kembali dan menambah stok.
// Flag returned dipasang dengan UPDATE bersyarat, jadi retur ganda tidak menambah stok dua kali.
func (s *Service) Return(ctx context.Context, userID uuid.UUID, borrowingID uint) (*borrowingModel.BorrowingModel, error) {
	var out borrowingModel.BorrowingModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Book").
			First(&out, "borrowing_id = ? AND borrowing_user_id = ?", borrowingID, userID).Error; err != nil {
			return fmt.Errorf("borrowing %d: %w", borrowingID, err)
		}
		if out.BorrowingReturned {
			return ErrAlreadyReturned
		}

		now := s.Now()
		res := tx.Model(&borrowingModel.BorrowingModel{}).
			Where("borrowing_id = ? AND borrowing_returned = ?", borrowingID, false).
			UpdateColumns(map[string]any{
				"borrowing_returned":    true,
				"borrowing_return_date": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyReturned
		}

		// tidak melewati total copy
		if err := tx.Model(&bookModel.BookModel{}).
			Where("book_id = ? AND book_available_copies < book_total_copies", out.BorrowingBookID).
			UpdateColumn("book_available_copies", gorm.Expr("book_available_copies + 1")).Error; err != nil {
			return err
		}

		out.BorrowingReturned = true
		out.BorrowingReturnDate = &now
		if out.Book != nil && out.Book.BookAvailableCopies < out.Book.BookTotalCopies {
			out.Book.BookAvailableCopies++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[RETURN] user=%s borrowing=%d book=%d", userID, borrowingID, out.BorrowingBookID)
	return &out, nil
}

// =========================================================
// QUERIES
// =========================================================

// ListForUser: pinjaman aktif dan riwayat, masing-masing terbaru dulu.
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID) (current, past []borrowingModel.BorrowingModel, err error) {
	db := s.DB.WithContext(ctx)
	base := db.Preload("Book").Preload("Book.Author").
		Where("borrowing_user_id = ?", userID).
		Order("borrowing_borrow_date DESC").Order("borrowing_id DESC").
		Session(&gorm.Session{})

	if err = base.Where("borrowing_returned = ?", false).Find(&current).Error; err != nil {
		return nil, nil, fmt.Errorf("current borrowings: %w", err)
	}
	if err = base.Where("borrowing_returned = ?", true).Find(&past).Error; err != nil {
		return nil, nil, fmt.Errorf("past borrowings: %w", err)
	}
	return current, past, nil
}

type Counts struct {
	Current int64
	Total   int64
}

// CountsForUser: dipakai halaman profil (currently-borrowed / total-borrowed).
func (s *Service) CountsForUser(ctx context.Context, userID uuid.UUID) (Counts, error) {
	var c Counts
	db := s.DB.WithContext(ctx).Model(&borrowingModel.BorrowingModel{})
	if err := db.Where("borrowing_user_id = ?", userID).Count(&c.Total).Error; err != nil {
		return c, err
	}
	if err := s.DB.WithContext(ctx).Model(&borrowingModel.BorrowingModel{}).
		Where("borrowing_user_id = ? AND borrowing_returned = ?", userID, false).
		Count(&c.Current).Error; err != nil {
		return c, err
	}
	return c, nil
}
