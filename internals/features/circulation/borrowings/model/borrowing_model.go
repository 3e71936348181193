package model

import (
	"time"

	"github.com/google/uuid"

	bookModel "library_backend/internals/features/catalog/books/model"
	userModel "library_backend/internals/features/users/user/model"
)

// BorrowingModel: dibuat sekali saat pinjam, diubah tepat sekali saat kembali.
// borrowing_return_date terisi <=> borrowing_returned = true.
type BorrowingModel struct {
	BorrowingID         uint       `gorm:"column:borrowing_id;primaryKey;autoIncrement" json:"borrowing_id"`
	BorrowingUserID     uuid.UUID  `gorm:"column:borrowing_user_id;type:char(36);not null;index:idx_borrowings_user_returned,priority:1" json:"borrowing_user_id"`
	BorrowingBookID     uint       `gorm:"column:borrowing_book_id;not null;index:idx_borrowings_book" json:"borrowing_book_id"`
	BorrowingBorrowDate time.Time  `gorm:"column:borrowing_borrow_date;not null" json:"borrowing_borrow_date"`
	BorrowingDueDate    time.Time  `gorm:"column:borrowing_due_date;not null" json:"borrowing_due_date"`
	BorrowingReturnDate *time.Time `gorm:"column:borrowing_return_date" json:"borrowing_return_date,omitempty"`
	BorrowingReturned   bool       `gorm:"column:borrowing_returned;not null;index:idx_borrowings_user_returned,priority:2" json:"borrowing_returned"`

	User *userModel.UserModel `gorm:"foreignKey:BorrowingUserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Book *bookModel.BookModel `gorm:"foreignKey:BorrowingBookID;references:BookID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"book,omitempty"`
}

func (BorrowingModel) TableName() string {
	return "borrowings"
}

// NewBorrowing: due date selalu dihitung di sini (borrowDate + loanPeriod).
func NewBorrowing(userID uuid.UUID, bookID uint, now time.Time, loanPeriod time.Duration) BorrowingModel {
	now = now.UTC()
	return BorrowingModel{
		BorrowingUserID:     userID,
		BorrowingBookID:     bookID,
		BorrowingBorrowDate: now,
		BorrowingDueDate:    now.Add(loanPeriod),
	}
}

func (b BorrowingModel) IsOverdue(now time.Time) bool {
	return !b.BorrowingReturned && now.After(b.BorrowingDueDate)
}

// RemainingDays: sisa hari penuh sampai jatuh tempo, 0 kalau lewat / sudah kembali.
func (b BorrowingModel) RemainingDays(now time.Time) int {
	if b.BorrowingReturned {
		return 0
	}
	d := int(b.BorrowingDueDate.Sub(now).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}
