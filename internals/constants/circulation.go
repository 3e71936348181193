package constants

import "time"

// ===== Circulation =====
const (
	MaxActiveBorrowings = 5
	LoanPeriod          = 14 * 24 * time.Hour
)

// ===== Catalog =====
const (
	BooksPerPage      = 9
	HomeLatestBooks   = 6
	HomeTopRated      = 3
	MinPasswordLength = 8
)
