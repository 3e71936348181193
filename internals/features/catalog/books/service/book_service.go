package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"library_backend/internals/constants"
	bookModel "library_backend/internals/features/catalog/books/model"
	categoryModel "library_backend/internals/features/catalog/categories/model"
	borrowingModel "library_backend/internals/features/circulation/borrowings/model"
	reviewModel "library_backend/internals/features/circulation/reviews/model"
	helper "library_backend/internals/helpers"
)

// ===== Sort modes =====
const (
	SortNewest       = "newest"
	SortOldest       = "oldest"
	SortHighestRated = "highest_rated"
)

// NormalizeSort: nilai di luar daftar → newest.
func NormalizeSort(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case SortOldest:
		return SortOldest
	case SortHighestRated:
		return SortHighestRated
	default:
		return SortNewest
	}
}

// ParseCategoryID: "" atau bukan angka → tanpa filter.
func ParseCategoryID(raw string) *uint {
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || n == 0 {
		return nil
	}
	id := uint(n)
	return &id
}

// RoundRating: satu angka di belakang koma.
func RoundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}

type ListQuery struct {
	Search     string
	CategoryID *uint
	Sort       string
	Page       int
}

// Rating ringkas per buku.
type Rating struct {
	Average float64
	Count   int64
}

type BookWithRating struct {
	Book   bookModel.BookModel
	Rating Rating
}

type Page struct {
	Items      []BookWithRating
	Pagination helper.Pagination
	Query      ListQuery
}

type Detail struct {
	Book                  bookModel.BookModel
	Rating                Rating
	Reviews               []reviewModel.ReviewModel
	UserHasBorrowed       bool
	UserCurrentlyBorrowed bool
	UserHasReviewed       bool
}

type Service struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// ===== LIST =====

// List: filter q (judul / nama penulis, case-insensitive), category, sort, 9 per halaman.
func (s *Service) List(ctx context.Context, lq ListQuery) (Page, error) {
	lq.Search = helper.NormalizeSearch(lq.Search)
	lq.Sort = NormalizeSort(lq.Sort)

	q := s.DB.WithContext(ctx).Model(&bookModel.BookModel{})
	if lq.Search != "" {
		like := "%" + lq.Search + "%"
		q = q.Joins("JOIN authors ON authors.author_id = books.book_author_id").
			Where("LOWER(books.book_title) LIKE ? OR LOWER(authors.author_name) LIKE ?", like, like)
	}
	if lq.CategoryID != nil {
		q = q.Where("books.book_category_id = ?", *lq.CategoryID)
	}
	base := q.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return Page{}, fmt.Errorf("count books: %w", err)
	}
	paging := helper.ClampPaging(lq.Page, constants.BooksPerPage, total)
	lq.Page = paging.Page

	var books []bookModel.BookModel
	err := applySort(base, lq.Sort).
		Select("books.*").
		Preload("Author").
		Preload("Category").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Find(&books).Error
	if err != nil {
		return Page{}, fmt.Errorf("list books: %w", err)
	}

	items, err := s.withRatings(ctx, books)
	if err != nil {
		return Page{}, err
	}
	return Page{
		Items:      items,
		Pagination: helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage),
		Query:      lq,
	}, nil
}

// book_id dipakai sebagai tiebreak supaya newest dan oldest selalu kebalikan persis.
func applySort(q *gorm.DB, sort string) *gorm.DB {
	switch sort {
	case SortOldest:
		return q.Order("books.book_created_at ASC").Order("books.book_id ASC")
	case SortHighestRated:
		// buku tanpa review di akhir
		return q.Joins(`LEFT JOIN (
				SELECT review_book_id, AVG(review_rating) AS avg_rating
				FROM reviews GROUP BY review_book_id
			) r ON r.review_book_id = books.book_id`).
			Order("CASE WHEN r.avg_rating IS NULL THEN 1 ELSE 0 END").
			Order("r.avg_rating DESC").
			Order("books.book_created_at DESC").
			Order("books.book_id DESC")
	default:
		return q.Order("books.book_created_at DESC").Order("books.book_id DESC")
	}
}

// ByCategory: buku satu kategori, paginasi 9, urutan terbaru.
func (s *Service) ByCategory(ctx context.Context, categoryID uint, page int) (categoryModel.CategoryModel, Page, error) {
	var cat categoryModel.CategoryModel
	if err := s.DB.WithContext(ctx).First(&cat, "category_id = ?", categoryID).Error; err != nil {
		return cat, Page{}, fmt.Errorf("category %d: %w", categoryID, err)
	}
	p, err := s.List(ctx, ListQuery{CategoryID: &categoryID, Sort: SortNewest, Page: page})
	return cat, p, err
}

// ByAuthor: semua buku satu penulis (tanpa paginasi).
func (s *Service) ByAuthor(ctx context.Context, authorID uint) ([]BookWithRating, error) {
	var books []bookModel.BookModel
	if err := s.DB.WithContext(ctx).
		Preload("Category").
		Where("book_author_id = ?", authorID).
		Order("book_created_at DESC").Order("book_id DESC").
		Find(&books).Error; err != nil {
		return nil, fmt.Errorf("books by author: %w", err)
	}
	return s.withRatings(ctx, books)
}

// Latest: n buku terbaru (home).
func (s *Service) Latest(ctx context.Context, n int) ([]BookWithRating, error) {
	var books []bookModel.BookModel
	if err := s.DB.WithContext(ctx).
		Preload("Author").Preload("Category").
		Order("book_created_at DESC").Order("book_id DESC").
		Limit(n).
		Find(&books).Error; err != nil {
		return nil, fmt.Errorf("latest books: %w", err)
	}
	return s.withRatings(ctx, books)
}

// TopRated: n buku dengan rata-rata tertinggi, hanya yang sudah punya review.
func (s *Service) TopRated(ctx context.Context, n int) ([]BookWithRating, error) {
	var books []bookModel.BookModel
	if err := s.DB.WithContext(ctx).
		Model(&bookModel.BookModel{}).
		Select("books.*").
		Joins(`JOIN (
				SELECT review_book_id, AVG(review_rating) AS avg_rating
				FROM reviews GROUP BY review_book_id
			) r ON r.review_book_id = books.book_id`).
		Preload("Author").Preload("Category").
		Order("r.avg_rating DESC").Order("books.book_id DESC").
		Limit(n).
		Find(&books).Error; err != nil {
		return nil, fmt.Errorf("top rated books: %w", err)
	}
	return s.withRatings(ctx, books)
}

// ===== DETAIL =====

// Detail: buku + review (terbaru dulu) + flag untuk viewer (uuid.Nil = anonim).
func (s *Service) Detail(ctx context.Context, id uint, viewer uuid.UUID) (*Detail, error) {
	db := s.DB.WithContext(ctx)

	var book bookModel.BookModel
	if err := db.Preload("Author").Preload("Category").First(&book, "book_id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("book %d: %w", id, err)
	}

	out := &Detail{Book: book}
	if err := db.Preload("User").
		Where("review_book_id = ?", id).
		Order("review_created_at DESC").Order("review_id DESC").
		Find(&out.Reviews).Error; err != nil {
		return nil, fmt.Errorf("reviews: %w", err)
	}

	rating, err := s.Rating(ctx, id)
	if err != nil {
		return nil, err
	}
	out.Rating = rating

	if viewer == uuid.Nil {
		return out, nil
	}

	var borrowed, active int64
	if err := db.Model(&borrowingModel.BorrowingModel{}).
		Where("borrowing_user_id = ? AND borrowing_book_id = ?", viewer, id).
		Count(&borrowed).Error; err != nil {
		return nil, err
	}
	if borrowed > 0 {
		if err := db.Model(&borrowingModel.BorrowingModel{}).
			Where("borrowing_user_id = ? AND borrowing_book_id = ? AND borrowing_returned = ?", viewer, id, false).
			Count(&active).Error; err != nil {
			return nil, err
		}
	}
	out.UserHasBorrowed = borrowed > 0
	out.UserCurrentlyBorrowed = active > 0

	for _, r := range out.Reviews {
		if r.ReviewUserID == viewer {
			out.UserHasReviewed = true
			break
		}
	}
	return out, nil
}

// ===== RATING =====

// AverageRating: rata-rata dibulatkan 1 desimal, 0 kalau belum ada review.
func (s *Service) AverageRating(ctx context.Context, bookID uint) (float64, error) {
	r, err := s.Rating(ctx, bookID)
	return r.Average, err
}

func (s *Service) Rating(ctx context.Context, bookID uint) (Rating, error) {
	ratings, err := s.Ratings(ctx, []uint{bookID})
	if err != nil {
		return Rating{}, err
	}
	return ratings[bookID], nil
}

type ratingRow struct {
	BookID      uint
	AvgRating   float64
	RatingCount int64
}

// Ratings: rata-rata + jumlah review per buku dalam satu query; buku tanpa review tidak ada di map.
func (s *Service) Ratings(ctx context.Context, ids []uint) (map[uint]Rating, error) {
	out := make(map[uint]Rating, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []ratingRow
	if err := s.DB.WithContext(ctx).
		Model(&reviewModel.ReviewModel{}).
		Select("review_book_id AS book_id, AVG(review_rating) AS avg_rating, COUNT(*) AS rating_count").
		Where("review_book_id IN ?", ids).
		Group("review_book_id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("ratings: %w", err)
	}
	for _, r := range rows {
		out[r.BookID] = Rating{Average: RoundRating(r.AvgRating), Count: r.RatingCount}
	}
	return out, nil
}

func (s *Service) withRatings(ctx context.Context, books []bookModel.BookModel) ([]BookWithRating, error) {
	ids := make([]uint, 0, len(books))
	for _, b := range books {
		ids = append(ids, b.BookID)
	}
	ratings, err := s.Ratings(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]BookWithRating, 0, len(books))
	for _, b := range books {
		out = append(out, BookWithRating{Book: b, Rating: ratings[b.BookID]})
	}
	return out, nil
}
