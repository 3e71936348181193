package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const DefaultPage = 1

type Paging struct {
	Page    int
	PerPage int
	Offset  int
	Limit   int
}

// ParsePage: nilai bukan angka / < 1 → halaman 1.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return DefaultPage
	}
	return n
}

// ResolvePage membaca ?page= dari query dan menormalisasi (belum di-clamp ke total).
func ResolvePage(c *fiber.Ctx) int {
	return ParsePage(c.Query("page"))
}

func TotalPages(total int64, perPage int) int {
	if perPage <= 0 {
		perPage = 1
	}
	pages := int((total + int64(perPage) - 1) / int64(perPage)) // ceil
	if pages == 0 {
		pages = 1
	}
	return pages
}

// ClampPaging: halaman melebihi total → halaman terakhir.
func ClampPaging(page, perPage int, total int64) Paging {
	if perPage <= 0 {
		perPage = 20
	}
	if page < 1 {
		page = DefaultPage
	}
	if last := TotalPages(total, perPage); page > last {
		page = last
	}
	return Paging{
		Page:    page,
		PerPage: perPage,
		Offset:  (page - 1) * perPage,
		Limit:   perPage,
	}
}

func BuildPaginationFromPage(total int64, page, perPage int) Pagination {
	if perPage <= 0 {
		perPage = 20
	}
	if page <= 0 {
		page = 1
	}
	totalPages := TotalPages(total, perPage)
	return Pagination{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
