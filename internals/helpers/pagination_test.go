package helper

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestParsePage(t *testing.T) {
	assert.Equal(t, 1, ParsePage(""))
	assert.Equal(t, 1, ParsePage("abc"))
	assert.Equal(t, 1, ParsePage("-3"))
	assert.Equal(t, 1, ParsePage("0"))
	assert.Equal(t, 4, ParsePage(" 4 "))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 9))
	assert.Equal(t, 1, TotalPages(9, 9))
	assert.Equal(t, 2, TotalPages(10, 9))
	assert.Equal(t, 3, TotalPages(3, 0))
}

func TestClampPaging(t *testing.T) {
	p := ClampPaging(99, 9, 20)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 18, p.Offset)
	assert.Equal(t, 9, p.Limit)

	p = ClampPaging(0, 9, 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 0, p.Offset)

	pg := BuildPaginationFromPage(20, 2, 9)
	assert.True(t, pg.HasNext)
	assert.True(t, pg.HasPrev)
	assert.Equal(t, 3, pg.TotalPages)
}

func TestSlugifyAndSearch(t *testing.T) {
	assert.Equal(t, "cafe-creme", Slugify("  Café   Crème! ", 0))
	assert.Equal(t, "item", Slugify("!!!", 10))
	assert.Equal(t, "abc", Slugify("abc-def", 4))

	assert.Equal(t, "the lord of", NormalizeSearch("  The   LORD\tof "))
	assert.Equal(t, "", NormalizeSearch("   "))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(fmt.Errorf("create: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: users.email")))
	assert.False(t, IsUniqueViolation(errors.New("connection refused")))

	assert.True(t, IsNotFound(fmt.Errorf("book 1: %w", gorm.ErrRecordNotFound)))
}
