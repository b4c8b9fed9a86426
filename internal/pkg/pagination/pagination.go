package pagination

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PageSize is the number of items on every listing page.
const PageSize = 10

// Page is one slice of a listing plus the metadata templates need to draw
// navigation links.
type Page[T any] struct {
	Items          []T
	Number         int
	TotalPages     int
	Total          int64
	HasNext        bool
	HasPrevious    bool
	NextNumber     int
	PreviousNumber int
}

// ParsePage turns the raw ?page= value into a page number. Anything that is
// not an integer maps to the first page.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return n
}

// FromContext reads the requested page number from the query string.
func FromContext(c *gin.Context) int {
	return ParsePage(c.Query("page"))
}

// TotalPages returns how many pages total items fill. An empty listing still
// has one (empty) page.
func TotalPages(total int64) int {
	pages := int((total + PageSize - 1) / PageSize)
	if pages < 1 {
		return 1
	}
	return pages
}

// Clamp moves a requested page into [1, totalPages].
func Clamp(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

func newPage[T any](items []T, number, totalPages int, total int64) Page[T] {
	p := Page[T]{
		Items:       items,
		Number:      number,
		TotalPages:  totalPages,
		Total:       total,
		HasNext:     number < totalPages,
		HasPrevious: number > 1,
	}
	if p.HasNext {
		p.NextNumber = number + 1
	}
	if p.HasPrevious {
		p.PreviousNumber = number - 1
	}
	return p
}

// FromSlice pages an in-memory listing.
func FromSlice[T any](items []T, page int) Page[T] {
	total := int64(len(items))
	totalPages := TotalPages(total)
	number := Clamp(page, totalPages)

	start := (number - 1) * PageSize
	end := start + PageSize
	if end > len(items) {
		end = len(items)
	}
	return newPage(items[start:end], number, totalPages, total)
}

// Paginate counts the rows matched by db, clamps page and loads that page
// into dest. Ordering must already be applied to db. The fetch scopes (for
// example preloads) are applied to the row query only, not to the count.
func Paginate[T any](db *gorm.DB, page int, dest *[]T, fetch ...func(*gorm.DB) *gorm.DB) (Page[T], error) {
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return Page[T]{}, err
	}

	totalPages := TotalPages(total)
	number := Clamp(page, totalPages)
	if err := db.Scopes(fetch...).Offset((number - 1) * PageSize).Limit(PageSize).Find(dest).Error; err != nil {
		return Page[T]{}, err
	}
	return newPage(*dest, number, totalPages, total), nil
}
