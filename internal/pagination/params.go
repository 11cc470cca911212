package pagination

import (
	"errors"
	"fmt"
)

// Page size and index bounds.
const (
	DefaultPageSize = 12
	MinPageSize     = 1
	MaxPageSize     = 100
	FirstPage       = 1
)

// Common validation errors.
var (
	ErrInvalidPageSize = fmt.Errorf("page-size must be between %d and %d", MinPageSize, MaxPageSize)
	ErrInvalidPage     = errors.New("page must be >= 1")
)

// ValidatePageSize checks size against MinPageSize and MaxPageSize.
func ValidatePageSize(size int) error {
	if size < MinPageSize || size > MaxPageSize {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, size)
	}
	return nil
}

// ValidatePage checks that page is a 1-based index.
func ValidatePage(page int) error {
	if page < FirstPage {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, page)
	}
	return nil
}

// TotalPages returns the number of pages needed for totalItems at pageSize.
// Returns 0 when either value is not positive.
func TotalPages(totalItems, pageSize int) int {
	if totalItems <= 0 || pageSize <= 0 {
		return 0
	}
	pages := totalItems / pageSize
	if totalItems%pageSize > 0 {
		pages++
	}
	return pages
}

// Offset returns the zero-based index of the first record on page.
func Offset(page, pageSize int) int {
	if page < FirstPage {
		return 0
	}
	return (page - 1) * pageSize
}
