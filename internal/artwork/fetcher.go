package artwork

import (
	"context"
	"errors"
	"fmt"
)

// Request bounds enforced before any fetch.
const (
	MinPageIndex = 1
	MinPageSize  = 1
)

// ErrInvalidPageRequest is returned when a page index or size is out of range.
var ErrInvalidPageRequest = errors.New("page index and page size must be >= 1")

// Fetcher retrieves one page of artwork records.
type Fetcher interface {
	// FetchPage returns the page at pageIndex (1-based) holding at most pageSize records.
	// Failures are reported as *TransportError.
	FetchPage(ctx context.Context, pageIndex, pageSize int) (*Page, error)
}

// FetcherFunc adapts an ordinary function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, pageIndex, pageSize int) (*Page, error)

// FetchPage calls f.
func (f FetcherFunc) FetchPage(ctx context.Context, pageIndex, pageSize int) (*Page, error) {
	return f(ctx, pageIndex, pageSize)
}

// ValidatePageRequest checks the fetch arguments.
func ValidatePageRequest(pageIndex, pageSize int) error {
	if pageIndex < MinPageIndex || pageSize < MinPageSize {
		return fmt.Errorf("%w: got page=%d size=%d", ErrInvalidPageRequest, pageIndex, pageSize)
	}
	return nil
}

// TransportError reports a failed page fetch: network failure, non-2xx status,
// or an undecodable response body.
type TransportError struct {
	// Page is the page index that was being fetched.
	Page int

	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int

	// Err is the underlying cause.
	Err error
}

// Error implements error.
func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching page %d: status %d: %v", e.Page, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetching page %d: %v", e.Page, e.Err)
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransportError reports whether err is or wraps a *TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
