package selection

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Input validation errors.
var (
	ErrInvalidTargetCount = errors.New("row count must be a non-negative whole number")
	ErrTargetTooLarge     = errors.New("row count exceeds the configured maximum")
)

// ParseTargetCount parses raw user input into a target count.
// Surrounding whitespace is ignored; an empty string is zero.
// Negative values, fractions, exponents and other non-integer input are rejected.
func ParseTargetCount(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTargetCount, raw)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidTargetCount, n)
	}
	return n, nil
}
