package selection

import (
	"fmt"

	"github.com/rshade/artgrid/internal/artwork"
)

// StopReason records why a walk ended.
type StopReason int

// Walk outcomes.
const (
	// StopSatisfied means the target count was reached.
	StopSatisfied StopReason = iota

	// StopExhausted means a short page ended the dataset before the target was reached.
	StopExhausted

	// StopFailed means a page fetch failed; Result.Err holds the cause.
	StopFailed
)

// String implements fmt.Stringer.
func (r StopReason) String() string {
	switch r {
	case StopSatisfied:
		return "satisfied"
	case StopExhausted:
		return "exhausted"
	case StopFailed:
		return "failed"
	default:
		return fmt.Sprintf("stop(%d)", int(r))
	}
}

// Result is a published selection.
type Result struct {
	// Target is the requested count.
	Target int `json:"target"`

	// StartPage is the page the walk started from.
	StartPage int `json:"start_page"`

	// Records are the selected records in logical row order.
	Records []artwork.Artwork `json:"records"`

	// PagesFetched lists the pages fetched during the walk, in order.
	// The start page is not included because its records were already loaded.
	PagesFetched []int `json:"pages_fetched"`

	// Stop is why the walk ended.
	Stop StopReason `json:"-"`

	// Err is the fetch failure when Stop is StopFailed.
	Err error `json:"-"`
}

// Len returns the number of selected records.
func (r Result) Len() int {
	return len(r.Records)
}

// IsShort reports whether fewer records than requested were selected.
func (r Result) IsShort() bool {
	return len(r.Records) < r.Target
}

// IDs returns the selected record IDs in order.
func (r Result) IDs() []int {
	return artwork.IDs(r.Records)
}

// Progress is reported after each page fetched during a walk.
type Progress struct {
	Target         int
	Collected      int
	Page           int
	PagesFetched   int
	PagesEstimated int
}

// ProgressFunc receives walk progress. It runs on the walking goroutine.
type ProgressFunc func(Progress)
