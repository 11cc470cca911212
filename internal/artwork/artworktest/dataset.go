// Package artworktest provides an in-memory artwork.Fetcher for tests.
package artworktest

import (
	"context"
	"fmt"
	"sync"

	"github.com/rshade/artgrid/internal/artwork"
)

// Dataset serves pages from a fixed number of synthetic records with IDs 1..Total.
// Individual pages can be made to fail or to return fewer records than the data holds.
type Dataset struct {
	// Total is the number of records served.
	Total int

	// ReportedTotal overrides the total reported in each page when non-zero.
	ReportedTotal int

	mu       sync.Mutex
	calls    []int
	failures map[int]error
	limits   map[int]int
	hooks    map[int]func()
}

// NewDataset creates a dataset with total records.
func NewDataset(total int) *Dataset {
	return &Dataset{
		Total:    total,
		failures: map[int]error{},
		limits:   map[int]int{},
		hooks:    map[int]func(){},
	}
}

// FailPage makes fetches of page fail with a TransportError wrapping err.
func (d *Dataset) FailPage(page int, err error) *Dataset {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failures[page] = err
	return d
}

// LimitPage caps the number of records returned for page.
func (d *Dataset) LimitPage(page, n int) *Dataset {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.limits[page] = n
	return d
}

// OnFetch runs fn when page is fetched, before the page is returned.
func (d *Dataset) OnFetch(page int, fn func()) *Dataset {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hooks[page] = fn
	return d
}

// Calls returns the page indexes fetched so far, in order.
func (d *Dataset) Calls() []int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]int(nil), d.calls...)
}

// Reset clears the recorded calls.
func (d *Dataset) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = nil
}

// FetchPage implements artwork.Fetcher.
func (d *Dataset) FetchPage(ctx context.Context, pageIndex, pageSize int) (*artwork.Page, error) {
	if err := artwork.ValidatePageRequest(pageIndex, pageSize); err != nil {
		return nil, err
	}

	d.mu.Lock()
	d.calls = append(d.calls, pageIndex)
	failure := d.failures[pageIndex]
	limit, limited := d.limits[pageIndex]
	hook := d.hooks[pageIndex]
	d.mu.Unlock()

	if hook != nil {
		hook()
	}
	if err := ctx.Err(); err != nil {
		return nil, &artwork.TransportError{Page: pageIndex, Err: err}
	}
	if failure != nil {
		return nil, &artwork.TransportError{Page: pageIndex, StatusCode: 503, Err: failure}
	}

	records := Records((pageIndex-1)*pageSize+1, pageSize, d.Total)
	if limited && limit < len(records) {
		records = records[:limit]
	}

	total := d.Total
	if d.ReportedTotal != 0 {
		total = d.ReportedTotal
	}
	return &artwork.Page{
		Index:        pageIndex,
		Size:         pageSize,
		Records:      records,
		TotalRecords: total,
		APIVersion:   "1.13",
	}, nil
}

// Records returns up to n synthetic records starting at ID first, stopping after ID max.
func Records(first, n, maxID int) []artwork.Artwork {
	out := []artwork.Artwork{}
	for id := first; id < first+n && id <= maxID; id++ {
		out = append(out, artwork.Artwork{
			ID:            id,
			Title:         fmt.Sprintf("Artwork %d", id),
			ArtistDisplay: fmt.Sprintf("Artist %d", id%7),
			PlaceOfOrigin: "Chicago",
		})
	}
	return out
}

// Range returns the IDs first..last inclusive.
func Range(first, last int) []int {
	ids := []int{}
	for id := first; id <= last; id++ {
		ids = append(ids, id)
	}
	return ids
}
