package pagination

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rshade/artgrid/internal/artwork"
)

// Status is the controller's loading state.
type Status int

// Controller states.
const (
	StatusIdle Status = iota
	StatusLoading
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Navigation errors.
var (
	// ErrSuperseded is returned by RequestPage when a newer request was issued
	// before this one completed; its page was discarded.
	ErrSuperseded = errors.New("page request superseded by a newer request")

	// ErrNoMorePages is returned by Next and Previous at the edges of the dataset.
	ErrNoMorePages = errors.New("no page in that direction")
)

// State is a snapshot of the displayed page.
type State struct {
	// PageIndex is the 1-based index of the displayed page.
	PageIndex int

	// PageSize is fixed for the lifetime of the controller.
	PageSize int

	// TotalRecords is the dataset total reported by the last successful fetch.
	TotalRecords int

	// Records holds the displayed page only.
	Records []artwork.Artwork

	// Status is Loading while any request is in flight.
	Status Status

	// Loaded is false until the first successful fetch.
	Loaded bool
}

// Meta returns display metadata for the snapshot.
func (s State) Meta() Meta {
	return NewMeta(s.PageIndex, s.PageSize, s.TotalRecords, len(s.Records))
}

// Controller owns the pagination state and mutates it only on completed fetches.
// It is safe for concurrent use.
type Controller struct {
	fetcher artwork.Fetcher
	logger  zerolog.Logger

	mu         sync.RWMutex
	state      State
	generation uint64
	inFlight   int
	activated  bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// NewController creates a controller that fetches pages of pageSize records.
// The initial state is Idle on page 1 with nothing loaded.
func NewController(fetcher artwork.Fetcher, pageSize int, opts ...Option) (*Controller, error) {
	if fetcher == nil {
		return nil, errors.New("pagination: fetcher cannot be nil")
	}
	if err := ValidatePageSize(pageSize); err != nil {
		return nil, err
	}

	c := &Controller{
		fetcher: fetcher,
		logger:  zerolog.Nop(),
		state: State{
			PageIndex: FirstPage,
			PageSize:  pageSize,
			Records:   []artwork.Artwork{},
			Status:    StatusIdle,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Activate loads page 1 on the first call. Later calls do nothing and return nil.
func (c *Controller) Activate(ctx context.Context) error {
	c.mu.Lock()
	if c.activated {
		c.mu.Unlock()
		return nil
	}
	c.activated = true
	c.mu.Unlock()

	return c.RequestPage(ctx, FirstPage)
}

// OnPageIndexChanged is the navigation event handler for view bindings.
func (c *Controller) OnPageIndexChanged(ctx context.Context, page int) error {
	return c.RequestPage(ctx, page)
}

// RequestPage fetches page and, on success, replaces the displayed page with it.
// On failure the state is left unchanged and the fetch error is returned.
// If another request was issued while this one was in flight, the result is
// discarded and ErrSuperseded is returned.
func (c *Controller) RequestPage(ctx context.Context, page int) error {
	if err := ValidatePage(page); err != nil {
		return err
	}

	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.inFlight++
	c.state.Status = StatusLoading
	pageSize := c.state.PageSize
	c.mu.Unlock()

	fetched, err := c.fetcher.FetchPage(ctx, page, pageSize)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.inFlight--
	if c.inFlight == 0 {
		c.state.Status = StatusIdle
	}

	if err != nil {
		c.logger.Warn().
			Err(err).
			Int("page", page).
			Int("displayed_page", c.state.PageIndex).
			Msg("page fetch failed, keeping displayed page")
		return err
	}

	if gen != c.generation {
		c.logger.Debug().
			Int("page", page).
			Uint64("generation", gen).
			Uint64("latest_generation", c.generation).
			Msg("discarding superseded page")
		return ErrSuperseded
	}

	records := fetched.Records
	if len(records) > pageSize {
		records = records[:pageSize]
	}

	c.state.PageIndex = page
	c.state.Records = slices.Clone(records)
	c.state.TotalRecords = fetched.TotalRecords
	c.state.Loaded = true

	c.logger.Debug().
		Int("page", page).
		Int("records", len(records)).
		Int("total", fetched.TotalRecords).
		Msg("displayed page replaced")

	return nil
}

// Next requests the page after the displayed one.
// Returns ErrNoMorePages when the displayed page is known to be the last.
func (c *Controller) Next(ctx context.Context) error {
	s := c.Snapshot()
	if s.Loaded && !hasNext(s) {
		return ErrNoMorePages
	}
	return c.RequestPage(ctx, s.PageIndex+1)
}

// Previous requests the page before the displayed one.
// Returns ErrNoMorePages on page 1.
func (c *Controller) Previous(ctx context.Context) error {
	s := c.Snapshot()
	if s.PageIndex <= FirstPage {
		return ErrNoMorePages
	}
	return c.RequestPage(ctx, s.PageIndex-1)
}

// hasNext reports whether a page exists after the snapshot's page.
// A short page ends the dataset regardless of the reported total.
func hasNext(s State) bool {
	if len(s.Records) < s.PageSize {
		return false
	}
	if s.TotalRecords > 0 {
		return s.PageIndex < TotalPages(s.TotalRecords, s.PageSize)
	}
	return true
}

// Snapshot returns a copy of the current state. The records slice is not shared.
func (c *Controller) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := c.state
	s.Records = slices.Clone(c.state.Records)
	return s
}

// Meta returns display metadata for the current state.
func (c *Controller) Meta() Meta {
	return c.Snapshot().Meta()
}

// PageSize returns the fixed page size.
func (c *Controller) PageSize() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.PageSize
}
