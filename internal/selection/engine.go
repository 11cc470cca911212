package selection

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/rshade/artgrid/internal/artwork"
	"github.com/rshade/artgrid/internal/pagination"
)

// maxPrealloc bounds the up-front capacity reserved for a walk's records.
const maxPrealloc = 1024

// Engine errors.
var (
	// ErrSelectionInProgress is returned when SelectFirst is called while a walk is running.
	ErrSelectionInProgress = errors.New("a selection is already in progress")

	// ErrPageNotLoaded is returned when no page has been displayed yet to start from.
	ErrPageNotLoaded = errors.New("no page loaded to select from")
)

// StateSource provides the pagination snapshot a walk starts from.
type StateSource interface {
	Snapshot() pagination.State
}

// Engine selects the first N logical rows starting at the displayed page.
// It is safe for concurrent use; overlapping walks are rejected.
type Engine struct {
	fetcher    artwork.Fetcher
	source     StateSource
	logger     zerolog.Logger
	onProgress ProgressFunc
	maxTarget  int

	// guard admits one walk at a time.
	guard *semaphore.Weighted

	mu      sync.RWMutex
	current Result
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithProgress sets a callback invoked after each page fetched during a walk.
func WithProgress(fn ProgressFunc) Option {
	return func(e *Engine) {
		e.onProgress = fn
	}
}

// WithMaxTarget rejects target counts above n. Zero means no limit.
func WithMaxTarget(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxTarget = n
		}
	}
}

// NewEngine creates an engine that walks pages through fetcher, starting from
// the state reported by source.
func NewEngine(fetcher artwork.Fetcher, source StateSource, opts ...Option) (*Engine, error) {
	if fetcher == nil {
		return nil, errors.New("selection: fetcher cannot be nil")
	}
	if source == nil {
		return nil, errors.New("selection: state source cannot be nil")
	}

	e := &Engine{
		fetcher: fetcher,
		source:  source,
		logger:  zerolog.Nop(),
		guard:   semaphore.NewWeighted(1),
		current: Result{Records: []artwork.Artwork{}, PagesFetched: []int{}},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// SelectFirst selects the first targetCount rows beginning with the displayed page,
// publishes the result and returns it.
//
// A fetch failure during the walk does not produce an error: the returned Result
// holds the records collected before the failure, with Stop set to StopFailed and
// Err set to the cause. The returned error is reserved for rejected requests.
func (e *Engine) SelectFirst(ctx context.Context, targetCount int) (Result, error) {
	if targetCount < 0 {
		return Result{}, ErrInvalidTargetCount
	}
	if e.maxTarget > 0 && targetCount > e.maxTarget {
		return Result{}, ErrTargetTooLarge
	}
	if !e.guard.TryAcquire(1) {
		return Result{}, ErrSelectionInProgress
	}
	defer e.guard.Release(1)

	snap := e.source.Snapshot()
	if targetCount > 0 && !snap.Loaded {
		return Result{}, ErrPageNotLoaded
	}

	start := time.Now()
	result := e.walk(ctx, snap, targetCount)

	e.logger.Info().
		Int("target", targetCount).
		Int("selected", result.Len()).
		Int("start_page", result.StartPage).
		Ints("pages_fetched", result.PagesFetched).
		Str("stop", result.Stop.String()).
		Dur("elapsed", time.Since(start)).
		Msg("selection walk finished")

	e.publish(result)
	return result, nil
}

// walk runs the page-by-page accumulation. Step n+1 never starts before step n completes.
func (e *Engine) walk(ctx context.Context, snap pagination.State, targetCount int) Result {
	remaining := targetCount
	page := snap.PageIndex
	pageSize := snap.PageSize

	result := Result{
		Target:       targetCount,
		StartPage:    page,
		Records:      make([]artwork.Artwork, 0, min(targetCount, maxPrealloc)),
		PagesFetched: []int{},
		Stop:         StopSatisfied,
	}

	take := min(remaining, len(snap.Records))
	result.Records = append(result.Records, snap.Records[:take]...)
	remaining -= take

	estimated := pagination.TotalPages(remaining, pageSize)

	for remaining > 0 {
		page++
		fetched, err := e.fetcher.FetchPage(ctx, page, pageSize)
		if err != nil {
			e.logger.Warn().
				Err(err).
				Int("page", page).
				Int("collected", len(result.Records)).
				Int("remaining", remaining).
				Msg("page fetch failed, ending selection early")
			result.Stop = StopFailed
			result.Err = err
			break
		}
		result.PagesFetched = append(result.PagesFetched, page)

		take = min(remaining, len(fetched.Records))
		result.Records = append(result.Records, fetched.Records[:take]...)
		remaining -= take

		if e.onProgress != nil {
			e.onProgress(Progress{
				Target:         targetCount,
				Collected:      len(result.Records),
				Page:           page,
				PagesFetched:   len(result.PagesFetched),
				PagesEstimated: estimated,
			})
		}

		if fetched.IsShort() {
			if remaining > 0 {
				result.Stop = StopExhausted
			}
			break
		}
	}

	return result
}

// publish replaces the current selection in full.
func (e *Engine) publish(r Result) {
	r.Records = slices.Clone(r.Records)
	r.PagesFetched = slices.Clone(r.PagesFetched)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.current = r
}

// Current returns the last published selection.
func (e *Engine) Current() Result {
	e.mu.RLock()
	defer e.mu.RUnlock()

	r := e.current
	r.Records = slices.Clone(e.current.Records)
	r.PagesFetched = slices.Clone(e.current.PagesFetched)
	return r
}

// Clear publishes an empty selection.
func (e *Engine) Clear() {
	e.publish(Result{Records: []artwork.Artwork{}, PagesFetched: []int{}})
}
