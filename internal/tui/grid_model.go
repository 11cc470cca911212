package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/rshade/artgrid/internal/artwork"
	"github.com/rshade/artgrid/internal/pagination"
	"github.com/rshade/artgrid/internal/selection"
	listview "github.com/rshade/artgrid/internal/tui/list"
)

// Pager is the navigation side of the grid.
type Pager interface {
	Activate(ctx context.Context) error
	RequestPage(ctx context.Context, page int) error
	Next(ctx context.Context) error
	Previous(ctx context.Context) error
	Snapshot() pagination.State
}

// Selector runs cross-page selections.
type Selector interface {
	SelectFirst(ctx context.Context, targetCount int) (selection.Result, error)
	Clear()
}

// ViewState is the screen the grid is showing.
type ViewState int

// View states.
const (
	ViewGrid ViewState = iota
	ViewPrompt
	ViewSelection
	ViewQuitting
)

// pageLoadedMsg reports the end of a navigation request.
type pageLoadedMsg struct {
	err error
}

// selectionDoneMsg reports the end of a selection walk.
type selectionDoneMsg struct {
	result selection.Result
	err    error
}

// selectionProgressMsg is sent after each page a walk fetches.
type selectionProgressMsg selection.Progress

// Layout.
const (
	markerWidth   = 3
	cellPadding   = 2
	minCellWidth  = 6
	chromeHeight  = 7
	minTableRows  = 3
	promptLimit   = 9
	promptWidth   = 12
	selectedMark  = "[x]"
	unselected    = "[ ]"
	panelRowWidth = 60
)

// columnShares are the percentage widths of the data columns.
//
//nolint:gochecknoglobals // Fixed layout table.
var columnShares = []struct {
	title string
	share int
}{
	{"Title", 30},
	{"Place of Origin", 15},
	{"Artist", 25},
	{"Inscriptions", 20},
	{"Dates", 10},
}

// GridModel is the Bubble Tea model for the paginated artwork grid.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type GridModel struct {
	ctx       context.Context
	pager     Pager
	selector  Selector
	logger    zerolog.Logger
	startPage int

	state   ViewState
	table   table.Model
	prompt  textinput.Model
	spinner spinner.Model
	panel   *listview.ScrollList[artwork.Artwork]

	// snap is the last state read from the pager.
	snap pagination.State

	// selected is the local selection in display order; selectedIDs indexes it.
	selected    []artwork.Artwork
	selectedIDs map[int]struct{}

	loading   bool
	selecting bool
	status    string
	statusErr bool

	width  int
	height int
}

// GridOption configures a GridModel.
type GridOption func(*GridModel)

// WithGridLogger sets the logger used for view events.
func WithGridLogger(l zerolog.Logger) GridOption {
	return func(m *GridModel) {
		m.logger = l
	}
}

// WithStartPage navigates to page after the first page has loaded.
func WithStartPage(page int) GridOption {
	return func(m *GridModel) {
		if page > pagination.FirstPage {
			m.startPage = page
		}
	}
}

// NewGridModel creates the grid. Init activates the pager.
func NewGridModel(ctx context.Context, pager Pager, selector Selector, opts ...GridOption) GridModel {
	prompt := textinput.New()
	prompt.Placeholder = "rows"
	prompt.CharLimit = promptLimit
	prompt.Width = promptWidth
	prompt.Prompt = "Select first: "

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = SelectedStyle

	m := GridModel{
		ctx:         ctx,
		pager:       pager,
		selector:    selector,
		logger:      zerolog.Nop(),
		state:       ViewGrid,
		prompt:      prompt,
		spinner:     sp,
		selectedIDs: make(map[int]struct{}),
		loading:     true,
		width:       defaultWidth,
		height:      defaultHeight,
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.table = table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
	)
	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	m.table.SetStyles(s)

	m.panel = listview.New([]artwork.Artwork(nil), m.tableHeight(), renderSelectedRow)
	m.panel.SetEmptyText(InfoStyle.Render("No rows selected."))
	return m
}

// Init loads the first page.
func (m GridModel) Init() tea.Cmd {
	return tea.Batch(m.activateCmd(), m.spinner.Tick)
}

func (m GridModel) activateCmd() tea.Cmd {
	ctx, pager, start := m.ctx, m.pager, m.startPage
	return func() tea.Msg {
		err := pager.Activate(ctx)
		if err == nil && start > 0 {
			err = pager.RequestPage(ctx, start)
		}
		return pageLoadedMsg{err: err}
	}
}

func (m GridModel) navigateCmd(step func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return pageLoadedMsg{err: step(ctx)}
	}
}

func (m GridModel) selectCmd(target int) tea.Cmd {
	ctx, selector := m.ctx, m.selector
	return func() tea.Msg {
		result, err := selector.SelectFirst(ctx, target)
		return selectionDoneMsg{result: result, err: err}
	}
}

// Update handles messages and updates the model state.
func (m GridModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetColumns(m.columns())
		m.table.SetHeight(m.tableHeight())
		m.table.SetRows(m.rows())
		m.panel.SetHeight(m.tableHeight())
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.selecting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pageLoadedMsg:
		return m.handlePageLoaded(msg), nil

	case selectionProgressMsg:
		m.setStatus(fmt.Sprintf("Selecting… %s/%s rows (page %d)",
			FormatCount(msg.Collected), FormatCount(msg.Target), msg.Page), false)
		return m, nil

	case selectionDoneMsg:
		return m.handleSelectionDone(msg), nil

	case tea.KeyMsg:
		switch m.state {
		case ViewPrompt:
			return m.handlePromptKey(msg)
		case ViewSelection:
			return m.handlePanelKey(msg)
		case ViewGrid:
			return m.handleGridKey(msg)
		case ViewQuitting:
			return m, nil
		}
	}
	return m, nil
}

func (m GridModel) handlePageLoaded(msg pageLoadedMsg) GridModel {
	prev := m.snap.PageIndex
	m.snap = m.pager.Snapshot()
	m.loading = m.snap.Status == pagination.StatusLoading

	switch {
	case msg.err == nil:
		m.setStatus("", false)
	case errors.Is(msg.err, pagination.ErrSuperseded):
		// A newer request owns the display.
	case errors.Is(msg.err, pagination.ErrNoMorePages):
		m.setStatus("No more pages in that direction.", false)
	default:
		m.logger.Debug().Err(msg.err).Msg("navigation failed")
		m.setStatus("Could not load page: "+msg.err.Error(), true)
	}

	m.table.SetRows(m.rows())
	if m.snap.PageIndex != prev {
		m.table.SetCursor(0)
	}
	return m
}

func (m GridModel) handleSelectionDone(msg selectionDoneMsg) GridModel {
	m.selecting = false
	if msg.err != nil {
		m.setStatus(selectionRejection(msg.err), true)
		return m
	}

	m.replaceSelection(msg.result.Records)
	m.table.SetRows(m.rows())

	r := msg.result
	switch {
	case r.Target == 0:
		m.setStatus("Selection cleared.", false)
	case r.Stop == selection.StopFailed:
		m.setStatus(fmt.Sprintf("Selected %s of %s rows; the walk stopped: %v",
			FormatCount(r.Len()), FormatCount(r.Target), r.Err), true)
	case r.Stop == selection.StopExhausted:
		m.setStatus(fmt.Sprintf("Selected %s of %s rows; no more data.",
			FormatCount(r.Len()), FormatCount(r.Target)), false)
	default:
		m.setStatus(fmt.Sprintf("Selected %s rows across %d page(s).",
			FormatCount(r.Len()), len(r.PagesFetched)+1), false)
	}
	return m
}

func selectionRejection(err error) string {
	switch {
	case errors.Is(err, selection.ErrPageNotLoaded):
		return "Wait for the page to load before selecting."
	case errors.Is(err, selection.ErrSelectionInProgress):
		return "A selection is already running."
	default:
		return "Selection rejected: " + err.Error()
	}
}

func (m GridModel) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyQuit, keyCtrlC:
		m.state = ViewQuitting
		return m, tea.Quit
	case keyRight, keyNext:
		return m.startNavigation(m.pager.Next)
	case keyLeft, keyPrev:
		return m.startNavigation(m.pager.Previous)
	case keySelect:
		if m.selecting {
			m.setStatus("A selection is already running.", false)
			return m, nil
		}
		m.state = ViewPrompt
		m.prompt.SetValue("")
		cmd := m.prompt.Focus()
		return m, cmd
	case keySpace:
		m.toggleCursorRow()
		return m, nil
	case keyClear:
		m.replaceSelection(nil)
		m.selector.Clear()
		m.table.SetRows(m.rows())
		m.setStatus("Selection cleared.", false)
		return m, nil
	case keySelected:
		m.state = ViewSelection
		return m, nil
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
}

func (m GridModel) startNavigation(step func(context.Context) error) (tea.Model, tea.Cmd) {
	m.loading = true
	return m, tea.Batch(m.navigateCmd(step), m.spinner.Tick)
}

func (m GridModel) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyCtrlC:
		m.state = ViewQuitting
		return m, tea.Quit
	case keyEsc:
		m.state = ViewGrid
		m.prompt.Blur()
		return m, nil
	case keyEnter:
		target, err := selection.ParseTargetCount(m.prompt.Value())
		if err != nil {
			m.setStatus("Enter a whole number of rows, 0 or more.", true)
			return m, nil
		}
		m.state = ViewGrid
		m.prompt.Blur()
		m.selecting = true
		m.setStatus(fmt.Sprintf("Selecting first %s rows…", FormatCount(target)), false)
		m.logger.Debug().Int("target", target).Int("page", m.snap.PageIndex).Msg("selection requested")
		return m, tea.Batch(m.selectCmd(target), m.spinner.Tick)
	default:
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
}

func (m GridModel) handlePanelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyQuit, keyCtrlC:
		m.state = ViewQuitting
		return m, tea.Quit
	case keyEsc, keySelected:
		m.state = ViewGrid
		return m, nil
	default:
		m.panel.Update(msg)
		return m, nil
	}
}

// toggleCursorRow adds or removes the row under the table cursor.
func (m *GridModel) toggleCursorRow() {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.snap.Records) {
		return
	}
	rec := m.snap.Records[cursor]

	if _, ok := m.selectedIDs[rec.ID]; ok {
		delete(m.selectedIDs, rec.ID)
		kept := m.selected[:0:0]
		for _, a := range m.selected {
			if a.ID != rec.ID {
				kept = append(kept, a)
			}
		}
		m.selected = kept
	} else {
		m.selectedIDs[rec.ID] = struct{}{}
		m.selected = append(m.selected, rec)
	}
	m.panel.SetItems(m.selected)
	m.table.SetRows(m.rows())
}

// replaceSelection replaces the local selection in full.
func (m *GridModel) replaceSelection(records []artwork.Artwork) {
	m.selected = append([]artwork.Artwork(nil), records...)
	m.selectedIDs = make(map[int]struct{}, len(records))
	for _, a := range records {
		m.selectedIDs[a.ID] = struct{}{}
	}
	m.panel.SetItems(m.selected)
}

func (m *GridModel) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m GridModel) tableHeight() int {
	return max(m.height-chromeHeight, minTableRows)
}

func (m GridModel) columns() []table.Column {
	avail := m.width - markerWidth - cellPadding*(len(columnShares)+1)
	cols := make([]table.Column, 0, len(columnShares)+1)
	cols = append(cols, table.Column{Title: "", Width: markerWidth})
	for _, c := range columnShares {
		cols = append(cols, table.Column{Title: c.title, Width: max(avail*c.share/100, minCellWidth)}) //nolint:mnd // Percent.
	}
	return cols
}

func (m GridModel) rows() []table.Row {
	cols := m.columns()
	rows := make([]table.Row, 0, len(m.snap.Records))
	for _, a := range m.snap.Records {
		mark := unselected
		if _, ok := m.selectedIDs[a.ID]; ok {
			mark = selectedMark
		}
		rows = append(rows, table.Row{
			mark,
			Truncate(a.Title, cols[1].Width),
			Truncate(a.PlaceOfOrigin, cols[2].Width),
			Truncate(a.ArtistDisplay, cols[3].Width),
			Truncate(a.InscriptionText(), cols[4].Width),
			Truncate(a.DateRange(), cols[5].Width),
		})
	}
	return rows
}

func renderSelectedRow(index int, a artwork.Artwork, focused bool) string {
	line := fmt.Sprintf("%4d. %-8d %s", index+1, a.ID, Truncate(a.Title, panelRowWidth))
	if focused {
		return SelectedStyle.Render("> " + line)
	}
	return "  " + line
}

// View renders the current screen.
func (m GridModel) View() string {
	if m.state == ViewQuitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if m.state == ViewSelection {
		b.WriteString(HeaderStyle.Render(fmt.Sprintf("Selection (%s rows)", FormatCount(len(m.selected)))))
		b.WriteString("\n")
		b.WriteString(m.panel.View())
		b.WriteString("\n\n")
		b.WriteString(InfoStyle.Render(helpSelection))
		return b.String()
	}

	if !m.snap.Loaded && m.loading {
		fmt.Fprintf(&b, " %s Loading artworks…\n", m.spinner.View())
	} else {
		b.WriteString(m.table.View())
		b.WriteString("\n")
	}

	if m.state == ViewPrompt {
		b.WriteString(PromptStyle.Render(m.prompt.View()))
		b.WriteString("\n")
	}
	b.WriteString(m.renderStatus())
	b.WriteString("\n")

	help := helpGrid
	if m.state == ViewPrompt {
		help = helpPrompt
	}
	b.WriteString(InfoStyle.Render(help))
	return b.String()
}

func (m GridModel) renderHeader() string {
	meta := m.snap.Meta()
	parts := []string{HeaderStyle.Render("Artworks")}
	if m.snap.Loaded {
		parts = append(parts,
			LabelStyle.Render("Page ")+ValueStyle.Render(FormatCount(meta.CurrentPage))+
				LabelStyle.Render(" of ")+ValueStyle.Render(FormatCount(meta.TotalPages)),
			LabelStyle.Render(fmt.Sprintf("rows %s-%s of %s",
				FormatCount(meta.FirstRow), FormatCount(meta.LastRow), FormatCount(meta.TotalItems))),
		)
	}
	parts = append(parts, SelectedStyle.Render(FormatCount(len(m.selected))+" selected"))
	if m.loading || m.selecting {
		parts = append(parts, m.spinner.View())
	}
	return strings.Join(parts, LabelStyle.Render(" · "))
}

func (m GridModel) renderStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return ErrorStyle.Render(m.status)
	}
	return SuccessStyle.Render(m.status)
}

// Selected returns a copy of the local selection.
func (m GridModel) Selected() []artwork.Artwork {
	return append([]artwork.Artwork(nil), m.selected...)
}

// State returns the current screen.
func (m GridModel) State() ViewState {
	return m.state
}

// Status returns the status line text.
func (m GridModel) Status() string {
	return m.status
}
