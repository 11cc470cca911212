package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// RenderFunc renders one item. focused is true for the row under the cursor.
type RenderFunc[T any] func(index int, item T, focused bool) string

// ScrollList is a cursor-driven list that renders only the rows in its viewport.
type ScrollList[T any] struct {
	items  []T
	render RenderFunc[T]

	cursor int
	// offset is the index of the first row in the viewport.
	offset int
	height int

	emptyText string
}

// New creates a list with the given viewport height.
func New[T any](items []T, height int, render RenderFunc[T]) *ScrollList[T] {
	l := &ScrollList[T]{
		items:     items,
		render:    render,
		height:    max(height, 1),
		emptyText: "(empty)",
	}
	l.clamp()
	return l
}

// SetEmptyText sets the text shown when the list has no items.
func (l *ScrollList[T]) SetEmptyText(s string) {
	l.emptyText = s
}

// SetItems replaces the list contents and keeps the cursor in range.
func (l *ScrollList[T]) SetItems(items []T) {
	l.items = items
	l.clamp()
}

// SetHeight changes the viewport height.
func (l *ScrollList[T]) SetHeight(h int) {
	l.height = max(h, 1)
	l.clamp()
}

// Init implements tea.Model.
func (l *ScrollList[T]) Init() tea.Cmd {
	return nil
}

// Update moves the cursor on navigation keys.
func (l *ScrollList[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(l.items) == 0 {
		return l, nil
	}

	//nolint:exhaustive // Only navigation keys move the cursor.
	switch key.Type {
	case tea.KeyUp:
		l.cursor--
	case tea.KeyDown:
		l.cursor++
	case tea.KeyPgUp:
		l.cursor -= l.height
	case tea.KeyPgDown:
		l.cursor += l.height
	case tea.KeyHome:
		l.cursor = 0
	case tea.KeyEnd:
		l.cursor = len(l.items) - 1
	case tea.KeyRunes:
		switch key.String() {
		case "j":
			l.cursor++
		case "k":
			l.cursor--
		}
	}
	l.clamp()
	return l, nil
}

// clamp keeps the cursor inside the items and the viewport around the cursor.
func (l *ScrollList[T]) clamp() {
	if len(l.items) == 0 {
		l.cursor, l.offset = 0, 0
		return
	}
	l.cursor = min(max(l.cursor, 0), len(l.items)-1)

	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.height {
		l.offset = l.cursor - l.height + 1
	}
	l.offset = min(l.offset, max(len(l.items)-l.height, 0))
}

// View renders the rows inside the viewport.
func (l *ScrollList[T]) View() string {
	if len(l.items) == 0 {
		return l.emptyText
	}

	end := min(l.offset+l.height, len(l.items))
	lines := make([]string, 0, end-l.offset)
	for i := l.offset; i < end; i++ {
		lines = append(lines, l.render(i, l.items[i], i == l.cursor))
	}
	return strings.Join(lines, "\n")
}

// Len returns the number of items.
func (l *ScrollList[T]) Len() int {
	return len(l.items)
}

// Cursor returns the focused index.
func (l *ScrollList[T]) Cursor() int {
	return l.cursor
}

// Offset returns the index of the first visible row.
func (l *ScrollList[T]) Offset() int {
	return l.offset
}

// Focused returns the item under the cursor, or nil for an empty list.
func (l *ScrollList[T]) Focused() *T {
	if len(l.items) == 0 {
		return nil
	}
	return &l.items[l.cursor]
}
