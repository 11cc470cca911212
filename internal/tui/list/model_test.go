package listview

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numbered(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i + 1
	}
	return items
}

func render(_ int, item int, focused bool) string {
	if focused {
		return fmt.Sprintf("> %d", item)
	}
	return fmt.Sprintf("  %d", item)
}

func press(l *ScrollList[int], keys ...tea.KeyMsg) {
	for _, k := range keys {
		l.Update(k)
	}
}

func TestScrollList_EmptyView(t *testing.T) {
	l := New[int](nil, 5, render)
	assert.Equal(t, "(empty)", l.View())

	l.SetEmptyText("nothing selected")
	assert.Equal(t, "nothing selected", l.View())
	assert.Nil(t, l.Focused())

	press(l, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, l.Cursor())
}

func TestScrollList_RendersOnlyViewport(t *testing.T) {
	l := New(numbered(100), 3, render)

	lines := strings.Split(l.View(), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"> 1", "  2", "  3"}, lines)
}

func TestScrollList_Navigation(t *testing.T) {
	tests := []struct {
		name       string
		keys       []tea.KeyMsg
		wantCursor int
		wantOffset int
	}{
		{name: "down", keys: []tea.KeyMsg{{Type: tea.KeyDown}}, wantCursor: 1, wantOffset: 0},
		{name: "up at top stays", keys: []tea.KeyMsg{{Type: tea.KeyUp}}, wantCursor: 0, wantOffset: 0},
		{name: "scrolls past viewport", keys: []tea.KeyMsg{
			{Type: tea.KeyDown}, {Type: tea.KeyDown}, {Type: tea.KeyDown},
		}, wantCursor: 3, wantOffset: 1},
		{name: "page down", keys: []tea.KeyMsg{{Type: tea.KeyPgDown}}, wantCursor: 3, wantOffset: 1},
		{name: "end", keys: []tea.KeyMsg{{Type: tea.KeyEnd}}, wantCursor: 9, wantOffset: 7},
		{name: "end then home", keys: []tea.KeyMsg{{Type: tea.KeyEnd}, {Type: tea.KeyHome}}, wantCursor: 0, wantOffset: 0},
		{name: "vim keys", keys: []tea.KeyMsg{
			{Type: tea.KeyRunes, Runes: []rune("j")},
			{Type: tea.KeyRunes, Runes: []rune("j")},
			{Type: tea.KeyRunes, Runes: []rune("k")},
		}, wantCursor: 1, wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(numbered(10), 3, render)
			press(l, tt.keys...)
			assert.Equal(t, tt.wantCursor, l.Cursor())
			assert.Equal(t, tt.wantOffset, l.Offset())
		})
	}
}

func TestScrollList_SetItemsClampsCursor(t *testing.T) {
	l := New(numbered(10), 3, render)
	press(l, tea.KeyMsg{Type: tea.KeyEnd})
	require.Equal(t, 9, l.Cursor())

	l.SetItems(numbered(4))
	assert.Equal(t, 3, l.Cursor())
	assert.Equal(t, 1, l.Offset())
	require.NotNil(t, l.Focused())
	assert.Equal(t, 4, *l.Focused())
	assert.Equal(t, 4, l.Len())
}

func TestScrollList_SetHeight(t *testing.T) {
	l := New(numbered(10), 3, render)
	l.SetHeight(0)
	assert.Len(t, strings.Split(l.View(), "\n"), 1)

	l.SetHeight(20)
	assert.Len(t, strings.Split(l.View(), "\n"), 10)
}
