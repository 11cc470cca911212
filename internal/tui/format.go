package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ellipsis marks truncated cell text.
const ellipsis = "…"

// printer formats counts with English thousands separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatCount formats n with thousands separators, e.g. 125000 -> "125,000".
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// Truncate flattens s to one line and cuts it to width display cells.
func Truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, ellipsis)
}
