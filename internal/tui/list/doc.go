// Package listview provides a scrolling list for Bubble Tea views.
//
// Only the rows inside the viewport are rendered, so the list stays responsive
// however many rows a selection accumulates. Navigation uses up/down, j/k,
// pgup/pgdn and home/end.
package listview
