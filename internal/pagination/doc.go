// Package pagination tracks which page of the remote dataset is on screen.
//
// This package contains the page-navigation side of the grid:
//   - Controller: the Idle/Loading state machine driven by RequestPage
//   - State: an immutable snapshot of the displayed page
//   - Meta: page arithmetic for footers and JSON output
//
// State is replaced only by a completed fetch. A failed fetch leaves the last good
// page in place, and a completion that was overtaken by a newer request is dropped.
package pagination
