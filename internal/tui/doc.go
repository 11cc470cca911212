// Package tui implements the interactive artwork grid.
//
// GridModel binds a pagination controller and a selection engine to a Bubble Tea
// program. Page navigation and selection walks run as commands, and their results
// come back to Update as messages, so the view never blocks on a fetch.
package tui
