package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode selects how results are presented.
type OutputMode int

// Output modes.
const (
	OutputModePlain OutputMode = iota
	OutputModeInteractive
)

// Terminal size fallbacks.
const (
	defaultWidth  = 120
	defaultHeight = 30
)

// DetectOutputMode returns Interactive only when both stdin and stdout are terminals
// and plain output was not forced. TERM=dumb also forces plain output.
func DetectOutputMode(forcePlain bool) OutputMode {
	if forcePlain || os.Getenv("TERM") == "dumb" {
		return OutputModePlain
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		return OutputModePlain
	}
	return OutputModeInteractive
}

// TerminalWidth returns the stdout width, or a default when it cannot be determined.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}
