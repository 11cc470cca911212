package tui

// Key bindings.
const (
	keyQuit     = "q"
	keyCtrlC    = "ctrl+c"
	keyRight    = "right"
	keyNext     = "n"
	keyLeft     = "left"
	keyPrev     = "p"
	keySelect   = "s"
	keyEnter    = "enter"
	keyEsc      = "esc"
	keySpace    = " "
	keyClear    = "c"
	keySelected = "v"
)

const helpGrid = "←/p prev · →/n next · s select first N · space toggle row · c clear · v selection · q quit"

const helpPrompt = "enter select · esc cancel"

const helpSelection = "↑/↓ scroll · v/esc back · q quit"
