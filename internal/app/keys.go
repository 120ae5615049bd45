package app

import "github.com/gdamore/tcell/v2"

// ReduceKey converts a terminal key event into the engine's single-byte
// raw symbol form. Special keys reduce to the control symbols the
// notation package produces for them (Escape -> 0x1b, Return -> newline,
// Up/Down -> ^P/^N like vi history keys). Keys with no byte form report
// ok false and are ignored by the event loop.
func ReduceKey(ev *tcell.EventKey) (sym byte, ok bool) {
	switch ev.Key() {
	case tcell.KeyEscape:
		return 0x1b, true
	case tcell.KeyTab:
		return '\t', true
	case tcell.KeyEnter:
		return '\n', true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return 0x08, true
	case tcell.KeyUp:
		return 0x10, true // ^P
	case tcell.KeyDown:
		return 0x0e, true // ^N
	case tcell.KeyRune:
		r := ev.Rune()
		if r > 0 && r < 0x80 {
			return byte(r), true
		}
		return 0, false
	}

	// Ctrl-modified letters arrive as key codes 0x01..0x1a.
	if k := ev.Key(); k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return byte(k), true
	}
	return 0, false
}
