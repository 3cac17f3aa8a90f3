// Package keys names the key strings huddle matches on.
//
// Every value is what tea.KeyPressMsg.String reports for that key, so a
// switch over msg.String() can use them directly. Printable keys ("m", "?")
// are written inline.
package keys

import tea "charm.land/bubbletea/v2"

func press(code rune, mod tea.KeyMod) string {
	return tea.KeyPressMsg{Code: code, Mod: mod}.String()
}

// Movement through the roster, lists and chat history
var (
	Up     = press(tea.KeyUp, 0)
	Down   = press(tea.KeyDown, 0)
	Left   = press(tea.KeyLeft, 0)
	Right  = press(tea.KeyRight, 0)
	Home   = press(tea.KeyHome, 0)
	End    = press(tea.KeyEnd, 0)
	PgUp   = press(tea.KeyPgUp, 0)
	PgDown = press(tea.KeyPgDown, 0)
)

var (
	Enter      = press(tea.KeyEnter, 0)
	ShiftEnter = press(tea.KeyEnter, tea.ModShift) // newline in the message box
	Tab        = press(tea.KeyTab, 0)
	Space      = press(tea.KeySpace, 0)
	Backspace  = press(tea.KeyBackspace, 0)
	Escape     = press(tea.KeyEscape, 0)
)

var (
	CtrlC = press('c', tea.ModCtrl)
	CtrlN = press('n', tea.ModCtrl)
	CtrlP = press('p', tea.ModCtrl)
)
