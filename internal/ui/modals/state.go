// Package modals holds the dialogs shown over the roster: prompts, incoming
// calls and contact requests, settings, help and the context menu.
package modals

import (
	tea "charm.land/bubbletea/v2"
)

// ModalState is one dialog. The app type-switches on the concrete state to
// route Enter and Esc, so only this package implements it.
type ModalState interface {
	modalState()
	Title() string
	Help() string
	Render() string
	Update(msg tea.Msg) (ModalState, tea.Cmd)
}

// ModalWithPreferredWidth is a dialog wider or narrower than ModalWidth.
type ModalWithPreferredWidth interface {
	ModalState
	PreferredWidth() int
}

// ModalWithSize is told the space it was given before each render.
type ModalWithSize interface {
	ModalState
	SetSize(width, height int)
}

// HelpShortcut is one row of the help dialog.
type HelpShortcut struct {
	Key  string
	Desc string
}

// HelpSection groups shortcuts under a heading.
type HelpSection struct {
	Title     string
	Shortcuts []HelpShortcut
}

// HelpShortcutTriggeredMsg asks the app to act as if Key had been pressed.
type HelpShortcutTriggeredMsg struct {
	Key string
}
