package modals

import (
	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/huddle/internal/keys"
)

// newForm builds a themed form of width columns without huh's own help line
// and initializes it, so the first View is complete.
func newForm(width int, groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).
		WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(width)
	form.Init()
	return form
}

// formUpdate passes msg to form. Enter and Escape belong to the app's modal
// handlers and never reach huh.
func formUpdate(form *huh.Form, msg tea.Msg) (*huh.Form, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case keys.Enter, keys.Escape:
			return form, nil
		}
	}

	m, cmd := form.Update(msg)
	if f, ok := m.(*huh.Form); ok {
		form = f
	}
	return form, cmd
}

// ModalTheme returns a huh theme in the current modal palette. Forms pick it
// up when built, so a theme switch applies to the next dialog.
func ModalTheme() huh.Theme {
	return huh.ThemeFunc(func(isDark bool) *huh.Styles {
		t := huh.ThemeBase(isDark)
		focusedFieldStyles(&t.Focused)

		t.Blurred = t.Focused
		t.Blurred.Base = lipgloss.NewStyle().PaddingLeft(2)
		t.Blurred.Card = t.Blurred.Base
		t.Blurred.NextIndicator = lipgloss.NewStyle()
		t.Blurred.PrevIndicator = lipgloss.NewStyle()

		// The settings dialog stacks its groups under these titles
		t.Group.Title = lipgloss.NewStyle().Foreground(ColorSecondary).Bold(true)
		t.Group.Description = lipgloss.NewStyle().Foreground(ColorTextMuted)

		t.FieldSeparator = lipgloss.NewStyle().SetString("\n")
		t.Help = help.New().Styles
		return t
	})
}

// focusedFieldStyles styles the field with focus: a left border in the
// primary colour, then per field kind.
func focusedFieldStyles(f *huh.FieldStyles) {
	plain := lipgloss.NewStyle().Foreground(ColorText)
	muted := lipgloss.NewStyle().Foreground(ColorTextMuted)
	accent := lipgloss.NewStyle().Foreground(ColorPrimary)

	f.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(ColorPrimary)
	f.Card = f.Base
	f.Title = plain.Bold(true)
	f.Description = muted.Italic(true)
	f.ErrorIndicator = lipgloss.NewStyle().Foreground(ColorWarning).SetString(" *")
	f.ErrorMessage = lipgloss.NewStyle().Foreground(ColorWarning)

	// Presence, device and theme pickers
	f.SelectSelector = accent.SetString("> ")
	f.NextIndicator = accent.MarginLeft(1).SetString("→")
	f.PrevIndicator = accent.MarginRight(1).SetString("←")
	f.Option = plain

	// Answer / reject, accept / ignore, remove / keep, notifications on / off
	button := lipgloss.NewStyle().Padding(0, 2).MarginRight(1)
	f.FocusedButton = button.Foreground(ColorTextInverse).Background(ColorPrimary)
	f.BlurredButton = button.Foreground(ColorTextMuted)

	// Group name, topic and email prompts
	f.TextInput.Cursor = accent
	f.TextInput.Placeholder = muted
	f.TextInput.Prompt = accent
	f.TextInput.Text = plain
}
