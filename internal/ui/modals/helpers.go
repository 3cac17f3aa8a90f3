package modals

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// RenderSelectableList draws one row per item with a cursor on selected.
func RenderSelectableList(items []string, selected int) string {
	rows := make([]string, len(items))
	for i, item := range items {
		if i == selected {
			rows[i] = SidebarSelectedStyle.Render("> " + item)
		} else {
			rows[i] = SidebarItemStyle.Render("  " + item)
		}
	}
	return strings.Join(rows, "\n")
}

// TruncateString truncates a string to maxWidth cells with an ellipsis
func TruncateString(s string, maxWidth int) string {
	return runewidth.Truncate(s, maxWidth, "…")
}

// AlignColumns pads the label of every "Label: value" line so the values
// line up. Lines without a colon are left alone.
func AlignColumns(text string) string {
	lines := strings.Split(text, "\n")
	width := 0
	for _, line := range lines {
		if label, _, ok := strings.Cut(line, ": "); ok {
			width = max(width, runewidth.StringWidth(label))
		}
	}
	for i, line := range lines {
		if label, value, ok := strings.Cut(line, ": "); ok {
			lines[i] = runewidth.FillRight(label+":", width+1) + " " + value
		}
	}
	return strings.Join(lines, "\n")
}
