package ui

import (
	"image/color"

	"github.com/zhubert/huddle/internal/domain"
	"github.com/zhubert/huddle/internal/roster"
)

// Row is one sidebar line. It is the surface a list item draws into.
type Row struct {
	key          domain.Key
	name         string
	hidden       bool
	avatar       roster.Avatar
	presence     domain.Presence
	hasIndicator bool
	badge        string
	badgeVisible bool
	tooltip      string
}

// Rows only change while the sidebar owns them.
var _ roster.Surface = (*Row)(nil)

func newRow(key domain.Key) *Row {
	return &Row{key: key}
}

func (r *Row) SetName(name string)       { r.name = name }
func (r *Row) SetNameHidden(hidden bool) { r.hidden = hidden }
func (r *Row) SetAvatar(a roster.Avatar) { r.avatar = a }
func (r *Row) SetBadgeText(text string)  { r.badge = text }
func (r *Row) ShowBadge()                { r.badgeVisible = true }
func (r *Row) HideBadge()                { r.badgeVisible = false }
func (r *Row) SetToolTip(text string)    { r.tooltip = text }

func (r *Row) SetIndicator(p domain.Presence) {
	r.presence = p
	r.hasIndicator = true
}

// Key returns the slot the row belongs to
func (r *Row) Key() domain.Key { return r.key }

// Name returns the displayed name
func (r *Row) Name() string { return r.name }

// Hidden reports whether the name is drawn as hidden
func (r *Row) Hidden() bool { return r.hidden }

// Avatar returns the avatar glyph and color
func (r *Row) Avatar() roster.Avatar { return r.avatar }

// Presence returns the indicator state. ok is false for rows without one.
func (r *Row) Presence() (p domain.Presence, ok bool) { return r.presence, r.hasIndicator }

// Badge returns the badge text and whether it is shown.
func (r *Row) Badge() (string, bool) { return r.badge, r.badgeVisible }

// ToolTip returns the tooltip text
func (r *Row) ToolTip() string { return r.tooltip }

// avatarColor is the avatar background, falling back to the theme primary.
func (r *Row) avatarColor() color.Color {
	if r.avatar.HasColor() {
		return r.avatar.Color
	}
	return ColorPrimary
}
