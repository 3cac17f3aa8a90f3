package roster

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/zhubert/huddle/internal/domain"
)

// Surface is the row a list item renders into. The container owns it; an
// item writes to it only while the item is alive.
type Surface interface {
	SetName(name string)
	SetNameHidden(hidden bool)
	SetAvatar(a Avatar)
	SetIndicator(p domain.Presence)
	SetBadgeText(text string)
	ShowBadge()
	HideBadge()
	SetToolTip(text string)
}

// Container is the visual list that holds one row per item.
type Container interface {
	AddRow(key domain.Key) Surface
	RemoveRow(key domain.Key)
}

// Avatar is the square shown at the start of a row.
type Avatar struct {
	Glyph string
	// Color is the gradient base. A zero Color means the container default.
	Color color.RGBA
}

// HasColor reports whether the avatar carries its own color.
func (a Avatar) HasColor() bool { return a.Color.A != 0 }

var avatarPalette = [16]color.RGBA{
	{0xe5, 0x39, 0x35, 0xff},
	{0xd8, 0x1b, 0x60, 0xff},
	{0x8e, 0x24, 0xaa, 0xff},
	{0x5e, 0x35, 0xb1, 0xff},
	{0x39, 0x49, 0xab, 0xff},
	{0x1e, 0x88, 0xe5, 0xff},
	{0x03, 0x9b, 0xe5, 0xff},
	{0x00, 0xac, 0xc1, 0xff},
	{0x00, 0x89, 0x7b, 0xff},
	{0x43, 0xa0, 0x47, 0xff},
	{0x7c, 0xb3, 0x42, 0xff},
	{0xc0, 0xca, 0x33, 0xff},
	{0xfd, 0xd8, 0x35, 0xff},
	{0xff, 0xb3, 0x00, 0xff},
	{0xfb, 0x8c, 0x00, 0xff},
	{0xf4, 0x51, 0x1e, 0xff},
}

// AvatarColor picks the palette entry for a user from the low four bits of
// the id.
func AvatarColor(id domain.ID) color.RGBA {
	return avatarPalette[id&0x0f]
}

// AvatarGlyph returns the first grapheme of title, upper-cased.
func AvatarGlyph(title string) string {
	g := uniseg.NewGraphemes(title)
	if !g.Next() {
		return "?"
	}
	return strings.ToUpper(g.Str())
}

// UnreadText renders an unread count. A negative count means "at least
// -count".
func UnreadText(count int) string {
	if count < 0 {
		return strconv.Itoa(-count) + "+"
	}
	return strconv.Itoa(count)
}
