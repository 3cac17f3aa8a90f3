package ui

import (
	"strings"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/huddle/internal/domain"
	"github.com/zhubert/huddle/internal/keys"
	"github.com/zhubert/huddle/internal/roster"
)

// ChatWindow is the right panel showing one room's conversation and the
// message input.
type ChatWindow struct {
	chatID   domain.ID
	title    string
	viewport viewport.Model
	input    textarea.Model
	width    int
	height   int
	focused  bool
	shown    bool
	closed   bool
	messages []domain.Message
}

var _ roster.Window = (*ChatWindow)(nil)

// NewChatWindow creates the window of a room.
func NewChatWindow(chat domain.ID, title string) *ChatWindow {
	ta := textarea.New()
	ta.Placeholder = "Type your message..."
	ta.CharLimit = 0
	ta.SetHeight(TextareaHeight)
	ta.ShowLineNumbers = false
	ta.Prompt = ""

	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	c := &ChatWindow{
		chatID:   chat,
		title:    title,
		viewport: vp,
		input:    ta,
	}
	c.updateContent()
	return c
}

// ChatID returns the room the window belongs to
func (c *ChatWindow) ChatID() domain.ID { return c.chatID }

// Show marks the window as brought to front.
func (c *ChatWindow) Show() {
	c.shown = true
	c.closed = false
}

// Close marks the window closed and drops its input.
func (c *ChatWindow) Close() {
	c.shown = false
	c.closed = true
	c.SetFocused(false)
	c.input.Reset()
}

// AppendMessage adds a message to the end of the history. The oldest
// messages are dropped past MaxChatHistory.
func (c *ChatWindow) AppendMessage(m domain.Message) {
	if c.hasMessage(m.ID) {
		return
	}
	c.messages = append(c.messages, m)
	if over := len(c.messages) - MaxChatHistory; over > 0 {
		c.messages = append(c.messages[:0:0], c.messages[over:]...)
	}
	c.updateContent()
}

// hasMessage reports whether a message with id is already shown. History
// loaded when the window opens can overlap with queued deliveries.
func (c *ChatWindow) hasMessage(id string) bool {
	if id == "" {
		return false
	}
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].ID == id {
			return true
		}
	}
	return false
}

// SetMessages replaces the history.
func (c *ChatWindow) SetMessages(history []domain.Message) {
	if over := len(history) - MaxChatHistory; over > 0 {
		history = history[over:]
	}
	c.messages = append([]domain.Message(nil), history...)
	c.updateContent()
}

// Messages returns the shown history
func (c *ChatWindow) Messages() []domain.Message { return c.messages }

// IsShown reports whether Show was called since the last Close
func (c *ChatWindow) IsShown() bool { return c.shown }

// IsClosed reports whether the window was closed
func (c *ChatWindow) IsClosed() bool { return c.closed }

// Title returns the room title shown above the history
func (c *ChatWindow) Title() string { return c.title }

// SetTitle changes the room title.
func (c *ChatWindow) SetTitle(title string) { c.title = title }

// SetSize sets the chat panel dimensions
func (c *ChatWindow) SetSize(width, height int) {
	c.width = width
	c.height = height

	ctx := GetViewContext()

	// History panel height, excluding the title and input area
	panelHeight := height - InputTotalHeight - ChatTitleHeight

	innerWidth := ctx.InnerWidth(width)
	viewportHeight := max(ctx.InnerHeight(panelHeight), 1)

	c.viewport.SetWidth(innerWidth)
	c.viewport.SetHeight(viewportHeight)

	// Input width accounts for its own border AND padding
	c.input.SetWidth(ctx.InnerWidth(width) - InputPaddingWidth)

	ctx.Log("ChatWindow.SetSize", "chat", c.chatID.String(), "outer", width, "height", height,
		"viewportWidth", c.viewport.Width(), "viewportHeight", c.viewport.Height())
	c.updateContent()
}

// SetFocused sets the focus state
func (c *ChatWindow) SetFocused(focused bool) {
	c.focused = focused
	if focused {
		c.input.Focus()
	} else {
		c.input.Blur()
	}
}

// IsFocused returns the focus state
func (c *ChatWindow) IsFocused() bool {
	return c.focused
}

// GetInput returns the text typed into the input
func (c *ChatWindow) GetInput() string {
	return c.input.Value()
}

// ClearInput empties the input
func (c *ChatWindow) ClearInput() {
	c.input.Reset()
}

// SetInput replaces the input text
func (c *ChatWindow) SetInput(value string) {
	c.input.SetValue(value)
}

// RefreshStyles re-renders the history after a theme change
func (c *ChatWindow) RefreshStyles() {
	c.updateContent()
}

func (c *ChatWindow) updateContent() {
	wrapWidth := c.viewport.Width()
	if wrapWidth <= 0 {
		wrapWidth = DefaultWrapWidth
	}

	if len(c.messages) == 0 {
		c.viewport.SetContent(renderEmptyChat())
		return
	}

	parts := make([]string, len(c.messages))
	for i, m := range c.messages {
		parts[i] = renderMessage(m, wrapWidth)
	}
	c.viewport.SetContent(strings.Join(parts, "\n\n"))
	c.viewport.GotoBottom()
}

// Update handles messages
func (c *ChatWindow) Update(msg tea.Msg) (*ChatWindow, tea.Cmd) {
	if c.focused {
		if keyMsg, isKey := msg.(tea.KeyPressMsg); isKey {
			switch keyMsg.String() {
			case keys.PgUp, keys.PgDown, "ctrl+up", "ctrl+down", keys.Home, keys.End, "ctrl+u", "ctrl+d":
				var cmd tea.Cmd
				c.viewport, cmd = c.viewport.Update(msg)
				return c, cmd
			}

			// Keys go to the input only, so typing never scrolls
			var cmd tea.Cmd
			c.input, cmd = c.input.Update(msg)
			return c, cmd
		}
	}

	// Mouse wheel and other messages scroll the history
	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	return c, cmd
}

// View renders the chat panel
func (c *ChatWindow) View() string {
	panelStyle := PanelStyle
	if c.focused {
		panelStyle = PanelFocusedStyle
	}

	title := PanelTitleStyle.Render(ansi.Truncate(c.title, max(c.width-2, 1), "…"))
	panelHeight := c.height - InputTotalHeight - ChatTitleHeight
	chatPanel := panelStyle.Width(c.width).Height(panelHeight).Render(c.viewport.View())

	inputStyle := ChatInputStyle
	if c.focused {
		inputStyle = ChatInputFocusedStyle
	}
	inputArea := inputStyle.Width(c.width).Render(c.input.View())

	return lipgloss.JoinVertical(lipgloss.Left, title, chatPanel, inputArea)
}

// RenderNoChat renders the placeholder panel used while no window is open.
func RenderNoChat(width, height int) string {
	return PanelStyle.Width(width).Height(height).Render(renderNoChatMessage())
}
