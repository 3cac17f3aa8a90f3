package app

import (
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/huddle/internal/clipboard"
	"github.com/zhubert/huddle/internal/config"
	"github.com/zhubert/huddle/internal/domain"
	"github.com/zhubert/huddle/internal/logger"
	"github.com/zhubert/huddle/internal/roster"
	"github.com/zhubert/huddle/internal/ui"
	"github.com/zhubert/huddle/internal/ui/modals"
)

// Focus represents which panel is focused
type Focus int

const (
	FocusSidebar Focus = iota
	FocusChat
)

// String returns a human-readable name for the focus
func (f Focus) String() string {
	if f == FocusChat {
		return "chat"
	}
	return "sidebar"
}

// Network is the chat model the app runs against.
type Network interface {
	domain.Client
	// Start announces the model's entities to app. It may block on app.
	Start(app domain.App)
	// Self returns the account's own user id.
	Self() domain.ID
	// Stop drops later model callbacks.
	Stop()
}

// NetworkStartedMsg is sent once the network has announced its entities.
type NetworkStartedMsg struct{}

// ConfigChangedMsg is sent when the config file was edited outside the app.
type ConfigChangedMsg struct{}

// CallAnsweredMsg reports the outcome of answering an incoming call.
type CallAnsweredMsg struct {
	CallID   string
	Caller   string
	Accepted bool
	Err      error
}

// ContactRequestRepliedMsg reports the outcome of replying to a contact
// request.
type ContactRequestRepliedMsg struct {
	Email    string
	Accepted bool
	Err      error
}

// ClipboardMsg reports a clipboard write.
type ClipboardMsg struct {
	What string
	Err  error
}

// ClipboardHandleMsg carries a user handle read from the clipboard for an
// invite into Group.
type ClipboardHandleMsg struct {
	Group domain.ID
	Text  string
	Err   error
}

// Model is the main Bubble Tea model
type Model struct {
	config  *config.Config
	version string // App version (injected at build time)
	header  *ui.Header
	footer  *ui.Footer
	sidebar *ui.Sidebar
	modal   *ui.Modal

	width  int
	height int
	focus  Focus

	network  Network
	bridge   *roster.Bridge
	registry *roster.Registry
	windows  *roster.Windows

	// Chat window last brought to the front, used to move focus off it
	frontChat domain.ID

	drag   *ui.DragTracker
	clicks *ui.ClickTracker

	// Modals that arrived while another one was up, shown in order
	pending []modals.ModalState

	// A report during the current Update set a flash that needs its timer
	flashPending bool

	// listening is set once Init has started the bridge listener
	listening bool

	// The terminal reported focus. Desktop notifications wait for a blur.
	terminalFocused bool

	// Clipboard access, swapped out by tests
	writeClipboard func(text string) error
	readClipboard  func() (string, error)

	log *slog.Logger
}

var _ roster.Reporter = (*Model)(nil)

// New creates a new app model
func New(cfg *config.Config, network Network, version string) *Model {
	// Load saved theme from config, or use default
	if savedTheme := cfg.GetTheme(); savedTheme != "" {
		ui.SetThemeByName(savedTheme)
	}

	m := &Model{
		config:         cfg,
		version:        version,
		header:         ui.NewHeader(),
		footer:         ui.NewFooter(),
		sidebar:        ui.NewSidebar(),
		modal:          ui.NewModal(),
		focus:          FocusSidebar,
		network:        network,
		bridge:         roster.NewBridge(),
		drag:           ui.NewDragTracker(cfg.GetDragThreshold()),
		clicks:         ui.NewClickTracker(),
		writeClipboard: clipboard.WriteText,
		readClipboard:  clipboard.ReadText,
		log:            logger.WithComponent("app"),
	}
	m.windows = roster.NewWindows(roster.WindowFactoryFunc(m.newChatWindow))
	m.registry = roster.NewRegistry(network, m.sidebar, m.windows, m, roster.Options{
		ActionTimeout: cfg.GetActionTimeout(),
	})

	if email, ok := network.UserEmail(network.Self()); ok {
		m.header.SetAccount(email)
	}
	m.header.SetOwnPresence(network.OwnPresence())
	m.sidebar.SetFocused(true)
	return m
}

// newChatWindow builds the window of a room with the history the model has.
func (m *Model) newChatWindow(chat domain.ID) roster.Window {
	title := chat.String()
	if room, ok := m.network.Room(chat); ok {
		title = room.Title()
	}
	w := ui.NewChatWindow(chat, title)
	w.SetMessages(m.network.History(chat))
	ctx := ui.GetViewContext()
	if ctx.ChatWidth > 0 {
		w.SetSize(ctx.ChatWidth, ctx.ContentHeight)
	}
	m.log.Debug("chat window created", "chat", chat.String(), "messages", len(w.Messages()))
	return w
}

// Init starts the network and the listener for its callbacks
func (m *Model) Init() tea.Cmd {
	m.listening = true
	return tea.Batch(m.startNetwork(), m.bridge.Listen())
}

// startNetwork announces the model's entities off the UI loop. Start blocks
// until the bridge queue has room, which the listener provides.
func (m *Model) startNetwork() tea.Cmd {
	network, bridge := m.network, m.bridge
	return func() tea.Msg {
		network.Start(bridge)
		return NetworkStartedMsg{}
	}
}

// Bridge returns the domain.App the network reports to.
func (m *Model) Bridge() *roster.Bridge { return m.bridge }

// Registry returns the list item registry.
func (m *Model) Registry() *roster.Registry { return m.registry }

// Sidebar returns the contact and chat list.
func (m *Model) Sidebar() *ui.Sidebar { return m.sidebar }

// Focus returns the focused panel.
func (m *Model) Focus() Focus { return m.focus }

// SetClipboard replaces clipboard access. Demos keep the clipboard in memory.
func (m *Model) SetClipboard(write func(text string) error, read func() (string, error)) {
	m.writeClipboard, m.readClipboard = write, read
}

// ActiveChat returns the chat window in front, if any.
func (m *Model) ActiveChat() *ui.ChatWindow {
	w, ok := m.windows.Active()
	if !ok {
		return nil
	}
	cw, _ := w.(*ui.ChatWindow)
	return cw
}

// ModalState returns the modal on display, or nil.
func (m *Model) ModalState() modals.ModalState {
	if !m.modal.IsVisible() {
		return nil
	}
	return m.modal.State
}

// Shutdown tears the UI down. Completions arriving later are dropped and
// the network stops calling back.
func (m *Model) Shutdown() {
	m.registry.Close()
	m.bridge.Close()
	m.network.Stop()
}

// selectedItem returns the list item under the sidebar selection.
func (m *Model) selectedItem() (roster.ListItem, bool) {
	key, ok := m.sidebar.Selected()
	if !ok {
		return nil, false
	}
	return m.registry.Item(key)
}

// selectedContact returns the selected item if it is a contact.
func (m *Model) selectedContact() (*roster.ContactItem, bool) {
	key, ok := m.sidebar.Selected()
	if !ok || key.Kind != domain.KindContact {
		return nil, false
	}
	return m.registry.Contact(key.ID)
}

// selectedGroup returns the selected item if it is a group chat.
func (m *Model) selectedGroup() (*roster.GroupChatItem, bool) {
	key, ok := m.sidebar.Selected()
	if !ok || key.Kind != domain.KindGroupRoom {
		return nil, false
	}
	return m.registry.Group(key.ID)
}

// toggleFocus switches between the sidebar and the chat in front. The chat
// can only take focus while a window is open.
func (m *Model) toggleFocus() {
	if m.focus == FocusSidebar {
		if m.ActiveChat() == nil {
			return
		}
		m.setFocus(FocusChat)
		return
	}
	m.setFocus(FocusSidebar)
}

func (m *Model) setFocus(f Focus) {
	if f == FocusChat && m.ActiveChat() == nil {
		f = FocusSidebar
	}
	if m.focus != f {
		m.log.Debug("focus changed", "from", m.focus.String(), "to", f.String())
	}
	m.focus = f
	m.sidebar.SetFocused(f == FocusSidebar)
	if chat := m.ActiveChat(); chat != nil {
		chat.SetFocused(f == FocusChat)
	}
}

// syncChat follows the window in front after the registry moved it: the old
// window loses focus, the new one gets the layout, and the header shows its
// title.
func (m *Model) syncChat() {
	chat := m.ActiveChat()
	if chat == nil {
		m.frontChat = 0
		m.header.SetChatTitle("")
		if m.focus == FocusChat {
			m.setFocus(FocusSidebar)
		}
		return
	}
	if chat.ChatID() != m.frontChat {
		if prev, ok := m.windows.Get(m.frontChat); ok {
			if cw, ok := prev.(*ui.ChatWindow); ok {
				cw.SetFocused(false)
			}
		}
		m.frontChat = chat.ChatID()
		ctx := ui.GetViewContext()
		if ctx.ChatWidth > 0 {
			chat.SetSize(ctx.ChatWidth, ctx.ContentHeight)
		}
		chat.SetFocused(m.focus == FocusChat)
	}
	m.header.SetChatTitle(chat.Title())
}
