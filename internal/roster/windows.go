package roster

import (
	"log/slog"

	"github.com/zhubert/huddle/internal/domain"
	"github.com/zhubert/huddle/internal/logger"
)

// Window is the chat window of one room.
type Window interface {
	ChatID() domain.ID
	Show()
	Close()
	AppendMessage(m domain.Message)
}

// WindowFactory builds the window for a room.
type WindowFactory interface {
	NewWindow(chat domain.ID) Window
}

// WindowFactoryFunc adapts a function to WindowFactory.
type WindowFactoryFunc func(chat domain.ID) Window

func (f WindowFactoryFunc) NewWindow(chat domain.ID) Window { return f(chat) }

// Windows binds at most one window to each room and tracks which one is in
// front.
type Windows struct {
	factory WindowFactory
	byRoom  map[domain.ID]Window
	active  domain.ID
	shown   bool
	log     *slog.Logger
}

// NewWindows creates an empty window registry.
func NewWindows(f WindowFactory) *Windows {
	return &Windows{
		factory: f,
		byRoom:  make(map[domain.ID]Window),
		log:     logger.WithComponent("windows"),
	}
}

// Get returns the window bound to a room.
func (w *Windows) Get(chat domain.ID) (Window, bool) {
	win, ok := w.byRoom[chat]
	return win, ok
}

// Ensure returns the room's window, creating and binding it if absent.
func (w *Windows) Ensure(chat domain.ID) Window {
	if win, ok := w.byRoom[chat]; ok {
		return win
	}
	win := w.factory.NewWindow(chat)
	w.byRoom[chat] = win
	w.log.Debug("window bound", "chat", chat.String())
	return win
}

// Show brings the room's window to the front, creating it if needed.
func (w *Windows) Show(chat domain.ID) Window {
	win := w.Ensure(chat)
	win.Show()
	w.active = chat
	w.shown = true
	return win
}

// Active returns the window in front, if any.
func (w *Windows) Active() (Window, bool) {
	if !w.shown {
		return nil, false
	}
	return w.Get(w.active)
}

// Close destroys the room's window.
func (w *Windows) Close(chat domain.ID) {
	win, ok := w.byRoom[chat]
	if !ok {
		return
	}
	delete(w.byRoom, chat)
	win.Close()
	if w.shown && w.active == chat {
		w.shown = false
	}
	w.log.Debug("window closed", "chat", chat.String())
}

// CloseAll destroys every window.
func (w *Windows) CloseAll() {
	for chat := range w.byRoom {
		w.Close(chat)
	}
}

// Deliver appends m to its room's window, if the window exists.
func (w *Windows) Deliver(m domain.Message) bool {
	win, ok := w.byRoom[m.ChatID]
	if !ok {
		return false
	}
	win.AppendMessage(m)
	return true
}

// Len returns the number of bound windows.
func (w *Windows) Len() int { return len(w.byRoom) }
