package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/huddle/internal/domain"
	"github.com/zhubert/huddle/internal/ui"
)

// handleMouse routes mouse events. Clicks and drags on the sidebar act on
// list rows; everything right of it belongs to the chat in front.
// Returns handled=false for events nothing claims.
func (m *Model) handleMouse(msg tea.Msg) (tea.Cmd, bool) {
	if m.modal.IsVisible() {
		return nil, true
	}
	sidebarWidth := m.sidebar.Width()

	switch mouse := msg.(type) {
	case tea.MouseClickMsg:
		if mouse.Button != tea.MouseLeft {
			return nil, false
		}
		if mouse.X >= sidebarWidth {
			if m.ActiveChat() != nil {
				m.setFocus(FocusChat)
			}
			return nil, true
		}
		return m.handleRowPress(mouse.X, mouse.Y), true

	case tea.MouseMotionMsg:
		if m.drag.Motion(mouse.X, mouse.Y) {
			m.log.Debug("drag started", "source", m.drag.Source().String())
		}
		if !m.drag.Dragging() {
			return nil, false
		}
		m.updateDropTarget(mouse.X, mouse.Y)
		return nil, true

	case tea.MouseReleaseMsg:
		return m.handleRowRelease(mouse.X, mouse.Y), true

	case tea.MouseWheelMsg:
		if mouse.X < sidebarWidth {
			return nil, false
		}
		if chat := m.ActiveChat(); chat != nil {
			_, cmd := chat.Update(msg)
			return cmd, true
		}
	}
	return nil, false
}

// rowAt maps a screen position to the sidebar row under it.
func (m *Model) rowAt(x, y int) (domain.Key, bool) {
	if x >= m.sidebar.Width() {
		return domain.Key{}, false
	}
	return m.sidebar.RowAt(y - ui.HeaderHeight)
}

// handleRowPress selects the row under the pointer. A second click on the
// same row opens its chat; a press on a contact may start a drag.
func (m *Model) handleRowPress(x, y int) tea.Cmd {
	key, ok := m.rowAt(x, y)
	if !ok {
		return nil
	}
	m.sidebar.Select(key)
	m.setFocus(FocusSidebar)
	if key.Kind == domain.KindContact {
		m.drag.Press(x, y, key)
	}
	if !m.clicks.Click(key) {
		return nil
	}
	m.drag.Cancel()
	item, ok := m.registry.Item(key)
	if !ok {
		return nil
	}
	return m.openChat(item)
}

// updateDropTarget highlights the group chat under a dragged contact.
func (m *Model) updateDropTarget(x, y int) {
	if !m.drag.Dragging() {
		return
	}
	if key, ok := m.rowAt(x, y); ok && key.Kind == domain.KindGroupRoom {
		m.sidebar.SetDropTarget(key)
		return
	}
	m.sidebar.ClearDropTarget()
}

// handleRowRelease finishes a drag. Dropping a contact on a group chat
// invites it; dropping it anywhere else copies its handle.
func (m *Model) handleRowRelease(x, y int) tea.Cmd {
	defer m.sidebar.ClearDropTarget()

	source, wasDrag := m.drag.Release()
	if !wasDrag {
		return nil
	}
	contact, ok := m.registry.Contact(source.ID)
	if !ok {
		return nil
	}
	payload := contact.DragPayload()
	if target, ok := m.rowAt(x, y); ok && target.Kind == domain.KindGroupRoom {
		m.log.Info("contact dropped on group", "contact", source.String(), "group", target.String())
		return m.registry.InviteToGroup(payload, target.ID)
	}
	return m.copyHandle(payload, contact.Contact().Email())
}
