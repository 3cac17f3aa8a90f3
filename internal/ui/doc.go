// Package ui provides the terminal components of huddle.
//
// # Overview
//
// The ui package implements the visual pieces of huddle using the Bubble Tea
// framework and Lipgloss styling library. Components hold no domain state of
// their own: the roster package drives the sidebar rows and chat windows
// through the Surface, Container and Window interfaces.
//
// # Layout System
//
// The layout is organized as follows:
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line)                                     │
//	├─────────────────┬───────────────────────────────────┤
//	│                 │ Chat title                        │
//	│   Sidebar       │ Chat history                      │
//	│   (1/3 width)   │                                   │
//	│                 │ Message input                     │
//	├─────────────────┴───────────────────────────────────┤
//	│ Footer (1 line)                                     │
//	└─────────────────────────────────────────────────────┘
//
// # Components
//
// ViewContext: Singleton that manages centralized layout calculations.
//
// Header: The app name, the open chat and the account's own presence.
//
// Footer: Context-aware keyboard shortcuts, replaced by flash messages for a
// few seconds after informational events.
//
// Sidebar: Contacts and chats, each row an avatar, presence dot, name and
// unread badge. Supports j/k navigation, "/" search and mouse hit-testing
// for clicks and drags.
//
// ChatWindow: One room's history in a viewport and a textarea for input.
// Fenced code is highlighted with chroma in the theme's style.
//
// Modal: Hosts a modals.ModalState centered over the screen.
//
// DragTracker and ClickTracker: Turn raw mouse events into drags and
// double-clicks on sidebar rows.
//
// # Styles
//
// All styles are derived from the active Theme in styles.go. SetTheme
// rebuilds them and hands the modal styles to the modals package.
package ui
