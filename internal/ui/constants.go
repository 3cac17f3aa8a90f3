package ui

// Screen layout, in cells
const (
	HeaderHeight = 1
	FooterHeight = 1

	// BorderSize is what a rounded border takes from a panel in each axis
	BorderSize = 2

	// The roster gets width/SidebarWidthRatio, kept within these bounds
	SidebarWidthRatio = 3
	SidebarMinWidth   = 24
	SidebarMaxWidth   = 48

	// Smaller terminals are laid out as if they were this size
	MinTerminalWidth  = 40
	MinTerminalHeight = 10

	AvatarWidth = 3
)

// Chat window
const (
	// Message box: three text lines inside a border with one cell of
	// horizontal padding on each side
	TextareaHeight    = 3
	InputTotalHeight  = TextareaHeight + BorderSize
	InputPaddingWidth = 2
	ChatTitleHeight   = 1
	DefaultWrapWidth  = 80
	MaxChatHistory    = 2000
)

// SidebarSearchCharLimit caps the roster search query.
const SidebarSearchCharLimit = 64

// Dialogs
const (
	ModalWidth          = 60
	ModalInputWidth     = 50
	ModalInputCharLimit = 256
)
