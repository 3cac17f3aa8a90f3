// Package scenarios contains built-in demo scenarios for huddle.
package scenarios

import (
	"time"

	"github.com/zhubert/huddle/internal/demo"
)

// Basic walks through everyday use:
// - Browsing the contact and chat list
// - Opening a 1:1 chat and replying
// - Searching the list and opening a group chat
// - The actions menu and the help screen
var Basic = &demo.Scenario{
	Name:        "basic",
	Description: "Browse contacts, reply in a chat, search and open a group",
	Width:       120,
	Height:      40,
	Setup:       demo.DefaultSetup(),
	Steps: []demo.Step{
		// Initial view with contacts and chats
		demo.Wait(1 * time.Second),
		demo.Capture(),

		// Open the 1:1 chat with Alice, which has unread messages
		demo.Select("Alice Liddell"),
		demo.Wait(400 * time.Millisecond),
		demo.KeyWithDesc("enter", "Open chat"),
		demo.Wait(800 * time.Millisecond),
		demo.Capture(),

		// Reply
		demo.Type("Sounds good, see you at two."),
		demo.Wait(300 * time.Millisecond),
		demo.Capture(),
		demo.KeyWithDesc("enter", "Send"),
		demo.Wait(800 * time.Millisecond),
		demo.Capture(),

		// Back to the list
		demo.Key("esc"),
		demo.Wait(300 * time.Millisecond),

		// Actions for a contact without a chat yet
		demo.Select("bob@huddle.example"),
		demo.KeyWithDesc("m", "Open actions menu"),
		demo.Wait(1 * time.Second),
		demo.Capture(),
		demo.Key("esc"),

		// Search the list
		demo.KeyWithDesc("/", "Search"),
		demo.Type("rel"),
		demo.Wait(600 * time.Millisecond),
		demo.Capture(),
		demo.Key("enter"),
		demo.Select("Release crew"),
		demo.KeyWithDesc("enter", "Open group chat"),
		demo.Wait(1 * time.Second),
		demo.Capture(),

		// Help
		demo.Key("esc"),
		demo.KeyWithDesc("?", "Show shortcuts"),
		demo.Wait(1 * time.Second),
		demo.Capture(),
		demo.Key("esc"),

		// Final pause
		demo.Wait(2 * time.Second),
	},
}

// All returns all built-in scenarios.
func All() []*demo.Scenario {
	return []*demo.Scenario{
		Basic,
		Comprehensive,
	}
}

// Get returns a scenario by name, or nil if not found.
func Get(name string) *demo.Scenario {
	for _, s := range All() {
		if s.Name == name {
			return s
		}
	}
	return nil
}
