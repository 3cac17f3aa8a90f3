package scenarios

import (
	"time"

	"github.com/zhubert/huddle/internal/demo"
	"github.com/zhubert/huddle/internal/domain"
	"github.com/zhubert/huddle/internal/ui"
)

var (
	ringChidi, _        = demo.Call("chidi@huddle.example", true)
	ringAlice, hangupAl = demo.Call("alice@huddle.example", false)
)

// Comprehensive shows the list keeping up with the network while the user
// works:
// 1. Messages and presence changes arrive
// 2. A contact request is accepted and the new contact shows up
// 3. A video call is answered; another caller gives up
// 4. A group chat is created, then its topic and the settings are edited
var Comprehensive = &demo.Scenario{
	Name:        "comprehensive",
	Description: "Live updates, contact requests, calls and group management",
	Width:       120,
	Height:      40,
	Setup:       demo.DefaultSetup(),
	Steps: []demo.Step{
		demo.Wait(1 * time.Second),
		demo.Capture(),

		// The network keeps moving
		demo.Annotate("Messages and presence update the list"),
		demo.Deliver("Release crew", "alice@huddle.example", "Build is green, shipping at 3."),
		demo.PresenceChange("bob@huddle.example", domain.PresenceOnline),
		demo.Wait(1 * time.Second),

		// Someone new wants in
		demo.ContactRequest("dana@huddle.example", "We met at the offsite."),
		demo.Wait(1 * time.Second),
		demo.Capture(),
		demo.KeyWithDesc("enter", "Accept"),
		demo.Wait(1 * time.Second),
		demo.Capture(),

		// A video call rings and is answered
		ringChidi,
		demo.Wait(1 * time.Second),
		demo.Capture(),
		demo.KeyWithDesc("enter", "Answer"),
		demo.Wait(1 * time.Second),
		demo.Capture(),

		// A call nobody picks up
		ringAlice,
		demo.Wait(800 * time.Millisecond),
		hangupAl,
		demo.Wait(1 * time.Second),
		demo.Capture(),

		// New group chat with Chidi
		demo.Select("chidi@huddle.example"),
		demo.KeyWithDesc("c", "New group chat"),
		demo.Type("Ethics club"),
		demo.Wait(600 * time.Millisecond),
		demo.Capture(),
		demo.Key("enter"),
		demo.Wait(1 * time.Second),
		demo.Capture(),
		demo.Key("esc"),

		// Topic of an existing group
		demo.Select("Release crew"),
		demo.KeyWithDesc("t", "Set topic"),
		demo.Wait(800 * time.Millisecond),
		demo.Capture(),
		demo.Key("esc"),

		// Settings
		demo.KeyWithDesc("s", "Settings"),
		demo.Wait(1 * time.Second),
		demo.Capture(),
		demo.Key("esc"),

		// Online status
		demo.KeyWithDesc("p", "Online status"),
		demo.Wait(800 * time.Millisecond),
		demo.Capture(),
		demo.Key("esc"),

		demo.Flash("That's huddle", ui.FlashInfo),
		demo.Wait(2 * time.Second),
	},
}
