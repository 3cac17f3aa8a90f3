package sim

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zhubert/huddle/internal/domain"
	"github.com/zhubert/huddle/internal/errors"
)

//go:embed default.yaml
var defaultFixture []byte

// Fixture is the YAML description of a network.
type Fixture struct {
	Self     UserFixture   `yaml:"self"`
	Latency  string        `yaml:"latency,omitempty"`
	Devices  DeviceFixture `yaml:"devices,omitempty"`
	Presence string        `yaml:"presence,omitempty"`
	Contacts []UserFixture `yaml:"contacts"`
	Users    []UserFixture `yaml:"users,omitempty"`
	Rooms    []RoomFixture `yaml:"rooms,omitempty"`
}

// UserFixture describes the account, a contact or another known user.
type UserFixture struct {
	ID       uint64 `yaml:"id"`
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Presence string `yaml:"presence,omitempty"`
	Hidden   bool   `yaml:"hidden,omitempty"`
}

// DeviceFixture lists capture devices.
type DeviceFixture struct {
	Audio []string `yaml:"audio,omitempty"`
	Video []string `yaml:"video,omitempty"`
}

// RoomFixture describes a 1:1 or group room.
type RoomFixture struct {
	ID       uint64           `yaml:"id"`
	Kind     string           `yaml:"kind"` // "peer" or "group"
	Title    string           `yaml:"title,omitempty"`
	With     uint64           `yaml:"with,omitempty"`
	Priv     *int             `yaml:"priv,omitempty"`
	Unread   int              `yaml:"unread,omitempty"`
	Members  []MemberFixture  `yaml:"members,omitempty"`
	Messages []MessageFixture `yaml:"messages,omitempty"`
}

// MemberFixture is a group member.
type MemberFixture struct {
	ID   uint64 `yaml:"id"`
	Priv int    `yaml:"priv"`
}

// MessageFixture is one history entry.
type MessageFixture struct {
	From uint64 `yaml:"from"`
	Text string `yaml:"text"`
}

// LoadFixture reads a fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.E(errors.Op("sim.LoadFixture"), errors.KindIO, fmt.Sprintf("failed to read fixture %s", path), err)
	}
	return ParseFixture(path, data)
}

// ParseFixture decodes and validates fixture data. name is used in errors.
func ParseFixture(name string, data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.FixtureInvalid(name, fmt.Sprintf("failed to parse yaml: %v", err))
	}
	if err := f.Validate(name); err != nil {
		return nil, err
	}
	return &f, nil
}

// DefaultFixture returns the built-in demo network.
func DefaultFixture() *Fixture {
	f, err := ParseFixture("default.yaml", defaultFixture)
	if err != nil {
		panic(err)
	}
	return f
}

// Validate checks ids, references and enum values.
func (f *Fixture) Validate(name string) error {
	bad := func(format string, args ...any) error {
		return errors.FixtureInvalid(name, fmt.Sprintf(format, args...))
	}
	if f.Self.ID == 0 || f.Self.Email == "" {
		return bad("self needs an id and an email")
	}
	if _, err := f.latency(); err != nil {
		return bad("invalid latency %q", f.Latency)
	}
	if f.Presence != "" {
		if _, ok := domain.ParsePresence(f.Presence); !ok {
			return bad("invalid presence %q", f.Presence)
		}
	}

	seen := map[uint64]string{f.Self.ID: "self"}
	contacts := map[uint64]bool{}
	for _, list := range []struct {
		what  string
		users []UserFixture
	}{{"contact", f.Contacts}, {"user", f.Users}} {
		for _, u := range list.users {
			if u.ID == 0 || u.Email == "" {
				return bad("%s %q needs an id and an email", list.what, u.Name)
			}
			if prev, dup := seen[u.ID]; dup {
				return bad("%s id %d already used by %s", list.what, u.ID, prev)
			}
			seen[u.ID] = list.what + " " + u.Email
			if u.Presence != "" {
				if _, ok := domain.ParsePresence(u.Presence); !ok {
					return bad("%s %s: invalid presence %q", list.what, u.Email, u.Presence)
				}
			}
			if list.what == "contact" {
				contacts[u.ID] = true
			}
		}
	}

	peers := map[uint64]bool{}
	for _, r := range f.Rooms {
		if r.ID == 0 {
			return bad("room %q needs an id", r.Title)
		}
		if prev, dup := seen[r.ID]; dup {
			return bad("room id %d already used by %s", r.ID, prev)
		}
		seen[r.ID] = "room"
		switch r.Kind {
		case "peer":
			if !contacts[r.With] {
				return bad("1:1 room %d: %d is not a contact", r.ID, r.With)
			}
			if peers[r.With] {
				return bad("1:1 room %d: contact %d already has a room", r.ID, r.With)
			}
			peers[r.With] = true
		case "group":
			for _, m := range r.Members {
				if who, ok := seen[m.ID]; !ok || who == "self" || who == "room" {
					return bad("group %d: unknown member %d", r.ID, m.ID)
				}
			}
		default:
			return bad("room %d: kind must be peer or group, got %q", r.ID, r.Kind)
		}
		for _, m := range r.Messages {
			if who, ok := seen[m.From]; !ok || who == "room" {
				return bad("room %d: message from unknown user %d", r.ID, m.From)
			}
		}
	}
	return nil
}

func (f *Fixture) latency() (time.Duration, error) {
	if f.Latency == "" {
		return 0, nil
	}
	return time.ParseDuration(f.Latency)
}

// Build creates a network from a validated fixture.
func (f *Fixture) Build() *Network {
	n := New(domain.ID(f.Self.ID), f.Self.Name, f.Self.Email)
	n.latency, _ = f.latency()
	if p, ok := domain.ParsePresence(f.Presence); ok {
		n.presence = p
	}
	n.devices = domain.MediaDevices{
		AudioInputs: append([]string(nil), f.Devices.Audio...),
		VideoInputs: append([]string(nil), f.Devices.Video...),
	}
	if len(n.devices.AudioInputs) > 0 {
		n.audio = n.devices.AudioInputs[0]
	}
	if len(n.devices.VideoInputs) > 0 {
		n.video = n.devices.VideoInputs[0]
	}

	for _, u := range f.Users {
		n.users[domain.ID(u.ID)] = user{id: domain.ID(u.ID), name: u.Name, email: u.Email}
	}
	for _, u := range f.Contacts {
		c := &contactRec{
			user:       user{id: domain.ID(u.ID), name: u.Name, email: u.Email},
			presence:   domain.PresenceOffline,
			visibility: domain.VisibilityVisible,
		}
		if p, ok := domain.ParsePresence(u.Presence); ok {
			c.presence = p
		}
		if u.Hidden {
			c.visibility = domain.VisibilityHidden
		}
		n.contacts[c.id] = c
		if c.id > n.nextID {
			n.nextID = c.id
		}
	}

	base := time.Now().Add(-time.Hour)
	for _, rf := range f.Rooms {
		r := &roomRec{
			id:      domain.ID(rf.ID),
			group:   rf.Kind == "group",
			title:   rf.Title,
			unread:  rf.Unread,
			ownPriv: domain.PrivFull,
		}
		if rf.Priv != nil {
			r.ownPriv = domain.Priv(*rf.Priv)
		}
		if r.group {
			for _, m := range rf.Members {
				id := domain.ID(m.ID)
				r.members = append(r.members, domain.Member{UserID: id, Name: n.nameLocked(id), Priv: domain.Priv(m.Priv)})
			}
		} else {
			r.peer = domain.ID(rf.With)
			n.contacts[r.peer].room = r.id
		}
		for i, mf := range rf.Messages {
			from := domain.ID(mf.From)
			r.history = append(r.history, domain.Message{
				ID:       fmt.Sprintf("%s-%d", r.id, i),
				ChatID:   r.id,
				From:     from,
				FromName: n.nameLocked(from),
				Text:     mf.Text,
				Sent:     base.Add(time.Duration(i) * time.Minute),
				Own:      from == n.self.id,
			})
		}
		n.rooms[r.id] = r
		if r.id > n.nextID {
			n.nextID = r.id
		}
	}
	return n
}
