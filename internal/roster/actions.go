package roster

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/zhubert/huddle/internal/domain"
	"github.com/zhubert/huddle/internal/errors"
)

// Op names a model operation issued from the UI.
type Op string

const (
	OpCreatePeerRoom Op = "create chat room"
	OpCreateGroup    Op = "create group chat"
	OpRemoveContact  Op = "remove contact"
	OpAddContact     Op = "add contact"
	OpLeave          Op = "leave group chat"
	OpSetTopic       Op = "set chat topic"
	OpTruncate       Op = "truncate chat"
	OpInvite         Op = "invite to group chat"
	OpSetPresence    Op = "set online status"
	OpSendMessage    Op = "send message"
	OpApplySettings  Op = "apply settings"
)

// Title is the heading of an error report for the operation.
func (o Op) Title() string {
	s := string(o)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ResultMsg is the completion of an operation.
type ResultMsg struct {
	RequestID string
	Op        Op
	// Target is the entity the operation was issued for. Zero for
	// operations on the user's own account.
	Target domain.Key
	// Label names the target in reports.
	Label string
	// ChatID is the room created by OpCreatePeerRoom and OpCreateGroup.
	ChatID domain.ID
	Err    error

	subject string
}

// flightKey identifies a request for the in-flight guard.
type flightKey struct {
	op      Op
	subject string
}

type request struct {
	op     Op
	target domain.Key
	// subject defaults to the target key.
	subject string
	label   string
	call    func(ctx context.Context) (domain.ID, error)
}

// issue starts a request unless the same one is already running. The call
// must capture only values; it runs off the UI loop.
func (r *Registry) issue(req request) tea.Cmd {
	if req.subject == "" {
		req.subject = req.target.String()
	}
	fk := flightKey{op: req.op, subject: req.subject}
	if _, busy := r.inFlight[fk]; busy {
		err := errors.RequestInFlight(string(req.op), req.subject)
		r.log.Warn("refusing concurrent request", "error", err)
		r.reporter.ReportInfo(req.op.Title() + " is already in progress")
		return nil
	}
	id := uuid.NewString()
	r.inFlight[fk] = id
	r.log.Debug("request issued", "op", string(req.op), "subject", req.subject, "request", id)

	timeout := r.opts.ActionTimeout
	return func() tea.Msg {
		ctx, cancel := context.Background(), context.CancelFunc(func() {})
		if timeout > 0 {
			ctx, cancel = context.WithTimeout(ctx, timeout)
		}
		defer cancel()
		chatID, err := req.call(ctx)
		if err != nil && stderrors.Is(err, context.DeadlineExceeded) {
			err = errors.E(errors.Op("roster.issue"), errors.KindTimeout, err)
		}
		return ResultMsg{
			RequestID: id,
			Op:        req.op,
			Target:    req.target,
			Label:     req.label,
			ChatID:    chatID,
			Err:       err,
			subject:   req.subject,
		}
	}
}

// InFlight reports whether an operation on target is still running.
func (r *Registry) InFlight(op Op, target domain.Key) bool {
	_, ok := r.inFlight[flightKey{op: op, subject: target.String()}]
	return ok
}

// HandleResult applies a completion on the UI loop. Entities are looked up
// again: anything that went away meanwhile is left alone.
func (r *Registry) HandleResult(msg ResultMsg) {
	fk := flightKey{op: msg.Op, subject: msg.subject}
	if r.inFlight[fk] == msg.RequestID {
		delete(r.inFlight, fk)
	}
	if r.closed {
		r.log.Debug("dropping completion after close", "op", string(msg.Op), "request", msg.RequestID)
		return
	}
	if msg.Err != nil {
		err := failure(msg)
		r.log.Warn("request failed", "op", string(msg.Op), "request", msg.RequestID, "error", err)
		r.reporter.ReportError(msg.Op.Title(), err)
		return
	}
	r.log.Debug("request succeeded", "op", string(msg.Op), "request", msg.RequestID)

	switch msg.Op {
	case OpCreatePeerRoom:
		it, ok := r.Contact(msg.Target.ID)
		if !ok {
			r.log.Info("contact removed before its chat room was created", "key", msg.Target.String())
			return
		}
		it.UpdateToolTip()
		if !r.roomLive(msg.ChatID) {
			r.log.Info("chat room removed before its window opened", "chat", msg.ChatID.String())
			return
		}
		r.windows.Show(msg.ChatID)
	case OpCreateGroup:
		if !r.roomLive(msg.ChatID) {
			r.log.Info("group chat removed before its window opened", "chat", msg.ChatID.String())
			return
		}
		r.windows.Show(msg.ChatID)
		r.reporter.ReportInfo(fmt.Sprintf("Created group chat %s", quoteOr(msg.Label, "(unnamed)")))
	case OpRemoveContact:
		r.reporter.ReportInfo("Removed " + msg.Label + " from contacts")
	case OpAddContact:
		r.reporter.ReportInfo("Contact request sent to " + msg.Label)
	case OpLeave:
		r.reporter.ReportInfo("Left " + msg.Label)
	case OpSetTopic:
		r.reporter.ReportInfo("Topic set")
	case OpTruncate:
		r.reporter.ReportInfo("Truncated " + msg.Label)
	case OpInvite:
		r.reporter.ReportInfo("Invited " + msg.Label)
	case OpApplySettings:
		r.reporter.ReportInfo("Settings applied")
	}
}

func quoteOr(s, empty string) string {
	if s == "" {
		return empty
	}
	return fmt.Sprintf("%q", s)
}

// failure wraps a completion error with the operation that failed.
func failure(msg ResultMsg) error {
	switch msg.Op {
	case OpCreatePeerRoom:
		return errors.RoomCreateFailed(msg.Label, msg.Err)
	case OpCreateGroup:
		return errors.GroupCreateFailed(msg.Label, msg.Err)
	case OpRemoveContact:
		return errors.ContactRemoveFailed(msg.Label, msg.Err)
	case OpAddContact:
		return errors.ContactAddFailed(msg.Label, msg.Err)
	case OpLeave:
		return errors.RoomLeaveFailed(msg.Label, msg.Err)
	case OpSetTopic:
		return errors.TopicSetFailed(msg.Label, msg.Err)
	case OpTruncate:
		return errors.TruncateFailed(msg.Label, msg.Err)
	case OpInvite:
		return errors.InviteFailed(msg.Label, msg.Target.String(), msg.Err)
	case OpSetPresence:
		return errors.PresenceSetFailed(msg.Err)
	case OpSendMessage:
		return errors.MessageSendFailed(msg.Label, msg.Err)
	default:
		return msg.Err
	}
}

func (r *Registry) createPeerRoom(it *ContactItem) tea.Cmd {
	client, id := r.client, it.contact.UserID()
	return r.issue(request{
		op:     OpCreatePeerRoom,
		target: it.key,
		label:  it.contact.Email(),
		call: func(ctx context.Context) (domain.ID, error) {
			return client.CreatePeerRoom(ctx, id)
		},
	})
}

func (r *Registry) createGroupRoom(from domain.Key, name string, invites []domain.Invite) tea.Cmd {
	client := r.client
	return r.issue(request{
		op:     OpCreateGroup,
		target: from,
		label:  name,
		call: func(ctx context.Context) (domain.ID, error) {
			return client.CreateGroupRoom(ctx, name, invites)
		},
	})
}

func (r *Registry) removeContact(it *ContactItem) tea.Cmd {
	client, id := r.client, it.contact.UserID()
	return r.issue(request{
		op:     OpRemoveContact,
		target: it.key,
		label:  it.contact.Email(),
		call: func(ctx context.Context) (domain.ID, error) {
			return 0, client.RemoveContact(ctx, id)
		},
	})
}

func (r *Registry) leaveRoom(key domain.Key, room domain.GroupRoom) tea.Cmd {
	client, chat := r.client, room.ChatID()
	return r.issue(request{
		op:     OpLeave,
		target: key,
		label:  room.Title(),
		call: func(ctx context.Context) (domain.ID, error) {
			return chat, client.LeaveRoom(ctx, chat)
		},
	})
}

func (r *Registry) setRoomTopic(key domain.Key, room domain.GroupRoom, topic string) tea.Cmd {
	client, chat := r.client, room.ChatID()
	return r.issue(request{
		op:     OpSetTopic,
		target: key,
		label:  room.Title(),
		call: func(ctx context.Context) (domain.ID, error) {
			return chat, client.SetRoomTopic(ctx, chat, topic)
		},
	})
}

func (r *Registry) truncateRoom(key domain.Key, room domain.Room) tea.Cmd {
	client, chat := r.client, room.ChatID()
	return r.issue(request{
		op:     OpTruncate,
		target: key,
		label:  room.Title(),
		call: func(ctx context.Context) (domain.ID, error) {
			return chat, client.TruncateRoom(ctx, chat)
		},
	})
}

// InviteToGroup adds a contact to a group room. It is the drop action of a
// contact drag onto a group item.
func (r *Registry) InviteToGroup(p DragPayload, group domain.ID) tea.Cmd {
	g, ok := r.Group(group)
	if !ok {
		r.log.Warn("invite to unknown group", "chat", group.String())
		return nil
	}
	label := p.Handle()
	if c, ok := r.Contact(p.UserID); ok {
		label = c.contact.Email()
	}
	client, user := r.client, p.UserID
	return r.issue(request{
		op:      OpInvite,
		target:  g.key,
		subject: g.key.String() + "/" + user.String(),
		label:   label,
		call: func(ctx context.Context) (domain.ID, error) {
			return group, client.InviteToGroup(ctx, group, user, domain.PrivFull)
		},
	})
}

// RequestContact sends a contact request to email.
func (r *Registry) RequestContact(email string) tea.Cmd {
	client := r.client
	return r.issue(request{
		op:      OpAddContact,
		subject: email,
		label:   email,
		call: func(ctx context.Context) (domain.ID, error) {
			return 0, client.AddContact(ctx, email)
		},
	})
}

// SetOwnPresence changes the user's own online status.
func (r *Registry) SetOwnPresence(p domain.Presence) tea.Cmd {
	client := r.client
	return r.issue(request{
		op:      OpSetPresence,
		subject: "self",
		label:   p.String(),
		call: func(ctx context.Context) (domain.ID, error) {
			return 0, client.SetOwnPresence(ctx, p)
		},
	})
}

// SendMessage posts text to a room. Sends are not deduplicated; each one
// gets its own request.
func (r *Registry) SendMessage(chat domain.ID, text string) tea.Cmd {
	client := r.client
	label := chat.String()
	if room, ok := client.Room(chat); ok {
		label = room.Title()
	}
	return r.issue(request{
		op:      OpSendMessage,
		subject: chat.String() + "/" + uuid.NewString(),
		label:   label,
		call: func(ctx context.Context) (domain.ID, error) {
			return chat, client.SendMessage(ctx, chat, text)
		},
	})
}

// ApplySettings selects the media inputs used for calls.
func (r *Registry) ApplySettings(audio, video string) tea.Cmd {
	client := r.client
	return r.issue(request{
		op:      OpApplySettings,
		subject: "settings",
		label:   "settings",
		call: func(ctx context.Context) (domain.ID, error) {
			return 0, client.SelectMediaInputs(ctx, audio, video)
		},
	})
}
