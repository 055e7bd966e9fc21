// Package event normalizes Telegram updates into the inbound events the
// handlers dispatch on.
package event

import (
	"strings"

	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
)

// Kind is the category an update is dispatched by.
type Kind int

const (
	KindUnsupported Kind = iota
	KindCommand
	KindNewMembers
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindNewMembers:
		return "new_members"
	case KindText:
		return "text"
	default:
		return "unsupported"
	}
}

// Route keys used by the handler table.
const (
	RouteNewMembers = "new_members"
	RouteText       = "text"
)

// User identifies a sender or a newly joined member.
type User struct {
	ID        int64
	FirstName string
	Username  string
	IsBot     bool
}

// Mention is the label used when addressing the user in a message:
// the username when set, otherwise the first name.
func (u User) Mention() string {
	if u.Username != "" {
		return u.Username
	}
	return u.FirstName
}

// Event is one inbound update reduced to what the handlers need.
type Event struct {
	TraceID    string
	UpdateID   int64
	Kind       Kind
	Command    string
	ChatID     int64
	MessageID  int
	Sender     User
	Text       string
	NewMembers []User
}

// Route returns the handler table key for the event, or "" when no handler
// should see it.
func (e *Event) Route() string {
	switch e.Kind {
	case KindCommand:
		if e.Command == "" {
			return ""
		}
		return "/" + e.Command
	case KindNewMembers:
		return RouteNewMembers
	case KindText:
		return RouteText
	default:
		return ""
	}
}

// FromUpdate converts a Telegram update. botUsername is used to ignore
// commands addressed to other bots (/start@otherbot); it may be empty.
func FromUpdate(upd *models.Update, botUsername string) *Event {
	ev := &Event{TraceID: uuid.NewString()}
	if upd == nil {
		return ev
	}
	ev.UpdateID = upd.ID

	msg := upd.Message
	if msg == nil {
		return ev
	}

	ev.ChatID = msg.Chat.ID
	ev.MessageID = msg.ID
	ev.Text = msg.Text
	if msg.From != nil {
		ev.Sender = userFrom(*msg.From)
	}

	switch {
	case len(msg.NewChatMembers) > 0:
		ev.Kind = KindNewMembers
		ev.NewMembers = make([]User, 0, len(msg.NewChatMembers))
		for _, m := range msg.NewChatMembers {
			ev.NewMembers = append(ev.NewMembers, userFrom(m))
		}
	case msg.Text == "":
		ev.Kind = KindUnsupported
	case isCommand(msg):
		ev.Kind = KindCommand
		ev.Command = parseCommand(msg.Text, botUsername)
	default:
		ev.Kind = KindText
	}

	return ev
}

func userFrom(u models.User) User {
	return User{
		ID:        u.ID,
		FirstName: u.FirstName,
		Username:  u.Username,
		IsBot:     u.IsBot,
	}
}

// isCommand reports whether the message starts with a bot command. Telegram
// marks commands with an entity; messages without entities fall back to the
// leading slash.
func isCommand(msg *models.Message) bool {
	if len(msg.Entities) == 0 {
		return strings.HasPrefix(msg.Text, "/")
	}
	for _, e := range msg.Entities {
		if e.Type == models.MessageEntityTypeBotCommand && e.Offset == 0 {
			return true
		}
	}
	return false
}

// parseCommand extracts the lowercase command name from "/name@bot args".
// It returns "" when the command targets a different bot.
func parseCommand(text, botUsername string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	word := strings.TrimPrefix(fields[0], "/")

	name, target, addressed := strings.Cut(word, "@")
	if addressed && botUsername != "" && !strings.EqualFold(target, botUsername) {
		return ""
	}
	return strings.ToLower(name)
}
