package entity

import (
	"time"
)

// Role is the closed set of chat message authors.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Title renders the role for prompt history blocks ("User", "Assistant").
func (r Role) Title() string {
	switch r {
	case RoleUser:
		return "User"
	case RoleAssistant:
		return "Assistant"
	}
	return string(r)
}

// ChatMessage is one persisted conversation turn. Id is assigned on
// persist and is monotonically increasing; clients correlate streamed
// tokens with it.
type ChatMessage struct {
	Id        int64
	ChatId    string
	Role      Role
	Content   string
	CreatedAt time.Time
}
