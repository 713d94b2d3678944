package conversation

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one immutable entry of a session's log.
type Message struct {
	ID        string
	Role      Role
	Text      string
	CreatedAt time.Time
}
