package chat

import "time"

// Message roles. The assistant side is "bot", matching the UI labels.
const (
	RoleUser = "user"
	RoleBot  = "bot"
)

// Message is one turn of a session's chat history.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Disease   string    `json:"disease,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
