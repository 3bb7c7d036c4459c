package domain

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry of a user's conversation transcript. Messages are
// append-only; a turn stores one user message followed by one assistant reply.
type Message struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	ImageURL  string    `json:"image_url,omitempty"`
}
