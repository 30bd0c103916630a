package entities

import "time"

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is a single turn of a tutoring conversation.
type ChatMessage struct {
	Role      ChatRole
	Content   string
	CreatedAt time.Time
}

// ChatHistory is the conversation of one owner, oldest message first.
type ChatHistory struct {
	Owner          string
	Messages       []ChatMessage
	LastActivityAt time.Time
}

// Append adds a message and drops the oldest ones above limit.
// A limit of zero or less keeps everything.
func (h *ChatHistory) Append(msg ChatMessage, limit int) {
	h.Messages = append(h.Messages, msg)
	if limit > 0 && len(h.Messages) > limit {
		h.Messages = append([]ChatMessage(nil), h.Messages[len(h.Messages)-limit:]...)
	}
	h.LastActivityAt = msg.CreatedAt
}

// Last returns up to n most recent messages.
func (h *ChatHistory) Last(n int) []ChatMessage {
	if n <= 0 || n >= len(h.Messages) {
		return append([]ChatMessage(nil), h.Messages...)
	}
	return append([]ChatMessage(nil), h.Messages[len(h.Messages)-n:]...)
}
