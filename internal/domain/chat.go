package domain

import "time"

// MessageRole identifies who authored a chat message.
type MessageRole string

const (
	RoleUser  MessageRole = "user"
	RoleModel MessageRole = "model"
)

// Message represents one entry in a chat transcript. Transcripts are
// append-only; ordering is insertion order.
type Message struct {
	ID        string      `json:"id"`
	Role      MessageRole `json:"role"`
	Text      string      `json:"text"`
	Timestamp time.Time   `json:"timestamp"`
}

// CreateSessionRequest is the request to start a persona chat session.
type CreateSessionRequest struct {
	PersonaID string `json:"persona_id" binding:"required"`
}

// SendMessageRequest is the request to send a chat message.
type SendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// SessionView is the client-facing view of a chat session.
type SessionView struct {
	SessionID string    `json:"session_id"`
	PersonaID string    `json:"persona_id"`
	Messages  []Message `json:"messages"`
}

// SendResult is the response to a chat send. Answered is false when the
// hosted model failed to reply; the transcript then ends with the user's
// message and no error entry.
type SendResult struct {
	SessionView
	Answered bool `json:"answered"`
}
