package chat

import (
	"context"
	"errors"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

var (
	ErrSessionNotFound = errors.New("chat session not found")
	ErrNotSessionOwner = errors.New("chat session belongs to another user")
)

type Session struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	QuizID    string `json:"quiz_id,omitempty"` // quiz the conversation is about
	CreatedAt int64  `json:"created_at"`
}

type Message struct {
	ID        string `json:"id"`
	SessionID string `json:"session_id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"created_at"`
}

type Store interface {
	PutSession(ctx context.Context, s Session) error
	GetSession(ctx context.Context, id string) (Session, error)
	ListSessions(ctx context.Context, userID string) ([]Session, error)
	AppendMessage(ctx context.Context, m Message) error
	// ListMessages returns a session's messages oldest first.
	ListMessages(ctx context.Context, sessionID string) ([]Message, error)
}
