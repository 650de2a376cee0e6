package chats

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrSessionNotFound = errors.New("chat session not found")

const (
	DefaultTitle = "New Chat"

	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// handles chat session and message database operations
type Repository struct {
	db *pgxpool.Pool
}

type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
