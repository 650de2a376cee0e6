package chats

import (
	"context"

	"codeberg.org/scholargo/server/scholargo/chats"
)

// implemented by chats.Repository
type Store interface {
	CreateSession(ctx context.Context, userID, title string) (*chats.Session, error)
	ListSessions(ctx context.Context, userID string) ([]chats.Session, error)
	RenameSession(ctx context.Context, sessionID, userID, title string) (*chats.Session, error)
	DeleteSession(ctx context.Context, sessionID, userID string) error
	ListMessages(ctx context.Context, sessionID, userID string) ([]chats.Message, error)
	AddMessage(ctx context.Context, sessionID, userID, role, content string) (*chats.Message, error)
	GetSession(ctx context.Context, sessionID, userID string) (*chats.Session, error)
}

type CreateSessionRequest struct {
	Title string `json:"title" binding:"max=200"`
}

type RenameSessionRequest struct {
	Title string `json:"title" binding:"required,max=200"`
}

type AddMessageRequest struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content" binding:"required"`
}

type SessionsResponse struct {
	Sessions []chats.Session `json:"sessions"`
}

type MessagesResponse struct {
	Messages []chats.Message `json:"messages"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
