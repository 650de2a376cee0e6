package chats

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates a new chat repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateSession(ctx context.Context, userID, title string) (*Session, error) {
	if title == "" {
		title = DefaultTitle
	}

	session, err := scanSession(r.db.QueryRow(ctx, queryCreateSession, userID, title))
	if err != nil {
		return nil, fmt.Errorf("failed to create chat session: %w", err)
	}

	return session, nil
}

func (r *Repository) GetSession(ctx context.Context, sessionID, userID string) (*Session, error) {
	session, err := scanSession(r.db.QueryRow(ctx, queryGetSession, sessionID, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load chat session: %w", err)
	}

	return session, nil
}

// lists a user's sessions, newest first
func (r *Repository) ListSessions(ctx context.Context, userID string) ([]Session, error) {
	rows, err := r.db.Query(ctx, queryListSessions, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat sessions: %w", err)
	}
	defer rows.Close()

	sessions := []Session{}

	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chat session: %w", err)
		}

		sessions = append(sessions, *s)
	}

	return sessions, rows.Err()
}

func (r *Repository) RenameSession(ctx context.Context, sessionID, userID, title string) (*Session, error) {
	session, err := scanSession(r.db.QueryRow(ctx, queryRenameSession, sessionID, userID, title))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to rename chat session: %w", err)
	}

	return session, nil
}

// deletes a session; its messages go with it through the foreign key cascade
func (r *Repository) DeleteSession(ctx context.Context, sessionID, userID string) error {
	tag, err := r.db.Exec(ctx, queryDeleteSession, sessionID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete chat session: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// lists a session's messages, oldest first
func (r *Repository) ListMessages(ctx context.Context, sessionID, userID string) ([]Message, error) {
	rows, err := r.db.Query(ctx, queryListMessages, sessionID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	defer rows.Close()

	messages := []Message{}

	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}

		messages = append(messages, m)
	}

	return messages, rows.Err()
}

func (r *Repository) AddMessage(ctx context.Context, sessionID, userID, role, content string) (*Message, error) {
	var m Message

	err := r.db.QueryRow(ctx, queryAddMessage, sessionID, userID, role, content).
		Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to add chat message: %w", err)
	}

	if _, err := r.db.Exec(ctx, queryTouchSession, sessionID); err != nil {
		return nil, fmt.Errorf("failed to touch chat session: %w", err)
	}

	return &m, nil
}

func (r *Repository) CountMessages(ctx context.Context, sessionID, userID string) (int, error) {
	var count int

	if err := r.db.QueryRow(ctx, queryCountMessages, sessionID, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count chat messages: %w", err)
	}

	return count, nil
}

func scanSession(row pgx.Row) (*Session, error) {
	var s Session

	if err := row.Scan(&s.ID, &s.UserID, &s.Title, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}

	return &s, nil
}
