package chats

const (
	queryCreateSession = `
		INSERT INTO chat_sessions (user_id, title)
		VALUES ($1, $2)
		RETURNING id, user_id, title, created_at, updated_at
	`

	queryGetSession = `
		SELECT id, user_id, title, created_at, updated_at
		FROM chat_sessions
		WHERE id = $1 AND user_id = $2
	`

	queryListSessions = `
		SELECT id, user_id, title, created_at, updated_at
		FROM chat_sessions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	queryRenameSession = `
		UPDATE chat_sessions
		SET title = $3, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, title, created_at, updated_at
	`

	queryDeleteSession = `
		DELETE FROM chat_sessions
		WHERE id = $1 AND user_id = $2
	`

	queryListMessages = `
		SELECT m.id, m.session_id, m.role, m.content, m.created_at
		FROM chat_messages m
		JOIN chat_sessions s ON s.id = m.session_id
		WHERE m.session_id = $1 AND s.user_id = $2
		ORDER BY m.created_at ASC
	`

	// the select yields no row when the caller does not own the session
	queryAddMessage = `
		INSERT INTO chat_messages (session_id, role, content)
		SELECT s.id, $3, $4
		FROM chat_sessions s
		WHERE s.id = $1 AND s.user_id = $2
		RETURNING id, session_id, role, content, created_at
	`

	queryTouchSession = `
		UPDATE chat_sessions
		SET updated_at = NOW()
		WHERE id = $1
	`

	queryCountMessages = `
		SELECT COUNT(*)
		FROM chat_messages m
		JOIN chat_sessions s ON s.id = m.session_id
		WHERE m.session_id = $1 AND s.user_id = $2
	`
)
