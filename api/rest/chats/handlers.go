package chats

import (
	stderrors "errors"
	"net/http"
	"strings"

	"codeberg.org/scholargo/server/internal/auth"
	"codeberg.org/scholargo/server/internal/errors"
	"codeberg.org/scholargo/server/scholargo/chats"
	"github.com/gin-gonic/gin"
)

// ListSessionsHandler godoc
// @Summary List chat sessions
// @Description Lists the authenticated user's chat sessions, most recently active first
// @Tags chats
// @Produce json
// @Success 200 {object} SessionsResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/chats [get]
// @Security BearerAuth
func ListSessionsHandler(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "user not authenticated")
			return
		}

		sessions, err := store.ListSessions(c.Request.Context(), userID)
		if err != nil {
			errors.InternalError(c, "failed to list chat sessions", err)
			return
		}

		c.JSON(http.StatusOK, SessionsResponse{Sessions: sessions})
	}
}

// CreateSessionHandler godoc
// @Summary Create a chat session
// @Tags chats
// @Accept json
// @Produce json
// @Param request body CreateSessionRequest false "Optional title"
// @Success 201 {object} chats.Session
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/chats [post]
// @Security BearerAuth
func CreateSessionHandler(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "user not authenticated")
			return
		}

		var req CreateSessionRequest
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				errors.ValidationError(c, err)
				return
			}
		}

		title := strings.TrimSpace(req.Title)
		if title == "" {
			title = chats.DefaultTitle
		}

		session, err := store.CreateSession(c.Request.Context(), userID, title)
		if err != nil {
			errors.InternalError(c, "failed to create chat session", err)
			return
		}

		c.JSON(http.StatusCreated, session)
	}
}

// RenameSessionHandler godoc
// @Summary Rename a chat session
// @Tags chats
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body RenameSessionRequest true "New title"
// @Success 200 {object} chats.Session
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/chats/{id} [patch]
// @Security BearerAuth
func RenameSessionHandler(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "user not authenticated")
			return
		}

		sessionID, ok := errors.ValidatePathUUID(c, "id")
		if !ok {
			return
		}

		var req RenameSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		session, err := store.RenameSession(c.Request.Context(), sessionID, userID, strings.TrimSpace(req.Title))
		if err != nil {
			respondStoreError(c, "failed to rename chat session", err)
			return
		}

		c.JSON(http.StatusOK, session)
	}
}

// DeleteSessionHandler godoc
// @Summary Delete a chat session and its messages
// @Tags chats
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/chats/{id} [delete]
// @Security BearerAuth
func DeleteSessionHandler(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "user not authenticated")
			return
		}

		sessionID, ok := errors.ValidatePathUUID(c, "id")
		if !ok {
			return
		}

		if err := store.DeleteSession(c.Request.Context(), sessionID, userID); err != nil {
			respondStoreError(c, "failed to delete chat session", err)
			return
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "chat session deleted"})
	}
}

// ListMessagesHandler godoc
// @Summary List a session's messages
// @Description Messages are returned oldest first
// @Tags chats
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} MessagesResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/chats/{id}/messages [get]
// @Security BearerAuth
func ListMessagesHandler(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "user not authenticated")
			return
		}

		sessionID, ok := errors.ValidatePathUUID(c, "id")
		if !ok {
			return
		}

		ctx := c.Request.Context()

		// an empty list is ambiguous between "no messages" and "not yours"
		if _, err := store.GetSession(ctx, sessionID, userID); err != nil {
			respondStoreError(c, "failed to load chat session", err)
			return
		}

		messages, err := store.ListMessages(ctx, sessionID, userID)
		if err != nil {
			errors.InternalError(c, "failed to list chat messages", err)
			return
		}

		c.JSON(http.StatusOK, MessagesResponse{Messages: messages})
	}
}

// AddMessageHandler godoc
// @Summary Append a message to a session
// @Tags chats
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body AddMessageRequest true "Message"
// @Success 201 {object} chats.Message
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/chats/{id}/messages [post]
// @Security BearerAuth
func AddMessageHandler(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "user not authenticated")
			return
		}

		sessionID, ok := errors.ValidatePathUUID(c, "id")
		if !ok {
			return
		}

		var req AddMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		message, err := store.AddMessage(c.Request.Context(), sessionID, userID, req.Role, req.Content)
		if err != nil {
			respondStoreError(c, "failed to add chat message", err)
			return
		}

		c.JSON(http.StatusCreated, message)
	}
}

func respondStoreError(c *gin.Context, message string, err error) {
	if stderrors.Is(err, chats.ErrSessionNotFound) {
		errors.NotFound(c, "chat session")
		return
	}

	errors.InternalError(c, message, err)
}
