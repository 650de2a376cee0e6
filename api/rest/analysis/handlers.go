package analysis

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"

	"codeberg.org/scholargo/server/internal/advisor"
	"codeberg.org/scholargo/server/internal/auth"
	"codeberg.org/scholargo/server/internal/errors"
	"codeberg.org/scholargo/server/internal/llm"
	"codeberg.org/scholargo/server/internal/logger"
	"codeberg.org/scholargo/server/scholargo/chats"
	"codeberg.org/scholargo/server/scholargo/profiles"
	"codeberg.org/scholargo/server/scholargo/quota"
	"github.com/gin-gonic/gin"
)

// AnalyzeHandler godoc
// @Summary Analyze an essay
// @Description Runs the two-phase essay analysis. Charged to deep_review when an instruction is given, pdf_analysis otherwise.
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body AnalyzeRequest true "Analysis request"
// @Success 200 {object} AnalyzeResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 402 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Failure 504 {object} errors.ErrorResponse
// @Router /api/v1/analyze [post]
// @Security BearerAuth
func AnalyzeHandler(adv Advisor, ledger Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AnalyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		if !requireInput(c, "text or instruction", req.Text, req.Instruction) {
			return
		}

		feature := profiles.FeaturePDFAnalysis
		if req.Instruction != "" {
			feature = profiles.FeatureDeepReview
		}

		var result *advisor.AnalysisResult

		decision, ok := metered(c, ledger, feature, req.Provider, func(ctx context.Context, provider llm.Provider) error {
			var err error
			result, err = adv.RunAnalysis(ctx, provider, advisor.AnalysisInput{
				Text:        req.Text,
				Instruction: req.Instruction,
				Context:     req.Context,
			})
			return err
		})
		if !ok {
			return
		}

		c.JSON(http.StatusOK, AnalyzeResponse{Result: result, Quota: decision})
	}
}

// ChatHandler godoc
// @Summary Chat with the essay advisor
// @Description Sends a message with history and document content. When session_id is given the exchange is saved to that session.
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body ChatRequest true "Chat request"
// @Success 200 {object} ChatResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 402 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Failure 504 {object} errors.ErrorResponse
// @Router /api/v1/chat [post]
// @Security BearerAuth
func ChatHandler(adv Advisor, ledger Ledger, store ChatStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		if !requireInput(c, "message", req.Message) {
			return
		}

		var reply string

		decision, ok := metered(c, ledger, profiles.FeatureChat, req.Provider, func(ctx context.Context, provider llm.Provider) error {
			var err error
			reply, err = adv.SendChat(ctx, provider, advisor.ChatInput{
				Message:         req.Message,
				History:         req.History,
				DocumentContent: req.DocumentContent,
			})
			return err
		})
		if !ok {
			return
		}

		if req.SessionID != "" && store != nil {
			userID, _ := auth.GetUserID(c)
			saveExchange(c.Request.Context(), store, req.SessionID, userID, req.Message, reply)
		}

		c.JSON(http.StatusOK, ChatResponse{Result: reply, Quota: decision})
	}
}

// InsightHandler godoc
// @Summary Get an insight card for a paragraph
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body InsightRequest true "Insight request"
// @Success 200 {object} InsightResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 402 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Failure 504 {object} errors.ErrorResponse
// @Router /api/v1/insight [post]
// @Security BearerAuth
func InsightHandler(adv Advisor, ledger Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req InsightRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		if !requireInput(c, "text", req.Text) {
			return
		}

		var insight string

		_, ok := metered(c, ledger, profiles.FeatureDeepReview, req.Provider, func(ctx context.Context, provider llm.Provider) error {
			var err error
			insight, err = adv.GetInsight(ctx, provider, req.Text)
			return err
		})
		if !ok {
			return
		}

		c.JSON(http.StatusOK, InsightResponse{Result: insight})
	}
}

// ParseResumeHandler godoc
// @Summary Extract a structured profile from resume text
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body ResumeRequest true "Resume text"
// @Success 200 {object} ResumeResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 402 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Failure 504 {object} errors.ErrorResponse
// @Router /api/v1/resume/parse [post]
// @Security BearerAuth
func ParseResumeHandler(adv Advisor, ledger Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ResumeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		if !requireInput(c, "text", req.Text) {
			return
		}

		var profile *advisor.ResumeProfile

		_, ok := metered(c, ledger, profiles.FeaturePDFAnalysis, req.Provider, func(ctx context.Context, provider llm.Provider) error {
			var err error
			profile, err = adv.ParseResume(ctx, provider, req.Text)
			return err
		})
		if !ok {
			return
		}

		c.JSON(http.StatusOK, ResumeResponse{Result: profile})
	}
}

// checks quota, runs the call and charges one use only when it succeeded.
// on false the response has already been written.
func metered(c *gin.Context, ledger Ledger, feature profiles.Feature, providerName string, call func(context.Context, llm.Provider) error) (*quota.Decision, bool) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, "user not authenticated")
		return nil, false
	}

	provider, err := llm.ParseProvider(providerName)
	if err != nil {
		errors.BadRequest(c, "unknown provider", err)
		return nil, false
	}

	ctx := c.Request.Context()

	decision, err := ledger.CheckQuota(ctx, userID, feature)
	if err != nil {
		errors.InternalError(c, "failed to check quota", err)
		return nil, false
	}

	if !decision.Allowed {
		errors.QuotaExceeded(c, "monthly "+string(feature)+" limit reached for the "+decision.Plan+" plan")
		return nil, false
	}

	if err := call(ctx, provider); err != nil {
		respondCallError(c, err)
		return nil, false
	}

	// a client that disconnects after the reply is still charged
	used, err := ledger.IncrementUsage(context.WithoutCancel(ctx), userID, feature)
	if err != nil {
		// the reply is returned even when the counter write fails
		logger.WarnErr(err, "failed to record usage", "user_id", userID, "feature", feature)
		return decision, true
	}

	charged := *decision
	charged.Used = used
	charged.Remaining = max(0, decision.Limit-used)
	charged.Allowed = used < decision.Limit

	return &charged, true
}

// on false a 400 has been written because every value is blank
func requireInput(c *gin.Context, field string, values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}

	errors.BadRequest(c, advisor.ErrEmptyInput.Error()+": "+field, nil)
	return false
}

func respondCallError(c *gin.Context, err error) {
	var apiErr *llm.APIError

	switch {
	case stderrors.Is(err, advisor.ErrCancelled):
		errors.Cancelled(c)
	case stderrors.Is(err, advisor.ErrTimeout):
		errors.Timeout(c, "")
	case stderrors.Is(err, advisor.ErrEmptyInput):
		errors.BadRequest(c, err.Error(), nil)
	case stderrors.Is(err, llm.ErrUnknownProvider):
		errors.BadRequest(c, "provider is not configured", err)
	case stderrors.As(err, &apiErr):
		errors.Upstream(c, apiErr.StatusCode, string(apiErr.Provider)+" request failed", err)
	case stderrors.Is(err, advisor.ErrEmptyOutput), stderrors.Is(err, advisor.ErrInvalidReply):
		errors.Upstream(c, http.StatusBadGateway, "provider returned an unusable reply", err)
	default:
		errors.InternalError(c, "failed to process request", err)
	}
}

// persists both turns; the first exchange of a session also names it
func saveExchange(ctx context.Context, store ChatStore, sessionID, userID, message, reply string) {
	count, err := store.CountMessages(ctx, sessionID, userID)
	if err != nil {
		logger.WarnErr(err, "failed to count chat messages", "session_id", sessionID)
		return
	}

	if _, err := store.AddMessage(ctx, sessionID, userID, chats.RoleUser, message); err != nil {
		logger.WarnErr(err, "failed to save user message", "session_id", sessionID)
		return
	}

	if _, err := store.AddMessage(ctx, sessionID, userID, chats.RoleAssistant, reply); err != nil {
		logger.WarnErr(err, "failed to save assistant message", "session_id", sessionID)
		return
	}

	if count > 0 {
		return
	}

	if _, err := store.RenameSession(ctx, sessionID, userID, "Upload: "+chats.SmartTitle(message)); err != nil {
		logger.WarnErr(err, "failed to rename chat session", "session_id", sessionID)
	}
}
