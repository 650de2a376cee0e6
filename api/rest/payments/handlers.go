package payments

import (
	stderrors "errors"
	"io"
	"net/http"

	"codeberg.org/scholargo/server/internal/auth"
	"codeberg.org/scholargo/server/internal/errors"
	"codeberg.org/scholargo/server/internal/logger"
	"codeberg.org/scholargo/server/internal/payments"
	"codeberg.org/scholargo/server/scholargo/transactions"
	"github.com/gin-gonic/gin"
)

// notifications are small JSON documents
const maxWebhookBody = 64 << 10

// CheckoutHandler godoc
// @Summary Start a plan purchase
// @Description Creates a hosted checkout with the configured gateway and records a pending transaction
// @Tags payments
// @Accept json
// @Produce json
// @Param request body CheckoutRequest true "Plan to buy"
// @Success 200 {object} CheckoutResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /api/v1/payments/checkout [post]
// @Security BearerAuth
func CheckoutHandler(svc Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := auth.GetIdentity(c)
		if !ok {
			errors.Unauthorized(c, "user not authenticated")
			return
		}

		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		result, err := svc.CreateTransaction(c.Request.Context(), payments.Payer{
			UserID: identity.UserID,
			Email:  identity.Email,
		}, req.PlanType)
		if err != nil {
			respondCheckoutError(c, err)
			return
		}

		c.JSON(http.StatusOK, CheckoutResponse{
			InvoiceURL: result.InvoiceURL,
			ExternalID: result.ExternalID,
			Token:      result.Token,
		})
	}
}

// HistoryHandler godoc
// @Summary List the user's payment attempts
// @Description Returns the 50 most recent transactions, newest first
// @Tags payments
// @Produce json
// @Success 200 {object} HistoryResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/payments/history [get]
// @Security BearerAuth
func HistoryHandler(history History) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "user not authenticated")
			return
		}

		txs, err := history.ListByUser(c.Request.Context(), userID)
		if err != nil {
			errors.InternalError(c, "failed to list transactions", err)
			return
		}

		c.JSON(http.StatusOK, HistoryResponse{Transactions: txs})
	}
}

// WebhookHandler godoc
// @Summary Payment gateway notification
// @Description Verifies the gateway notification, updates the transaction and grants the plan on success. Replays are acknowledged without side effects.
// @Tags payments
// @Accept json
// @Produce json
// @Success 200 {object} WebhookResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/payments/webhook [post]
func WebhookHandler(svc Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
		if err != nil {
			errors.BadRequest(c, "failed to read body", err)
			return
		}

		result, err := svc.HandleNotification(c.Request.Context(), c.Request.Header, body)
		if err != nil {
			respondWebhookError(c, err)
			return
		}

		logger.Info("payment notification processed",
			"external_id", result.ExternalID,
			"status", result.Status,
			"outcome", result.Outcome,
			"applied", result.Applied,
			"granted", result.Granted,
		)

		c.JSON(http.StatusOK, WebhookResponse{Message: "OK"})
	}
}

func respondCheckoutError(c *gin.Context, err error) {
	switch {
	case stderrors.Is(err, payments.ErrUnsupportedPlan):
		errors.BadRequest(c, "unsupported plan", err)
	case stderrors.Is(err, payments.ErrUnauthenticated):
		errors.Unauthorized(c, "user not authenticated")
	case stderrors.Is(err, payments.ErrGatewayRejectedRequest):
		errors.Upstream(c, http.StatusBadGateway, "payment gateway rejected the request", err)
	case stderrors.Is(err, transactions.ErrDuplicateExternalID):
		errors.Conflict(c, "checkout already in progress, please retry")
	default:
		errors.InternalError(c, "failed to create checkout", err)
	}
}

func respondWebhookError(c *gin.Context, err error) {
	switch {
	case stderrors.Is(err, payments.ErrInvalidSignature):
		logger.Warn("rejected payment notification", "path", c.Request.URL.Path, "ip", c.ClientIP())
		errors.InvalidSignature(c)
	case stderrors.Is(err, payments.ErrMalformedNotification):
		errors.BadRequest(c, "malformed notification", err)
	case stderrors.Is(err, transactions.ErrTransactionNotFound):
		errors.NotFound(c, "transaction")
	default:
		errors.InternalError(c, "failed to process notification", err)
	}
}
