package payments

import (
	"context"
	"net/http"

	"codeberg.org/scholargo/server/internal/payments"
	"codeberg.org/scholargo/server/scholargo/transactions"
)

// implemented by payments.Service
type Service interface {
	CreateTransaction(ctx context.Context, payer payments.Payer, planType string) (*payments.CheckoutResult, error)
	HandleNotification(ctx context.Context, header http.Header, body []byte) (*payments.Reconciliation, error)
}

// implemented by transactions.Repository
type History interface {
	ListByUser(ctx context.Context, userID string) ([]transactions.Transaction, error)
}

type CheckoutRequest struct {
	PlanType string `json:"plan_type" binding:"required" example:"plus"`
}

type CheckoutResponse struct {
	InvoiceURL string `json:"invoice_url"`
	ExternalID string `json:"external_id"`
	Token      string `json:"token,omitempty"`
}

type WebhookResponse struct {
	Message string `json:"message"`
}

type HistoryResponse struct {
	Transactions []transactions.Transaction `json:"transactions"`
}
