package payments

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"codeberg.org/scholargo/server/internal/logger"
	"codeberg.org/scholargo/server/scholargo/profiles"
	"codeberg.org/scholargo/server/scholargo/transactions"
)

const (
	PlusPrice    int64 = 49000
	PlusDuration       = 30 * 24 * time.Hour
	itemName           = "ScholarGo Plus Subscription"
)

// implemented by transactions.Repository
type TransactionStore interface {
	Create(ctx context.Context, params transactions.CreateParams) (*transactions.Transaction, error)
	FindByExternalID(ctx context.Context, externalID string) (*transactions.Transaction, error)
	Transition(ctx context.Context, externalID, status string, final bool) (bool, error)
	MarkGranted(ctx context.Context, externalID string, at time.Time) (bool, error)
}

// implemented by profiles.Repository
type PlanGranter interface {
	GrantPlan(ctx context.Context, userID, planType string, validUntil time.Time) error
}

type Recorder interface {
	ObserveWebhook(gateway, outcome string)
}

type Payer struct {
	UserID string
	Email  string
}

type CheckoutResult struct {
	InvoiceURL string `json:"invoice_url"`
	ExternalID string `json:"external_id"`
	Token      string `json:"token,omitempty"`
}

// what a notification did to the local state
type Reconciliation struct {
	ExternalID string `json:"external_id"`
	Status     string `json:"status"`
	Outcome    string `json:"outcome"`
	Applied    bool   `json:"applied"`
	Granted    bool   `json:"granted"`
}

type Config struct {
	AppBaseURL string
	Now        func() time.Time
}

// creates checkouts and reconciles gateway notifications into plan grants
type Service struct {
	gateway  Gateway
	store    TransactionStore
	granter  PlanGranter
	recorder Recorder
	config   Config
}

func NewService(gateway Gateway, store TransactionStore, granter PlanGranter, recorder Recorder, config Config) *Service {
	if config.Now == nil {
		config.Now = time.Now
	}

	return &Service{
		gateway:  gateway,
		store:    store,
		granter:  granter,
		recorder: recorder,
		config:   config,
	}
}

func (s *Service) Gateway() string {
	return s.gateway.Name()
}

func planPrice(planType string) (int64, error) {
	if planType == profiles.PlanPlus {
		return PlusPrice, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnsupportedPlan, planType)
}

func shortID(userID string) string {
	if len(userID) > 8 {
		return userID[:8]
	}

	return userID
}

// opens a hosted checkout and records it as a pending transaction
func (s *Service) CreateTransaction(ctx context.Context, payer Payer, planType string) (*CheckoutResult, error) {
	if payer.UserID == "" {
		return nil, ErrUnauthenticated
	}

	amount, err := planPrice(planType)
	if err != nil {
		return nil, err
	}

	email := payer.Email
	if email == "" {
		email = "user_" + shortID(payer.UserID) + "@placeholder.scholargo.com"
	}

	externalID := "ORDER-" + shortID(payer.UserID) + "-" + strconv.FormatInt(s.config.Now().UnixMilli(), 10)

	checkout, err := s.gateway.CreateCheckout(ctx, CheckoutRequest{
		ExternalID: externalID,
		PlanType:   planType,
		Amount:     amount,
		Email:      email,
		ItemName:   itemName,
		SuccessURL: s.config.AppBaseURL + "/?payment=success",
		FailureURL: s.config.AppBaseURL + "/?payment=failed",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s checkout: %w", s.gateway.Name(), err)
	}

	_, err = s.store.Create(ctx, transactions.CreateParams{
		ExternalID:  externalID,
		UserID:      payer.UserID,
		PlanType:    planType,
		Amount:      amount,
		Gateway:     s.gateway.Name(),
		PaymentLink: checkout.URL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}

	logger.Info("checkout created",
		"external_id", externalID,
		"user_id", payer.UserID,
		"gateway", s.gateway.Name(),
	)

	return &CheckoutResult{InvoiceURL: checkout.URL, ExternalID: externalID, Token: checkout.Token}, nil
}

// authenticates a gateway callback and applies it; replays are no-ops
func (s *Service) HandleNotification(ctx context.Context, header http.Header, body []byte) (*Reconciliation, error) {
	n, err := s.gateway.ParseNotification(header, body)
	if err != nil {
		s.observe(webhookOutcome(err))
		return nil, err
	}

	tx, err := s.store.FindByExternalID(ctx, n.ExternalID)
	if err != nil {
		s.observe(webhookOutcome(err))
		return nil, err
	}

	result := &Reconciliation{
		ExternalID: n.ExternalID,
		Status:     n.Status,
		Outcome:    n.Outcome.String(),
	}

	applied, err := s.store.Transition(ctx, n.ExternalID, n.Status, n.Outcome.Final())
	if err != nil {
		s.observe("error")
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	result.Applied = applied

	// a replay of the same success still finishes a grant that failed midway
	replay := !applied && tx.Final && tx.Status == n.Status
	if n.Outcome == OutcomeSuccess && (applied || replay) && tx.GrantedAt == nil {
		now := s.config.Now()

		if err := s.granter.GrantPlan(ctx, tx.UserID, profiles.PlanPlus, now.Add(PlusDuration)); err != nil {
			s.observe("error")
			return nil, fmt.Errorf("failed to grant plan: %w", err)
		}

		granted, err := s.store.MarkGranted(ctx, n.ExternalID, now)
		if err != nil {
			s.observe("error")
			return nil, fmt.Errorf("failed to mark grant: %w", err)
		}

		result.Granted = granted

		logger.Info("plan granted",
			"external_id", n.ExternalID,
			"user_id", tx.UserID,
			"valid_until", now.Add(PlusDuration),
		)
	}

	if !applied {
		s.observe("replay")
	} else {
		s.observe(n.Outcome.String())
	}

	return result, nil
}

func webhookOutcome(err error) string {
	switch {
	case errors.Is(err, ErrInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, ErrMalformedNotification):
		return "malformed"
	case errors.Is(err, transactions.ErrTransactionNotFound):
		return "not_found"
	}

	return "error"
}

func (s *Service) observe(outcome string) {
	if s.recorder != nil {
		s.recorder.ObserveWebhook(s.gateway.Name(), outcome)
	}
}
