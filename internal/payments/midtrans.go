package payments

import (
	"bytes"
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	midtransProductionURL = "https://app.midtrans.com"
	midtransSandboxURL    = "https://app.sandbox.midtrans.com"
)

type MidtransConfig struct {
	ServerKey string
	Sandbox   bool
	BaseURL   string // overrides the Snap host, used by tests
}

// Midtrans Snap checkout with SHA-512 signed notifications
type Midtrans struct {
	config     MidtransConfig
	httpClient *http.Client
}

func NewMidtrans(config MidtransConfig) *Midtrans {
	if config.BaseURL == "" {
		config.BaseURL = midtransProductionURL
		if config.Sandbox {
			config.BaseURL = midtransSandboxURL
		}
	}

	return &Midtrans{config: config, httpClient: newHTTPClient()}
}

func (m *Midtrans) Name() string {
	return "midtrans"
}

type snapRequest struct {
	TransactionDetails struct {
		OrderID     string `json:"order_id"`
		GrossAmount int64  `json:"gross_amount"`
	} `json:"transaction_details"`
	CustomerDetails struct {
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	} `json:"customer_details"`
	ItemDetails []snapItem     `json:"item_details"`
	Callbacks   *snapCallbacks `json:"callbacks,omitempty"`
}

type snapItem struct {
	ID       string `json:"id"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Name     string `json:"name"`
}

type snapCallbacks struct {
	Finish string `json:"finish"`
}

type snapResponse struct {
	Token         string   `json:"token"`
	RedirectURL   string   `json:"redirect_url"`
	ErrorMessages []string `json:"error_messages"`
}

func (m *Midtrans) CreateCheckout(ctx context.Context, r CheckoutRequest) (*Checkout, error) {
	var payload snapRequest
	payload.TransactionDetails.OrderID = r.ExternalID
	payload.TransactionDetails.GrossAmount = r.Amount
	payload.CustomerDetails.Email = r.Email
	payload.CustomerDetails.FirstName = "ScholarGo"
	payload.CustomerDetails.LastName = "User"
	payload.ItemDetails = []snapItem{{ID: r.PlanType, Price: r.Amount, Quantity: 1, Name: r.ItemName}}

	if r.SuccessURL != "" {
		payload.Callbacks = &snapCallbacks{Finish: r.SuccessURL}
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.config.BaseURL+"/snap/v1/transactions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(m.config.ServerKey, "")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close() //nolint:errcheck // response body

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096)) //nolint:errcheck // best effort error body
		return nil, fmt.Errorf("%w: midtrans status %d: %s", ErrGatewayRejectedRequest, resp.StatusCode, string(body))
	}

	var out snapResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if out.RedirectURL == "" {
		return nil, fmt.Errorf("%w: midtrans returned no redirect_url: %s", ErrGatewayRejectedRequest, strings.Join(out.ErrorMessages, "; "))
	}

	return &Checkout{URL: out.RedirectURL, Token: out.Token}, nil
}

type midtransNotification struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	SignatureKey      string `json:"signature_key"`
}

// verifies the signature and decodes a Midtrans HTTP notification
func (m *Midtrans) ParseNotification(_ http.Header, body []byte) (*Notification, error) {
	var n midtransNotification
	if err := json.Unmarshal(body, &n); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedNotification, err)
	}

	if n.OrderID == "" || n.TransactionStatus == "" {
		return nil, fmt.Errorf("%w: order_id and transaction_status are required", ErrMalformedNotification)
	}

	expected := MidtransSignature(n.OrderID, n.StatusCode, n.GrossAmount, m.config.ServerKey)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(strings.ToLower(n.SignatureKey))) != 1 {
		return nil, ErrInvalidSignature
	}

	status := strings.ToLower(n.TransactionStatus)

	return &Notification{
		ExternalID:  n.OrderID,
		Status:      status,
		FraudStatus: strings.ToLower(n.FraudStatus),
		Amount:      n.GrossAmount,
		Outcome:     MapOutcome(status, n.FraudStatus),
	}, nil
}

// hex(SHA-512(order_id + status_code + gross_amount + server_key))
func MidtransSignature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}
