package payments

import (
	"context"
	"errors"
	"net/http"
	"time"
)

var (
	ErrInvalidSignature       = errors.New("invalid notification signature")
	ErrMalformedNotification  = errors.New("malformed notification")
	ErrUnauthenticated        = errors.New("unauthenticated")
	ErrUnsupportedPlan        = errors.New("unsupported plan")
	ErrGatewayRejectedRequest = errors.New("gateway rejected request")
)

// a hosted payment provider
type Gateway interface {
	Name() string
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error)
	ParseNotification(header http.Header, body []byte) (*Notification, error)
}

type CheckoutRequest struct {
	ExternalID string
	PlanType   string
	Amount     int64
	Email      string
	ItemName   string
	SuccessURL string
	FailureURL string
}

// hosted checkout returned by the gateway
type Checkout struct {
	URL   string
	Token string
}

// authenticated gateway callback
type Notification struct {
	ExternalID  string
	Status      string // gateway vocabulary, lower-cased
	FraudStatus string
	Amount      string
	Outcome     Outcome
}

// what a gateway status means for the subscription
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeSuccess
	OutcomeFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	}

	return "pending"
}

// success and failure never change again
func (o Outcome) Final() bool {
	return o != OutcomePending
}

// shared outbound client for gateway API calls
func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 5,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}
}
