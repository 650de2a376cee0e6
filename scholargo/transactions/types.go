package transactions

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrDuplicateExternalID = errors.New("transaction external id already exists")
)

const StatusPending = "pending"

// handles transaction database operations
type Repository struct {
	db *pgxpool.Pool
}

// one payment attempt
type Transaction struct {
	ID          string     `json:"id"`
	ExternalID  string     `json:"external_id"`
	UserID      string     `json:"user_id"`
	PlanType    string     `json:"plan_type"`
	Amount      int64      `json:"amount"`
	Status      string     `json:"status"`
	Final       bool       `json:"final"`
	Gateway     string     `json:"gateway"`
	PaymentLink string     `json:"payment_link"`
	GrantedAt   *time.Time `json:"granted_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type CreateParams struct {
	ExternalID  string
	UserID      string
	PlanType    string
	Amount      int64
	Gateway     string
	PaymentLink string
}
