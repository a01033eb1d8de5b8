package transaction

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a transaction.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Terminal reports whether a status ends the transaction lifecycle.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Transaction represents a team transaction record.
// CreatedAt is nullable: records imported from the legacy store can lack a
// creation timestamp, and a missing timestamp sorts as oldest.
type Transaction struct {
	ID                  uuid.UUID       `db:"id"`
	TransactionID       string          `db:"transaction_id"`
	TeamID              uuid.UUID       `db:"team_id"`
	CustomerUsername    string          `db:"customer_username"`
	WebsiteID           uuid.UUID       `db:"website_id"`
	WebsiteName         string          `db:"website_name"`
	BankName            string          `db:"bank_name"`
	AccountNumber       string          `db:"account_number"`
	RealName            string          `db:"real_name"`
	Amount              decimal.Decimal `db:"amount"`
	BalanceBefore       decimal.Decimal `db:"balance_before"`
	BalanceAfter        decimal.Decimal `db:"balance_after"`
	Status              Status          `db:"status"`
	Type                string          `db:"type"`
	Note                *string         `db:"note"`
	CreatedAt           *time.Time      `db:"created_at"`
	UpdatedAt           time.Time       `db:"updated_at"`
	CreatedBy           string          `db:"created_by"`
	LastModifiedBy      *string         `db:"last_modified_by"`
	LastModifiedByEmail *string         `db:"last_modified_by_email"`
	LastModifiedAt      *time.Time      `db:"last_modified_at"`
}

// StatusUpdate is the input for transitioning a transaction's status.
type StatusUpdate struct {
	Status        Status
	Note          *string
	ModifiedBy    string
	ModifiedEmail *string
}

// ITransactionTable defines the interface for transaction storage operations.
// This abstraction allows swapping the implementation (e.g. Bob) without changing callers.
//
//go:generate mockery --name ITransactionTable --output mock_ITransactionTable.go
type ITransactionTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	ListPendingByTeam(ctx context.Context, teamID uuid.UUID) ([]*Transaction, error)
	ClaimPending(ctx context.Context, id uuid.UUID) (*Transaction, error)
}
