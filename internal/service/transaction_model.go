package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/banlak-networks/balance-server/internal/storage/transaction"
)

// Transaction represents a transaction in the service layer.
type Transaction struct {
	ID                  uuid.UUID
	TransactionID       string
	TeamID              uuid.UUID
	CustomerUsername    string
	WebsiteID           uuid.UUID
	WebsiteName         string
	BankName            string
	AccountNumber       string
	RealName            string
	Amount              decimal.Decimal
	BalanceBefore       decimal.Decimal
	BalanceAfter        decimal.Decimal
	Status              transaction.Status
	Type                string
	Note                *string
	CreatedAt           *time.Time
	UpdatedAt           time.Time
	CreatedBy           string
	LastModifiedBy      *string
	LastModifiedByEmail *string
	LastModifiedAt      *time.Time
}

// ClaimResult is the outcome of a claim call. Transaction is nil when the
// team had no pending transaction left, which is a success, not an error.
type ClaimResult struct {
	Team        Team
	Transaction *Transaction
}

func transactionFromStorage(row *transaction.Transaction) *Transaction {
	return &Transaction{
		ID:                  row.ID,
		TransactionID:       row.TransactionID,
		TeamID:              row.TeamID,
		CustomerUsername:    row.CustomerUsername,
		WebsiteID:           row.WebsiteID,
		WebsiteName:         row.WebsiteName,
		BankName:            row.BankName,
		AccountNumber:       row.AccountNumber,
		RealName:            row.RealName,
		Amount:              row.Amount,
		BalanceBefore:       row.BalanceBefore,
		BalanceAfter:        row.BalanceAfter,
		Status:              row.Status,
		Type:                row.Type,
		Note:                row.Note,
		CreatedAt:           row.CreatedAt,
		UpdatedAt:           row.UpdatedAt,
		CreatedBy:           row.CreatedBy,
		LastModifiedBy:      row.LastModifiedBy,
		LastModifiedByEmail: row.LastModifiedByEmail,
		LastModifiedAt:      row.LastModifiedAt,
	}
}
