package team

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/banlak-networks/balance-server/internal/handlers/httperr"
	"github.com/banlak-networks/balance-server/internal/service"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID                  string  `json:"id" doc:"Transaction UUID"`
	TransactionID       string  `json:"transactionId" doc:"External transaction reference"`
	CustomerUsername    string  `json:"customerUsername" doc:"Customer username"`
	WebsiteName         string  `json:"websiteName" doc:"Website display name"`
	WebsiteID           string  `json:"websiteId" doc:"Website UUID"`
	BankName            string  `json:"bankName" doc:"Bank name"`
	AccountNumber       string  `json:"accountNumber" doc:"Bank account number"`
	RealName            string  `json:"realName" doc:"Account holder real name"`
	Amount              string  `json:"amount" doc:"Decimal amount"`
	BalanceBefore       string  `json:"balanceBefore" doc:"Decimal balance before the transaction"`
	BalanceAfter        string  `json:"balanceAfter" doc:"Decimal balance after the transaction"`
	Status              string  `json:"status" doc:"Transaction status"`
	Type                string  `json:"type" doc:"Transaction type"`
	Note                *string `json:"note" doc:"Optional note"`
	CreatedAt           *string `json:"createdAt" doc:"RFC3339 creation time, null when unknown"`
	UpdatedAt           string  `json:"updatedAt" doc:"RFC3339 last update time"`
	CreatedBy           string  `json:"createdBy" doc:"Creator identity"`
	LastModifiedBy      *string `json:"lastModifiedBy" doc:"Last modifier identity"`
	LastModifiedByEmail *string `json:"lastModifiedByEmail" doc:"Last modifier email"`
	LastModifiedAt      *string `json:"lastModifiedAt" doc:"RFC3339 last modification time"`
}

func transactionToAPI(tx *service.Transaction) *Transaction {
	return &Transaction{
		ID:                  tx.ID.String(),
		TransactionID:       tx.TransactionID,
		CustomerUsername:    tx.CustomerUsername,
		WebsiteName:         tx.WebsiteName,
		WebsiteID:           tx.WebsiteID.String(),
		BankName:            tx.BankName,
		AccountNumber:       tx.AccountNumber,
		RealName:            tx.RealName,
		Amount:              tx.Amount.String(),
		BalanceBefore:       tx.BalanceBefore.String(),
		BalanceAfter:        tx.BalanceAfter.String(),
		Status:              string(tx.Status),
		Type:                tx.Type,
		Note:                tx.Note,
		CreatedAt:           formatTimePtr(tx.CreatedAt),
		UpdatedAt:           tx.UpdatedAt.Format(time.RFC3339),
		CreatedBy:           tx.CreatedBy,
		LastModifiedBy:      tx.LastModifiedBy,
		LastModifiedByEmail: tx.LastModifiedByEmail,
		LastModifiedAt:      formatTimePtr(tx.LastModifiedAt),
	}
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}

// bearerToken extracts the API key from an Authorization header value.
func bearerToken(header string) (string, bool) {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

func errMissingCredential() huma.StatusError {
	return httperr.New(http.StatusUnauthorized, "missing or malformed Authorization header")
}

// serviceError maps a service-layer error to its wire status. A 503 after a
// claim attempt means unknown outcome: the caller must reconcile by
// re-querying, not assume the claim did not happen.
func serviceError(err error) huma.StatusError {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return httperr.New(http.StatusUnauthorized, "invalid or unknown team API key")
	case errors.Is(err, service.ErrStoreUnavailable), errors.Is(err, service.ErrClaimContention):
		return httperr.New(http.StatusServiceUnavailable,
			"transaction store unavailable; verify the database is reachable and read permissions are granted", err)
	default:
		return httperr.New(http.StatusInternalServerError, "internal server error", err)
	}
}
