package actions

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"

	"github.com/banlak-networks/balance-server/internal/storage"
	"github.com/banlak-networks/balance-server/internal/storage/transaction"
)

var (
	// ErrTransactionNotFound covers both a missing row and a row owned by a
	// different team, so callers cannot probe foreign transactions.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidTransition means the requested status change is not allowed
	// from the transaction's current status.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// UpdateTransactionStatus moves an in-progress transaction to a terminal
// status. The row is locked for the duration of the check-then-write so the
// transition cannot race a concurrent modification.
type UpdateTransactionStatus struct {
	TeamID        uuid.UUID
	TransactionID uuid.UUID
	NewStatus     transaction.Status
	Note          *string

	// Updated carries the post-transition row back to the caller after a
	// successful Perform.
	Updated *transaction.Transaction

	IAction
}

func (a *UpdateTransactionStatus) Perform(ctx context.Context, writer *storage.Writer) error {
	if !a.NewStatus.Terminal() {
		return ErrInvalidTransition
	}

	row, err := writer.Transaction.FindByIDForUpdate(ctx, a.TransactionID)
	if err != nil {
		return err
	}
	if row == nil || row.TeamID != a.TeamID {
		return ErrTransactionNotFound
	}
	if row.Status != transaction.StatusInProgress {
		return ErrInvalidTransition
	}

	updated, err := writer.Transaction.UpdateStatus(ctx, a.TransactionID, &transaction.StatusUpdate{
		Status:     a.NewStatus,
		Note:       a.Note,
		ModifiedBy: "team:" + a.TeamID.String(),
	})
	if err != nil {
		return err
	}

	a.Updated = updated
	return nil
}
