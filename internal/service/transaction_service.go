package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/banlak-networks/balance-server/internal/config"
	"github.com/banlak-networks/balance-server/internal/storage"
)

// TransactionService handles transaction claim logic.
type TransactionService struct {
	storage          *storage.Storage
	storeTimeout     time.Duration
	maxClaimAttempts int
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage, env *config.Config) *TransactionService {
	return &TransactionService{
		storage:          store,
		storeTimeout:     env.StoreTimeout,
		maxClaimAttempts: env.ClaimMaxAttempts,
	}
}

// ClaimOldestPending resolves the credential to a team, selects the team's
// oldest pending transaction, and transitions it to in-progress via a
// conditional write. Candidates lost to racing claimers are skipped and the
// next-oldest is tried, up to maxClaimAttempts. A nil Transaction in the
// result means the pending set was (or became) empty.
func (s *TransactionService) ClaimOldestPending(ctx context.Context, apiKey string) (*ClaimResult, error) {
	team, err := resolveTeamByAPIKey(ctx, s.storage, s.storeTimeout, apiKey)
	if err != nil {
		return nil, err
	}

	candidates, err := s.listPending(ctx, team)
	if err != nil {
		return nil, err
	}

	for i, candidate := range candidates {
		if i == s.maxClaimAttempts {
			return nil, ErrClaimContention
		}

		claimed, err := s.claimOne(ctx, candidate.ID)
		if err != nil {
			return nil, err
		}
		if claimed == nil {
			// Another caller won this candidate between our read and
			// write. Move on to the next-oldest.
			continue
		}

		return &ClaimResult{Team: team, Transaction: claimed}, nil
	}

	return &ClaimResult{Team: team}, nil
}

func (s *TransactionService) listPending(ctx context.Context, team Team) ([]*Transaction, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	rows, err := s.storage.Transactions.ListPendingByTeam(storeCtx, team.ID)
	if err != nil {
		return nil, storeUnavailable("transactions.ListPendingByTeam", err)
	}

	converted := make([]*Transaction, len(rows))
	for i, row := range rows {
		converted[i] = transactionFromStorage(row)
	}
	return converted, nil
}

// claimOne issues the conditional pending→in-progress write for one
// candidate. Returns nil when the row was no longer pending at write time.
func (s *TransactionService) claimOne(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	row, err := s.storage.Transactions.ClaimPending(storeCtx, id)
	if err != nil {
		return nil, storeUnavailable("transactions.ClaimPending", err)
	}
	if row == nil {
		return nil, nil
	}
	return transactionFromStorage(row), nil
}
