package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/banlak-networks/balance-server/internal/config"
	"github.com/banlak-networks/balance-server/internal/storage"
)

// Team represents a team in the service layer. The stored API key is
// deliberately not carried here.
type Team struct {
	ID   uuid.UUID
	Name string
}

// TeamService handles team credential resolution.
type TeamService struct {
	storage      *storage.Storage
	storeTimeout time.Duration
}

// NewTeamService creates a new TeamService.
func NewTeamService(store *storage.Storage, env *config.Config) *TeamService {
	return &TeamService{storage: store, storeTimeout: env.StoreTimeout}
}

// ResolveByAPIKey resolves an opaque bearer credential to a team.
// An empty or unknown credential raises ErrUnauthorized without touching
// any other collection.
func (s *TeamService) ResolveByAPIKey(ctx context.Context, apiKey string) (Team, error) {
	return resolveTeamByAPIKey(ctx, s.storage, s.storeTimeout, apiKey)
}

func resolveTeamByAPIKey(ctx context.Context, store *storage.Storage, timeout time.Duration, apiKey string) (Team, error) {
	if apiKey == "" {
		return Team{}, ErrUnauthorized
	}

	storeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	row, err := store.Teams.FindByAPIKey(storeCtx, apiKey)
	if err != nil {
		return Team{}, storeUnavailable("teams.FindByAPIKey", err)
	}
	if row == nil {
		return Team{}, ErrUnauthorized
	}

	return Team{ID: row.ID, Name: row.Name}, nil
}

func storeUnavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
}
