package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/banlak-networks/balance-server/internal/config"
	"github.com/banlak-networks/balance-server/internal/storage"
)

// Website represents a website in the service layer.
type Website struct {
	ID     uuid.UUID
	Name   string
	URL    string
	Active bool
}

// WebsiteListResult bundles the resolved team with its websites.
type WebsiteListResult struct {
	Team     Team
	Websites []Website
}

// WebsiteService handles website listing.
type WebsiteService struct {
	storage      *storage.Storage
	storeTimeout time.Duration
}

// NewWebsiteService creates a new WebsiteService.
func NewWebsiteService(store *storage.Storage, env *config.Config) *WebsiteService {
	return &WebsiteService{storage: store, storeTimeout: env.StoreTimeout}
}

// ListByTeam resolves the credential and returns the team's websites.
func (s *WebsiteService) ListByTeam(ctx context.Context, apiKey string) (*WebsiteListResult, error) {
	team, err := resolveTeamByAPIKey(ctx, s.storage, s.storeTimeout, apiKey)
	if err != nil {
		return nil, err
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	rows, err := s.storage.Websites.ListByTeam(storeCtx, team.ID)
	if err != nil {
		return nil, storeUnavailable("websites.ListByTeam", err)
	}

	websites := make([]Website, len(rows))
	for i, row := range rows {
		websites[i] = Website{
			ID:     row.ID,
			Name:   row.Name,
			URL:    row.URL,
			Active: row.Active,
		}
	}

	return &WebsiteListResult{Team: team, Websites: websites}, nil
}
