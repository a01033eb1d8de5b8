package team

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
)

// Team represents a team record. The API key is an opaque bearer credential,
// unique per team, and is never returned to callers.
type Team struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	APIKey    string    `db:"api_key"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ITeamTable defines the interface for team storage operations.
// This abstraction allows swapping the implementation (e.g. Bob) without changing callers.
//
//go:generate mockery --name ITeamTable --output mock_ITeamTable.go
type ITeamTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Team, error)
	FindByAPIKey(ctx context.Context, apiKey string) (*Team, error)
}
