package website

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
)

// Website represents a website operated by a team.
type Website struct {
	ID        uuid.UUID `db:"id"`
	TeamID    uuid.UUID `db:"team_id"`
	Name      string    `db:"name"`
	URL       string    `db:"url"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
}

// IWebsiteTable defines the interface for website storage operations.
// This abstraction allows swapping the implementation (e.g. Bob) without changing callers.
//
//go:generate mockery --name IWebsiteTable --output mock_IWebsiteTable.go
type IWebsiteTable interface {
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]*Website, error)
}
