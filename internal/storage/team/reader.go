package team

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var _ ITeamTable = (*Reader)(nil)

var columns = []any{"id", "name", "api_key", "created_at", "updated_at"}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// FindByID retrieves a team by primary key. Returns nil when absent.
func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Team, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("teams"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[*Team]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// FindByAPIKey resolves an API key to its team. Returns nil when no team
// holds the key. The schema enforces key uniqueness; the ordering makes the
// lookup deterministic (oldest team wins) even against a store predating
// the constraint.
func (r *Reader) FindByAPIKey(ctx context.Context, apiKey string) (*Team, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("teams"),
		sm.Where(psql.Quote("api_key").EQ(psql.Arg(apiKey))),
		sm.OrderBy("created_at").Asc(),
		sm.OrderBy("id").Asc(),
		sm.Limit(1),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[*Team]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}
