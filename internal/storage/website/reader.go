package website

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var _ IWebsiteTable = (*Reader)(nil)

var columns = []any{"id", "team_id", "name", "url", "active", "created_at"}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// ListByTeam returns all of a team's websites ordered by name.
func (r *Reader) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]*Website, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("websites"),
		sm.Where(psql.Quote("team_id").EQ(psql.Arg(teamID))),
		sm.OrderBy("name").Asc(),
		sm.OrderBy("id").Asc(),
	)
	return bob.All(ctx, r.exec, q, scan.StructMapper[*Website]())
}
