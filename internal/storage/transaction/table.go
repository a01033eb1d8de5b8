package transaction

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

var _ ITransactionTable = (*Table)(nil)

// columns is the full column list, shared by selects and RETURNING clauses
// so reads and post-update images always carry the same fields.
var columns = []any{
	"id", "transaction_id", "team_id", "customer_username", "website_id",
	"website_name", "bank_name", "account_number", "real_name", "amount",
	"balance_before", "balance_after", "status", "type", "note",
	"created_at", "updated_at", "created_by", "last_modified_by",
	"last_modified_by_email", "last_modified_at",
}

type Table struct {
	exec bob.Executor
}

func NewTable(exec bob.Executor) *Table {
	return &Table{exec: exec}
}

// FindByID retrieves a transaction by primary key. Returns nil when absent.
func (t *Table) FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("transactions"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*Transaction]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// ListPendingByTeam returns a team's pending transactions oldest first.
// NULL created_at sorts before everything else, id breaks ties, so the
// selection order is total and stable.
func (t *Table) ListPendingByTeam(ctx context.Context, teamID uuid.UUID) ([]*Transaction, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("transactions"),
		sm.Where(psql.Quote("team_id").EQ(psql.Arg(teamID))),
		sm.Where(psql.Quote("status").EQ(psql.Arg(string(StatusPending)))),
		sm.OrderBy("created_at").Asc().NullsFirst(),
		sm.OrderBy("id").Asc(),
	)
	return bob.All(ctx, t.exec, q, scan.StructMapper[*Transaction]())
}

// ClaimPending transitions a transaction from pending to in-progress with a
// single conditional write. The WHERE on status makes the claim atomic: of
// any number of racing callers, exactly one update matches. Returns the
// post-update row, or nil when the row was no longer pending.
func (t *Table) ClaimPending(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	q := psql.Update(
		um.Table("transactions"),
		um.SetCol("status").ToArg(string(StatusInProgress)),
		um.SetCol("updated_at").To(psql.Raw("NOW()")),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Where(psql.Quote("status").EQ(psql.Arg(string(StatusPending)))),
		um.Returning(columns...),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*Transaction]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}
