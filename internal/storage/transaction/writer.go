package transaction

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

// Writer performs transaction mutations inside a storage transaction.
type Writer struct {
	tx bob.Tx
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{tx: tx}
}

// FindByIDForUpdate retrieves a transaction by primary key and locks the row
// for the remainder of the enclosing storage transaction. Returns nil when
// absent.
func (w *Writer) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("transactions"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.ForUpdate(),
	)
	row, err := bob.One(ctx, w.tx, q, scan.StructMapper[*Transaction]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// UpdateStatus applies a status transition and stamps the modifier fields.
// Caller is expected to hold the row lock via FindByIDForUpdate.
func (w *Writer) UpdateStatus(ctx context.Context, id uuid.UUID, update *StatusUpdate) (*Transaction, error) {
	mods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table("transactions"),
		um.SetCol("status").ToArg(string(update.Status)),
		um.SetCol("updated_at").To(psql.Raw("NOW()")),
		um.SetCol("last_modified_by").ToArg(update.ModifiedBy),
		um.SetCol("last_modified_at").To(psql.Raw("NOW()")),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Returning(columns...),
	}
	if update.Note != nil {
		mods = append(mods, um.SetCol("note").ToArg(*update.Note))
	}
	if update.ModifiedEmail != nil {
		mods = append(mods, um.SetCol("last_modified_by_email").ToArg(*update.ModifiedEmail))
	}

	q := psql.Update(mods...)
	return bob.One(ctx, w.tx, q, scan.StructMapper[*Transaction]())
}
