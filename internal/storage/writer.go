package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/banlak-networks/balance-server/internal/storage/transaction"
)

// Writer bundles the tx-scoped table writers for one storage transaction.
type Writer struct {
	tx          bob.Tx
	Transaction *transaction.Writer
}

func NewWriter(tx bob.Tx) Writer {
	return Writer{
		tx:          tx,
		Transaction: transaction.NewWriter(tx),
	}
}

func (w *Writer) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}
