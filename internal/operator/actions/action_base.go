package actions

import (
	"context"

	"github.com/banlak-networks/balance-server/internal/storage"
)

type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
