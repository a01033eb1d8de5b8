package storage

import (
	"context"
	"database/sql"
	"log"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/banlak-networks/balance-server/internal/config"
	"github.com/banlak-networks/balance-server/internal/storage/team"
	"github.com/banlak-networks/balance-server/internal/storage/transaction"
	"github.com/banlak-networks/balance-server/internal/storage/website"
)

// Storage is the process-wide handle to the backing store. It is constructed
// once in main and injected; table fields are interfaces so tests can
// substitute mocks.
type Storage struct {
	DB           bob.DB
	Teams        team.ITeamTable
	Websites     website.IWebsiteTable
	Transactions transaction.ITransactionTable
}

func NewStorage(env *config.Config) *Storage {
	connStr := "postgres://" + env.PostgresUsername + ":" +
		env.PostgresPassword + "@" + env.PostgresAddress + ":" +
		env.PostgresPort + "/" + env.PostgresDB + "?sslmode=disable"

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal(err)
	}

	bdb := bob.NewDB(db)
	return &Storage{
		DB:           bdb,
		Teams:        team.NewReader(bdb),
		Websites:     website.NewReader(bdb),
		Transactions: transaction.NewTable(bdb),
	}
}

// Write opens a storage transaction and returns a Writer scoped to it.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	writer := NewWriter(tx)
	return &writer, nil
}
