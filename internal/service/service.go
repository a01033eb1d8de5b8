package service

import (
	"github.com/banlak-networks/balance-server/internal/config"
	"github.com/banlak-networks/balance-server/internal/storage"
)

// Service holds all business logic services.
type Service struct {
	Team        *TeamService
	Transaction *TransactionService
	Website     *WebsiteService
}

// NewService creates a new Service with the given storage.
func NewService(store *storage.Storage, env *config.Config) *Service {
	return &Service{
		Team:        NewTeamService(store, env),
		Transaction: NewTransactionService(store, env),
		Website:     NewWebsiteService(store, env),
	}
}
