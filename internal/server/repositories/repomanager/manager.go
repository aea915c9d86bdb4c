// Package repomanager builds the credential and expense stores for the
// configured storage backend and owns their connections.
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/fintrack/internal/server/config"
	"github.com/dmitrijs2005/fintrack/internal/server/repositories/expenses"
	"github.com/dmitrijs2005/fintrack/internal/server/repositories/users"
)

// RepositoryManager vends the repositories of one backend.
type RepositoryManager interface {
	Users() users.Repository
	Expenses() expenses.Repository
	// Close releases backend connections.
	Close() error
}

// New opens the backend selected by cfg.Storage. For PostgreSQL the embedded
// migrations are applied before returning.
func New(ctx context.Context, cfg *config.Config) (RepositoryManager, error) {
	switch cfg.Storage {
	case config.StorageMemory, "":
		return NewInMemoryRepositoryManager(), nil
	case config.StoragePostgres:
		m, err := NewPostgresRepositoryManager(cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		if err := m.RunMigrations(ctx); err != nil {
			_ = m.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
		return m, nil
	case config.StorageRedis:
		return NewRedisRepositoryManager(ctx, cfg.RedisURL)
	case config.StorageDynamoDB:
		return NewDynamoRepositoryManager(ctx, DynamoOptions{
			Region:        cfg.AWSRegion,
			Endpoint:      cfg.AWSEndpoint,
			UsersTable:    cfg.DynamoUsersTable,
			ExpensesTable: cfg.DynamoExpensesTable,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
}
