package repomanager

import (
	"github.com/dmitrijs2005/fintrack/internal/server/repositories/expenses"
	"github.com/dmitrijs2005/fintrack/internal/server/repositories/users"
)

// InMemoryRepositoryManager keeps all data in process memory.
type InMemoryRepositoryManager struct {
	users    *users.MemoryRepository
	expenses *expenses.MemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users:    users.NewMemoryRepository(),
		expenses: expenses.NewMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) Expenses() expenses.Repository {
	return m.expenses
}

func (m *InMemoryRepositoryManager) Close() error {
	return nil
}
