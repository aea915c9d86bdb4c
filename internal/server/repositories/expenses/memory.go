package expenses

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/fintrack/internal/common"
	"github.com/dmitrijs2005/fintrack/internal/server/models"
)

// MemoryRepository keeps expenses in process memory, grouped by owner.
type MemoryRepository struct {
	mu     sync.RWMutex
	byUser map[string]map[string]models.Expense
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byUser: make(map[string]map[string]models.Expense)}
}

func (r *MemoryRepository) Create(ctx context.Context, e *models.Expense) (*models.Expense, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	items, ok := r.byUser[e.UserID]
	if !ok {
		items = make(map[string]models.Expense)
		r.byUser[e.UserID] = items
	}
	items[e.ID] = *e

	out := *e
	return &out, nil
}

func (r *MemoryRepository) ListByUser(ctx context.Context, userID string) ([]*models.Expense, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	result := make([]*models.Expense, 0, len(r.byUser[userID]))
	for _, e := range r.byUser[userID] {
		item := e
		result = append(result, &item)
	}
	r.mu.RUnlock()

	models.SortExpenses(result)
	return result, nil
}

func (r *MemoryRepository) Update(ctx context.Context, e *models.Expense) (*models.Expense, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byUser[e.UserID][e.ID]
	if !ok {
		return nil, common.ErrNotFound
	}
	current.Description = e.Description
	current.Amount = e.Amount
	current.Category = e.Category
	current.Date = e.Date
	current.UpdatedAt = e.UpdatedAt
	r.byUser[e.UserID][e.ID] = current

	return &current, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, userID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUser[userID][id]; !ok {
		return common.ErrNotFound
	}
	delete(r.byUser[userID], id)
	return nil
}
