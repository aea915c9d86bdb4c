// Package expenses provides storage for expense records owned by a user.
// Every operation is scoped by the owner's user id.
package expenses

import (
	"context"

	"github.com/dmitrijs2005/fintrack/internal/server/models"
)

// Repository persists expenses.
//
// Update and Delete match on both the expense id and its owner; a miss on
// either is reported as common.ErrNotFound.
type Repository interface {
	Create(ctx context.Context, e *models.Expense) (*models.Expense, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Expense, error)
	Update(ctx context.Context, e *models.Expense) (*models.Expense, error)
	Delete(ctx context.Context, userID, id string) error
}
