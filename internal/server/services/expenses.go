package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/fintrack/internal/common"
	"github.com/dmitrijs2005/fintrack/internal/logging"
	"github.com/dmitrijs2005/fintrack/internal/server/auth"
	"github.com/dmitrijs2005/fintrack/internal/server/models"
	"github.com/dmitrijs2005/fintrack/internal/server/repositories/expenses"
)

// ExpenseInput carries the mutable fields of an expense.
type ExpenseInput struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
}

func (in ExpenseInput) normalize() (ExpenseInput, error) {
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	in.Date = strings.TrimSpace(in.Date)

	if in.Description == "" || in.Category == "" || in.Date == "" || in.Amount == 0 {
		return in, common.NewValidationError(MsgAllFieldsRequired)
	}
	if in.Amount < 0 {
		return in, common.NewValidationError("Amount must be positive")
	}
	if _, err := time.Parse(models.DateLayout, in.Date); err != nil {
		return in, common.NewValidationError("Date must be YYYY-MM-DD")
	}
	return in, nil
}

// ExpenseService manages the expenses of the authenticated user.
type ExpenseService struct {
	expenses expenses.Repository
	logger   logging.Logger
	now      func() time.Time
	newID    func() string
}

func NewExpenseService(repo expenses.Repository, logger logging.Logger) *ExpenseService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &ExpenseService{
		expenses: repo,
		logger:   logger,
		now:      time.Now,
		newID:    func() string { return "exp_" + uuid.NewString() },
	}
}

// Create records a new expense owned by id.
func (s *ExpenseService) Create(ctx context.Context, id auth.Identity, in ExpenseInput) (*models.Expense, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}

	e := &models.Expense{
		ID:          s.newID(),
		UserID:      id.UserID,
		Description: in.Description,
		Amount:      in.Amount,
		Category:    in.Category,
		Date:        in.Date,
		CreatedAt:   s.now().UTC(),
	}

	created, err := s.expenses.Create(ctx, e)
	if err != nil {
		return nil, s.storeError(ctx, "create expense failed", err)
	}
	return created, nil
}

// List returns the expenses of id, newest first.
func (s *ExpenseService) List(ctx context.Context, id auth.Identity) ([]*models.Expense, error) {
	items, err := s.expenses.ListByUser(ctx, id.UserID)
	if err != nil {
		return nil, s.storeError(ctx, "list expenses failed", err)
	}
	return items, nil
}

// Update replaces the fields of expense expenseID owned by id.
func (s *ExpenseService) Update(ctx context.Context, id auth.Identity, expenseID string, in ExpenseInput) (*models.Expense, error) {
	if strings.TrimSpace(expenseID) == "" {
		return nil, common.ErrNotFound
	}
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}

	updated, err := s.expenses.Update(ctx, &models.Expense{
		ID:          expenseID,
		UserID:      id.UserID,
		Description: in.Description,
		Amount:      in.Amount,
		Category:    in.Category,
		Date:        in.Date,
		UpdatedAt:   s.now().UTC(),
	})
	if err != nil {
		return nil, s.storeError(ctx, "update expense failed", err)
	}
	return updated, nil
}

// Delete removes expense expenseID owned by id.
func (s *ExpenseService) Delete(ctx context.Context, id auth.Identity, expenseID string) error {
	if strings.TrimSpace(expenseID) == "" {
		return common.ErrNotFound
	}
	if err := s.expenses.Delete(ctx, id.UserID, expenseID); err != nil {
		return s.storeError(ctx, "delete expense failed", err)
	}
	s.logger.Debug(ctx, "expense deleted", "user_id", id.UserID, "expense_id", expenseID)
	return nil
}

func (s *ExpenseService) storeError(ctx context.Context, msg string, err error) error {
	if errors.Is(err, common.ErrNotFound) {
		return common.ErrNotFound
	}
	s.logger.Error(ctx, msg, "error", err)
	return fmt.Errorf("%w: %w", common.ErrStoreUnavailable, err)
}
