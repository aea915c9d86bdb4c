package expenses

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/fintrack/internal/common"
	"github.com/dmitrijs2005/fintrack/internal/dbx"
	"github.com/dmitrijs2005/fintrack/internal/server/models"
)

// PostgresRepository implements expense storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts e. The caller assigns the id and timestamps.
func (r *PostgresRepository) Create(ctx context.Context, e *models.Expense) (*models.Expense, error) {
	query := `
		INSERT INTO expenses (id, user_id, description, amount, category, spent_on, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	res, err := r.db.ExecContext(ctx, query,
		e.ID, e.UserID, e.Description, e.Amount, e.Category, e.Date, e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected error: %w", err)
	}
	if n != 1 {
		return nil, fmt.Errorf("unexpected rows affected: %d", n)
	}

	out := *e
	return &out, nil
}

// ListByUser returns all expenses of userID, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Expense, error) {
	query := `
		SELECT id, user_id, description, amount, category, spent_on, created_at, updated_at FROM expenses
		WHERE user_id = $1
		ORDER BY spent_on DESC, created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select expenses: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Expense, 0)
	for rows.Next() {
		var (
			item      models.Expense
			spentOn   time.Time
			updatedAt sql.NullTime
		)
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.Description, &item.Amount, &item.Category,
			&spentOn, &item.CreatedAt, &updatedAt,
		); err != nil {
			return nil, err
		}
		item.Date = spentOn.Format(models.DateLayout)
		if updatedAt.Valid {
			item.UpdatedAt = updatedAt.Time
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update replaces the mutable fields of the expense identified by e.ID and
// owned by e.UserID.
func (r *PostgresRepository) Update(ctx context.Context, e *models.Expense) (*models.Expense, error) {
	query := `
		UPDATE expenses SET description = $3, amount = $4, category = $5, spent_on = $6, updated_at = $7
		WHERE id = $1 AND user_id = $2
		RETURNING created_at
	`
	out := *e
	err := r.db.QueryRowContext(ctx, query,
		e.ID, e.UserID, e.Description, e.Amount, e.Category, e.Date, e.UpdatedAt,
	).Scan(&out.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &out, nil
}

// Delete removes the expense id owned by userID.
func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM expenses WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
