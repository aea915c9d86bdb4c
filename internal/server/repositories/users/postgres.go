package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/fintrack/internal/common"
	"github.com/dmitrijs2005/fintrack/internal/dbx"
	"github.com/dmitrijs2005/fintrack/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (id, email, password_hash, name, income, savings_goal, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (email) DO NOTHING
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.Income, user.SavingsGoal, user.CreatedAt,
	).Scan(&user.ID)

	if err != nil {
		// no row back means the email was already taken
		if errors.Is(err, sql.ErrNoRows) || isUniqueViolation(err) {
			return nil, common.ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, email, password_hash, name, income, savings_goal, created_at, updated_at FROM users
		 WHERE email = $1
		 `

	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) UpdateProfile(ctx context.Context, email string, upd models.ProfileUpdate, now time.Time) (*models.User, error) {
	query :=
		`UPDATE users SET
			name = COALESCE($2, name),
			income = COALESCE($3, income),
			savings_goal = COALESCE($4, savings_goal),
			updated_at = $5
		 WHERE email = $1
		 RETURNING id, email, password_hash, name, income, savings_goal, created_at, updated_at
		 `

	return scanUser(r.db.QueryRowContext(ctx, query, email, upd.Name, upd.Income, upd.SavingsGoal, now))
}

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var updatedAt sql.NullTime

	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Name,
		&user.Income, &user.SavingsGoal, &user.CreatedAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if updatedAt.Valid {
		user.UpdatedAt = updatedAt.Time
	}
	return user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "23505" // unique_violation
}
