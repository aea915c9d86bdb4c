package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/fintrack/internal/server/migrations"
	"github.com/dmitrijs2005/fintrack/internal/server/repositories/expenses"
	"github.com/dmitrijs2005/fintrack/internal/server/repositories/users"
)

// PostgresRepositoryManager vends PostgreSQL-backed repositories sharing one
// connection pool and exposes a schema migration hook.
type PostgresRepositoryManager struct {
	db       *sql.DB
	users    *users.PostgresRepository
	expenses *expenses.PostgresRepository
}

// NewPostgresRepositoryManager opens a pgx-backed *sql.DB for dsn and checks
// connectivity.
func NewPostgresRepositoryManager(dsn string) (*PostgresRepositoryManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return newPostgresRepositoryManager(db), nil
}

func newPostgresRepositoryManager(db *sql.DB) *PostgresRepositoryManager {
	return &PostgresRepositoryManager{
		db:       db,
		users:    users.NewPostgresRepository(db),
		expenses: expenses.NewPostgresRepository(db),
	}
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) Expenses() expenses.Repository {
	return m.expenses
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and applies them.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, m.db, ".")
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}
