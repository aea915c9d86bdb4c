package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/fintrack/internal/common"
	"github.com/dmitrijs2005/fintrack/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const (
	insertQuery = `(?s)^INSERT\s+INTO\s+users\s*\(id,\s*email,\s*password_hash,\s*name,\s*income,\s*savings_goal,\s*created_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6,\s*\$7\)\s*ON\s+CONFLICT\s*\(email\)\s*DO\s+NOTHING\s*RETURNING\s+id\s*$`
	selectQuery = `(?s)^SELECT\s+id,\s*email,\s*password_hash,\s*name,\s*income,\s*savings_goal,\s*created_at,\s*updated_at\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s*$`
	updateQuery = `(?s)^UPDATE\s+users\s+SET\s+name\s*=\s*COALESCE\(\$2,\s*name\).*updated_at\s*=\s*\$5\s+WHERE\s+email\s*=\s*\$1\s+RETURNING\s+id,.*updated_at\s*$`
)

var userCols = []string{"id", "email", "password_hash", "name", "income", "savings_goal", "created_at", "updated_at"}

func sampleUser() *models.User {
	return &models.User{
		ID:           "usr_1",
		Email:        "ana@x.com",
		PasswordHash: "$2a$10$hash",
		Name:         "Ana",
		CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestPostgresCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	u := sampleUser()
	mock.ExpectQuery(insertQuery).
		WithArgs(u.ID, u.Email, u.PasswordHash, u.Name, 0.0, 0.0, u.CreatedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("usr_1"))

	got, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "usr_1" || got.Email != "ana@x.com" {
		t.Fatalf("unexpected user: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresCreate_ConflictNoRow(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQuery).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.Create(context.Background(), sampleUser())
	if !errors.Is(err, common.ErrDuplicateIdentity) {
		t.Fatalf("want ErrDuplicateIdentity, got %v", err)
	}
}

func TestPostgresCreate_UniqueViolation(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQuery).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_pkey"})

	_, err := repo.Create(context.Background(), sampleUser())
	if !errors.Is(err, common.ErrDuplicateIdentity) {
		t.Fatalf("want ErrDuplicateIdentity, got %v", err)
	}
}

func TestPostgresCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQuery).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), sampleUser())
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
	if errors.Is(err, common.ErrDuplicateIdentity) {
		t.Fatalf("db failure must not look like a duplicate")
	}
}

func TestPostgresGetByEmail_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(selectQuery).
		WithArgs("ana@x.com").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow("usr_1", "ana@x.com", "h", "Ana", 1000.0, 200.0, created, nil))

	got, err := repo.GetByEmail(context.Background(), "ana@x.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if got.ID != "usr_1" || got.Income != 1000 || got.SavingsGoal != 200 || !got.UpdatedAt.IsZero() {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestPostgresGetByEmail_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectQuery).
		WithArgs("ghost@x.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "ghost@x.com")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestPostgresUpdateProfile(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := created.Add(time.Hour)
	name := "Ana B"

	mock.ExpectQuery(updateQuery).
		WithArgs("ana@x.com", "Ana B", nil, nil, now).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow("usr_1", "ana@x.com", "h", "Ana B", 0.0, 0.0, created, now))

	got, err := repo.UpdateProfile(context.Background(), "ana@x.com", models.ProfileUpdate{Name: &name}, now)
	if err != nil {
		t.Fatalf("UpdateProfile error: %v", err)
	}
	if got.Name != "Ana B" || !got.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected user: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresUpdateProfile_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(updateQuery).
		WillReturnRows(sqlmock.NewRows(userCols))

	_, err := repo.UpdateProfile(context.Background(), "ghost@x.com", models.ProfileUpdate{}, time.Now())
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
