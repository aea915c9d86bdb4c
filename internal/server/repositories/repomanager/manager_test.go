package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/fintrack/internal/server/config"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestNew_Memory(t *testing.T) {
	m, err := New(context.Background(), &config.Config{Storage: config.StorageMemory})
	require.NoError(t, err)

	assert.NotNil(t, m.Users())
	assert.NotNil(t, m.Expenses())
	assert.NoError(t, m.Close())
}

func TestNew_Unknown(t *testing.T) {
	_, err := New(context.Background(), &config.Config{Storage: "sqlite"})
	assert.Error(t, err)
}

func TestNew_Redis(t *testing.T) {
	mr := miniredis.RunT(t)

	m, err := New(context.Background(), &config.Config{
		Storage:  config.StorageRedis,
		RedisURL: "redis://" + mr.Addr() + "/0",
	})
	require.NoError(t, err)
	defer m.Close()

	assert.NotNil(t, m.Users())
	assert.NotNil(t, m.Expenses())
}

func TestNew_RedisBadURL(t *testing.T) {
	_, err := New(context.Background(), &config.Config{Storage: config.StorageRedis, RedisURL: "http://nope"})
	assert.Error(t, err)
}

func TestNew_DynamoDB(t *testing.T) {
	m, err := New(context.Background(), &config.Config{
		Storage:             config.StorageDynamoDB,
		AWSRegion:           "us-east-1",
		AWSEndpoint:         "http://127.0.0.1:8000",
		DynamoUsersTable:    "u",
		DynamoExpensesTable: "e",
	})
	require.NoError(t, err)
	assert.NotNil(t, m.Users())
	assert.NoError(t, m.Close())
}

func TestPostgresManager_Factories(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	m := newPostgresRepositoryManager(db)
	assert.NotNil(t, m.Users())
	assert.NotNil(t, m.Expenses())
}

func TestRunMigrations_UsesSeam(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	var gotDir string
	gooseUpContext = func(ctx context.Context, _ *sql.DB, dir string, _ ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	}

	m := newPostgresRepositoryManager(db)
	require.NoError(t, m.RunMigrations(context.Background()))
	assert.Equal(t, ".", gotDir)

	gooseUpContext = func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	assert.EqualError(t, m.RunMigrations(context.Background()), "boom")
}

func TestPostgresManager_Close(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectClose()

	m := newPostgresRepositoryManager(db)
	require.NoError(t, m.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
