package repomanager

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/fintrack/internal/server/repositories/expenses"
	"github.com/dmitrijs2005/fintrack/internal/server/repositories/users"
)

// RedisRepositoryManager vends Redis-backed repositories over one client.
type RedisRepositoryManager struct {
	rdb      *redis.Client
	users    *users.RedisRepository
	expenses *expenses.RedisRepository
}

// NewRedisRepositoryManager connects to the redis:// URL and pings it.
func NewRedisRepositoryManager(ctx context.Context, url string) (*RedisRepositoryManager, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &RedisRepositoryManager{
		rdb:      rdb,
		users:    users.NewRedisRepository(rdb),
		expenses: expenses.NewRedisRepository(rdb),
	}, nil
}

func (m *RedisRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *RedisRepositoryManager) Expenses() expenses.Repository {
	return m.expenses
}

func (m *RedisRepositoryManager) Close() error {
	return m.rdb.Close()
}
