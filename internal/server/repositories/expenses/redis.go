package expenses

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/fintrack/internal/common"
	"github.com/dmitrijs2005/fintrack/internal/server/models"
)

const maxTxRetries = 5

// redisExpense is the JSON value stored in the owner's hash.
type redisExpense struct {
	ID          string    `json:"expenseId"`
	UserID      string    `json:"userId"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toRedisExpense(e *models.Expense) redisExpense {
	return redisExpense(*e)
}

// RedisRepository stores expenses in one hash per owner, expenses:<userID>,
// with the expense id as field.
type RedisRepository struct {
	rdb redis.UniversalClient
}

func NewRedisRepository(rdb redis.UniversalClient) *RedisRepository {
	return &RedisRepository{rdb: rdb}
}

func redisKey(userID string) string {
	return "expenses:" + userID
}

func (r *RedisRepository) Create(ctx context.Context, e *models.Expense) (*models.Expense, error) {
	data, err := json.Marshal(toRedisExpense(e))
	if err != nil {
		return nil, fmt.Errorf("marshal expense: %w", err)
	}
	if err := r.rdb.HSet(ctx, redisKey(e.UserID), e.ID, data).Err(); err != nil {
		return nil, fmt.Errorf("redis error: %w", err)
	}

	out := *e
	return &out, nil
}

func (r *RedisRepository) ListByUser(ctx context.Context, userID string) ([]*models.Expense, error) {
	values, err := r.rdb.HVals(ctx, redisKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis error: %w", err)
	}

	result := make([]*models.Expense, 0, len(values))
	for _, v := range values {
		var doc redisExpense
		if err := json.Unmarshal([]byte(v), &doc); err != nil {
			return nil, fmt.Errorf("decode expense: %w", err)
		}
		e := models.Expense(doc)
		result = append(result, &e)
	}

	models.SortExpenses(result)
	return result, nil
}

func (r *RedisRepository) Update(ctx context.Context, e *models.Expense) (*models.Expense, error) {
	key := redisKey(e.UserID)
	var updated *models.Expense

	txf := func(tx *redis.Tx) error {
		data, err := tx.HGet(ctx, key, e.ID).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return common.ErrNotFound
			}
			return err
		}

		var doc redisExpense
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("decode expense: %w", err)
		}
		doc.Description = e.Description
		doc.Amount = e.Amount
		doc.Category = e.Category
		doc.Date = e.Date
		doc.UpdatedAt = e.UpdatedAt

		data, err = json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshal expense: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.HSet(ctx, key, e.ID, data)
			return nil
		})
		if err != nil {
			return err
		}

		out := models.Expense(doc)
		updated = &out
		return nil
	}

	for i := 0; i < maxTxRetries; i++ {
		err := r.rdb.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("redis error: %w", err)
	}
	return nil, fmt.Errorf("redis error: %w", redis.TxFailedErr)
}

func (r *RedisRepository) Delete(ctx context.Context, userID, id string) error {
	n, err := r.rdb.HDel(ctx, redisKey(userID), id).Result()
	if err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
