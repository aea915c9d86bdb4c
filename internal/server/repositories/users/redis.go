package users

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

const redisKeyPrefix = "user:"

// maxTxRetries bounds optimistic WATCH/MULTI retries on concurrent updates.
const maxTxRetries = 5

// redisUser is the JSON document stored under user:<email>.
type redisUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	Name         string    `json:"name"`
	Income       float64   `json:"income"`
	SavingsGoal  float64   `json:"savingsGoal"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toRedisUser(u *models.User) redisUser {
	return redisUser{
		ID: u.ID, Email: u.Email, PasswordHash: u.PasswordHash, Name: u.Name,
		Income: u.Income, SavingsGoal: u.SavingsGoal, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt,
	}
}

func (d redisUser) model() *models.User {
	return &models.User{
		ID: d.ID, Email: d.Email, PasswordHash: d.PasswordHash, Name: d.Name,
		Income: d.Income, SavingsGoal: d.SavingsGoal, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

// RedisRepository stores each identity as a JSON document. Creation relies on
// SETNX so concurrent registrations of one email cannot both succeed.
type RedisRepository struct {
	rdb redis.UniversalClient
}

func NewRedisRepository(rdb redis.UniversalClient) *RedisRepository {
	return &RedisRepository{rdb: rdb}
}

func redisKey(email string) string {
	return redisKeyPrefix + email
}

func (r *RedisRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	data, err := json.Marshal(toRedisUser(user))
	if err != nil {
		return nil, fmt.Errorf("marshal user: %w", err)
	}

	ok, err := r.rdb.SetNX(ctx, redisKey(user.Email), data, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("redis error: %w", err)
	}
	if !ok {
		return nil, common.ErrDuplicateIdentity
	}

	out := *user
	return &out, nil
}

func (r *RedisRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.get(ctx, r.rdb, email)
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (r *RedisRepository) get(ctx context.Context, c getter, email string) (*models.User, error) {
	data, err := c.Get(ctx, redisKey(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("redis error: %w", err)
	}

	var doc redisUser
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return doc.model(), nil
}

func (r *RedisRepository) UpdateProfile(ctx context.Context, email string, upd models.ProfileUpdate, now time.Time) (*models.User, error) {
	key := redisKey(email)
	var updated *models.User

	txf := func(tx *redis.Tx) error {
		u, err := r.get(ctx, tx, email)
		if err != nil {
			return err
		}
		upd.Apply(u, now)

		data, err := json.Marshal(toRedisUser(u))
		if err != nil {
			return fmt.Errorf("marshal user: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, key, data, 0)
			return nil
		})
		if err != nil {
			return err
		}
		updated = u
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
