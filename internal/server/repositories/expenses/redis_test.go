package expenses

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisRepository(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	exerciseRepository(t, NewRedisRepository(rdb))

	assert.True(t, mr.Exists("expenses:usr_1"))
	fields, err := mr.HKeys("expenses:usr_1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"exp_a", "exp_c"}, fields)
}

func TestRedisRepository_Unavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	mr.Close()

	_, err := NewRedisRepository(rdb).ListByUser(context.Background(), "usr_1")
	assert.Error(t, err)
}
