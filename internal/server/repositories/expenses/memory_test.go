package expenses

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/fintrack/internal/common"
)

// exerciseRepository runs the behavior every backend must share.
func exerciseRepository(t *testing.T, r Repository) {
	t.Helper()
	ctx := context.Background()

	for _, e := range []struct {
		id, user, date string
		created        time.Time
	}{
		{"exp_a", "usr_1", "2024-01-05", baseTime},
		{"exp_b", "usr_1", "2024-02-01", baseTime},
		{"exp_c", "usr_1", "2024-01-05", baseTime.Add(time.Minute)},
		{"exp_x", "usr_2", "2024-05-01", baseTime},
	} {
		_, err := r.Create(ctx, sampleExpense(e.id, e.user, e.date, e.created))
		require.NoError(t, err)
	}

	list, err := r.ListByUser(ctx, "usr_1")
	require.NoError(t, err)
	assert.Equal(t, []string{"exp_b", "exp_c", "exp_a"}, ids(list))

	empty, err := r.ListByUser(ctx, "usr_nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	upd := sampleExpense("exp_a", "usr_1", "2024-06-01", time.Time{})
	upd.Description = "dinner"
	upd.Amount = 40
	upd.UpdatedAt = baseTime.Add(time.Hour)
	got, err := r.Update(ctx, upd)
	require.NoError(t, err)
	assert.Equal(t, "dinner", got.Description)
	assert.Equal(t, 40.0, got.Amount)
	assert.True(t, got.CreatedAt.Equal(baseTime), "created_at is preserved")

	list, err = r.ListByUser(ctx, "usr_1")
	require.NoError(t, err)
	assert.Equal(t, []string{"exp_a", "exp_b", "exp_c"}, ids(list))

	foreign := sampleExpense("exp_x", "usr_1", "2024-06-01", time.Time{})
	_, err = r.Update(ctx, foreign)
	assert.True(t, errors.Is(err, common.ErrNotFound), "cannot update another user's expense")

	assert.True(t, errors.Is(r.Delete(ctx, "usr_1", "exp_x"), common.ErrNotFound), "cannot delete another user's expense")
	assert.True(t, errors.Is(r.Delete(ctx, "usr_1", "exp_missing"), common.ErrNotFound))

	require.NoError(t, r.Delete(ctx, "usr_1", "exp_b"))
	assert.True(t, errors.Is(r.Delete(ctx, "usr_1", "exp_b"), common.ErrNotFound))

	list, err = r.ListByUser(ctx, "usr_2")
	require.NoError(t, err)
	assert.Equal(t, []string{"exp_x"}, ids(list))
}

func TestMemoryRepository(t *testing.T) {
	exerciseRepository(t, NewMemoryRepository())
}
