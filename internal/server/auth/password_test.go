package auth

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/fintrack/internal/common"
)

func TestHasher_RoundTrip(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)

	d1, err := h.Hash("secret1")
	require.NoError(t, err)
	d2, err := h.Hash("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, d1, d2, "salt must differ per call")
	assert.NotContains(t, d1, "secret1")
	assert.True(t, h.Verify("secret1", d1))
	assert.True(t, h.Verify("secret1", d2))
	assert.False(t, h.Verify("secret2", d1))
}

func TestHasher_MalformedDigest(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)
	assert.False(t, h.Verify("secret1", ""))
	assert.False(t, h.Verify("secret1", "not-a-bcrypt-digest"))
}

func TestHasher_TooLong(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)
	_, err := h.Hash(strings.Repeat("a", MaxPasswordBytes+1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrValidation))

	_, err = h.Hash(strings.Repeat("a", MaxPasswordBytes))
	assert.NoError(t, err)
}

func TestNewHasher_CostFallback(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultCost, NewHasher(0).Cost())
	assert.Equal(t, DefaultCost, NewHasher(bcrypt.MaxCost+1).Cost())
	assert.Equal(t, 12, NewHasher(12).Cost())
}

func TestHasher_DigestCarriesCost(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost + 1)
	d, err := h.Hash("pw")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(d))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost+1, cost)
}
