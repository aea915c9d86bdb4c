package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/fintrack/internal/common"
)

// DefaultCost is the bcrypt work factor used when none (or an out of range
// one) is configured.
const DefaultCost = 10

// MaxPasswordBytes is the longest plaintext bcrypt accepts.
const MaxPasswordBytes = 72

// Hasher derives and checks salted bcrypt digests. It is safe for
// concurrent use.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given cost, falling back to
// DefaultCost when cost is outside bcrypt's accepted range.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Cost reports the work factor used for new digests.
func (h *Hasher) Cost() int {
	return h.cost
}

// Hash returns a digest of plaintext with a fresh random salt.
func (h *Hasher) Hash(plaintext string) (string, error) {
	if len(plaintext) > MaxPasswordBytes {
		return "", common.NewValidationError("Password too long")
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. Malformed digests simply
// do not match.
func (h *Hasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
