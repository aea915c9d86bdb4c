package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/fintrack/internal/common"
)

// DefaultTokenTTL is the session lifetime used when the configured one is
// not positive.
const DefaultTokenTTL = 7 * 24 * time.Hour

// Identity is the authenticated principal forwarded to downstream handlers.
type Identity struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// Claims is the JWT payload: the registered claims (sub, iat, exp) plus the
// account email.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Identity returns the principal carried by c.
func (c *Claims) Identity() Identity {
	return Identity{UserID: c.Subject, Email: c.Email}
}

// CodecOption customizes a TokenCodec.
type CodecOption func(*TokenCodec)

// WithClock replaces time.Now as the codec's source of the current time.
func WithClock(now func() time.Time) CodecOption {
	return func(c *TokenCodec) {
		c.now = now
	}
}

// TokenCodec mints and verifies HS256 session tokens with a secret fixed at
// construction. It is safe for concurrent use.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

// NewTokenCodec builds a codec. An empty secret is rejected; a ttl <= 0
// means DefaultTokenTTL.
func NewTokenCodec(secret []byte, ttl time.Duration, opts ...CodecOption) (*TokenCodec, error) {
	if len(secret) == 0 {
		return nil, errors.New("token codec: empty secret")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	c := &TokenCodec{
		secret: append([]byte(nil), secret...),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	return c, nil
}

// TTL reports the lifetime of issued tokens.
func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token for id valid from now until now+TTL.
func (c *TokenCodec) Issue(id Identity) (string, time.Time, error) {
	if id.UserID == "" || id.Email == "" {
		return "", time.Time{}, errors.New("token codec: identity requires user id and email")
	}

	now := c.now()
	issuedAt := jwt.NewNumericDate(now)
	expiresAt := jwt.NewNumericDate(now.Add(c.ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email: id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			IssuedAt:  issuedAt,
			ExpiresAt: expiresAt,
		},
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt.Time, nil
}

// Parse verifies the signature and expiry of token and returns its claims.
// Every failure is reported as common.ErrTokenInvalid.
func (c *TokenCodec) Parse(token string) (*Claims, error) {
	claims := &Claims{}

	parsed, err := c.parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrTokenInvalid, err)
	}
	if !parsed.Valid {
		return nil, common.ErrTokenInvalid
	}

	// exp is exclusive
	if !c.now().Before(claims.ExpiresAt.Time) {
		return nil, fmt.Errorf("%w: expired", common.ErrTokenInvalid)
	}
	if claims.Subject == "" || claims.Email == "" {
		return nil, fmt.Errorf("%w: missing subject or email", common.ErrTokenInvalid)
	}

	return claims, nil
}
