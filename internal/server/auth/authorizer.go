package auth

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/fintrack/internal/common"
)

// TokenParser verifies a raw session token.
type TokenParser interface {
	Parse(token string) (*Claims, error)
}

// Decision is the outcome of authorizing one request. Reason is set only
// when Allowed is false and always matches common.ErrUnauthorized.
type Decision struct {
	Allowed  bool
	Identity Identity
	Reason   error
}

// Authorizer converts an Authorization header value into a Decision.
type Authorizer struct {
	tokens TokenParser
}

func NewAuthorizer(tokens TokenParser) *Authorizer {
	return &Authorizer{tokens: tokens}
}

// Authorize strips an optional "Bearer " prefix from rawHeader and verifies
// the remaining token. An empty token is denied without being parsed.
func (a *Authorizer) Authorize(rawHeader string) Decision {
	token := ExtractBearer(rawHeader)
	if token == "" {
		return Decision{Reason: fmt.Errorf("%w: %w", common.ErrUnauthorized, common.ErrNoToken)}
	}

	claims, err := a.tokens.Parse(token)
	if err != nil {
		return Decision{Reason: fmt.Errorf("%w: %w", common.ErrUnauthorized, err)}
	}

	return Decision{Allowed: true, Identity: claims.Identity()}
}

// ExtractBearer returns the token part of an Authorization header value.
// The scheme is matched case-insensitively and a value without a scheme is
// returned as is.
func ExtractBearer(rawHeader string) string {
	v := strings.TrimSpace(rawHeader)

	scheme := strings.TrimSpace(common.BearerPrefix)
	if len(v) >= len(scheme) && strings.EqualFold(v[:len(scheme)], scheme) {
		rest := v[len(scheme):]
		if rest == "" {
			return ""
		}
		if rest[0] == ' ' || rest[0] == '\t' {
			return strings.TrimSpace(rest)
		}
	}
	return v
}
