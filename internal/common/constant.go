// Package common contains shared constants and sentinel errors used across
// FinTrack components.
package common

const (
	// AuthorizationHeaderName is the HTTP header and gRPC metadata key that
	// carries the session token.
	AuthorizationHeaderName = "authorization"

	// BearerPrefix precedes the token in the authorization value.
	BearerPrefix = "Bearer "

	// RequestIDHeaderName carries the per-request correlation id.
	RequestIDHeaderName = "X-Request-ID"
)
