// Package auth holds the credential primitives of the server: bcrypt
// password hashing, the HS256 session token codec and the gateway
// authorizer that turns an Authorization header into an allow/deny decision.
package auth
