// Package users provides the credential store: one record per identity,
// keyed by normalized email, with PostgreSQL, DynamoDB, Redis and in-memory
// implementations.
package users

import (
	"context"
	"time"

	"github.com/dmitrijs2005/fintrack/internal/server/models"
)

// Repository persists identity records.
//
// Create is an atomic create-if-absent: a second record with the same email
// fails with common.ErrDuplicateIdentity and leaves the store unchanged.
// Lookups of unknown emails return common.ErrNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, email string, upd models.ProfileUpdate, now time.Time) (*models.User, error)
}
