package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/fintrack/internal/common"
	"github.com/dmitrijs2005/fintrack/internal/logging"
	"github.com/dmitrijs2005/fintrack/internal/server/auth"
	"github.com/dmitrijs2005/fintrack/internal/server/metrics"
	"github.com/dmitrijs2005/fintrack/internal/server/models"
	"github.com/dmitrijs2005/fintrack/internal/server/repositories/users"
)

// MsgAllFieldsRequired is the validation message for missing input fields.
const MsgAllFieldsRequired = "All fields required"

// MsgCredentialsRequired is the validation message for an incomplete login.
const MsgCredentialsRequired = "Email and password required"

// dummyPassword is hashed once so logins for unknown accounts cost one
// bcrypt comparison, like logins for known ones.
const dummyPassword = "fintrack-timing-equalizer"

// TokenIssuer mints session tokens.
type TokenIssuer interface {
	Issue(id auth.Identity) (string, time.Time, error)
}

// RegisterInput is the registration request.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput is the login request.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is returned by successful Register and Login calls.
type AuthResult struct {
	Token     string               `json:"token"`
	ExpiresAt time.Time            `json:"expiresAt"`
	User      models.PublicProfile `json:"user"`
}

// UserService issues and verifies credentials and manages profiles.
type UserService struct {
	users       users.Repository
	hasher      *auth.Hasher
	tokens      TokenIssuer
	logger      logging.Logger
	metrics     *metrics.Metrics
	now         func() time.Time
	newID       func() string
	dummyDigest string
}

// NewUserService wires the service. m may be nil.
func NewUserService(repo users.Repository, hasher *auth.Hasher, tokens TokenIssuer, logger logging.Logger, m *metrics.Metrics) *UserService {
	if logger == nil {
		logger = logging.Nop()
	}

	// Hash only fails for oversized input or a broken entropy source; an
	// empty digest still fails verification.
	dummy, _ := hasher.Hash(dummyPassword)

	return &UserService{
		users:       repo,
		hasher:      hasher,
		tokens:      tokens,
		logger:      logger,
		metrics:     m,
		now:         time.Now,
		newID:       func() string { return "usr_" + uuid.NewString() },
		dummyDigest: dummy,
	}
}

// Register creates an identity and returns a session for it.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (res *AuthResult, err error) {
	defer func() { s.metrics.ObserveAuth(metrics.OpRegister, err) }()

	name := strings.TrimSpace(in.Name)
	email := common.NormalizeEmail(in.Email)
	if name == "" || email == "" || strings.TrimSpace(in.Password) == "" {
		return nil, common.NewValidationError(MsgAllFieldsRequired)
	}
	if !strings.Contains(email, "@") {
		return nil, common.NewValidationError("Invalid email")
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, common.ErrValidation) {
			return nil, err
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           s.newID(),
		Email:        email,
		PasswordHash: digest,
		Name:         name,
		CreatedAt:    s.now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateIdentity) {
			return nil, common.ErrDuplicateIdentity
		}
		s.logger.Error(ctx, "create user failed", "error", err)
		return nil, fmt.Errorf("%w: %w", common.ErrStoreUnavailable, err)
	}

	s.logger.Info(ctx, "user registered", "user_id", created.ID)
	return s.session(created)
}

// Login verifies credentials. Unknown accounts and wrong passwords both
// yield common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, in LoginInput) (res *AuthResult, err error) {
	defer func() { s.metrics.ObserveAuth(metrics.OpLogin, err) }()

	email := common.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, common.NewValidationError(MsgCredentialsRequired)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.hasher.Verify(in.Password, s.dummyDigest)
			return nil, common.ErrInvalidCredentials
		}
		s.logger.Error(ctx, "lookup user failed", "error", err)
		return nil, fmt.Errorf("%w: %w", common.ErrStoreUnavailable, err)
	}

	if !s.hasher.Verify(in.Password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	return s.session(user)
}

func (s *UserService) session(user *models.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.Issue(auth.Identity{UserID: user.ID, Email: user.Email})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{Token: token, ExpiresAt: expiresAt, User: user.Public()}, nil
}

// GetProfile returns the profile of the authenticated identity.
func (s *UserService) GetProfile(ctx context.Context, id auth.Identity) (*models.PublicProfile, error) {
	user, err := s.users.GetByEmail(ctx, id.Email)
	if err != nil {
		return nil, s.storeError(ctx, "get profile failed", err)
	}
	if user.ID != id.UserID {
		return nil, common.ErrNotFound
	}

	p := user.Public()
	return &p, nil
}

// UpdateProfile merges upd into the profile of the authenticated identity.
func (s *UserService) UpdateProfile(ctx context.Context, id auth.Identity, upd models.ProfileUpdate) (*models.PublicProfile, error) {
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, common.NewValidationError("Name cannot be empty")
		}
		upd.Name = &name
	}
	if upd.Income != nil && *upd.Income < 0 {
		return nil, common.NewValidationError("Income cannot be negative")
	}
	if upd.SavingsGoal != nil && *upd.SavingsGoal < 0 {
		return nil, common.NewValidationError("Savings goal cannot be negative")
	}

	if _, err := s.GetProfile(ctx, id); err != nil {
		return nil, err
	}

	user, err := s.users.UpdateProfile(ctx, id.Email, upd, s.now().UTC())
	if err != nil {
		return nil, s.storeError(ctx, "update profile failed", err)
	}

	p := user.Public()
	return &p, nil
}

// storeError passes common.ErrNotFound through and turns anything else into
// common.ErrStoreUnavailable.
func (s *UserService) storeError(ctx context.Context, msg string, err error) error {
	if errors.Is(err, common.ErrNotFound) {
		return common.ErrNotFound
	}
	s.logger.Error(ctx, msg, "error", err)
	return fmt.Errorf("%w: %w", common.ErrStoreUnavailable, err)
}
