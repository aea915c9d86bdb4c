package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/fintrack/internal/common"
	"github.com/dmitrijs2005/fintrack/internal/server/auth"
	"github.com/dmitrijs2005/fintrack/internal/server/models"
	"github.com/dmitrijs2005/fintrack/internal/server/services"
)

func (s *GRPCServer) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {

	res, err := s.users.Register(ctx, services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return authResponse(res), nil
}

func (s *GRPCServer) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {

	res, err := s.users.Login(ctx, services.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return authResponse(res), nil
}

func (s *GRPCServer) WhoAmI(ctx context.Context, _ *WhoAmIRequest) (*WhoAmIResponse, error) {

	id, ok := auth.IdentityFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	return &WhoAmIResponse{UserID: id.UserID, Email: id.Email}, nil
}

func (s *GRPCServer) GetProfile(ctx context.Context, _ *GetProfileRequest) (*models.PublicProfile, error) {

	id, ok := auth.IdentityFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	p, err := s.users.GetProfile(ctx, id)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return p, nil
}

func authResponse(res *services.AuthResult) *AuthResponse {
	return &AuthResponse{Token: res.Token, ExpiresAt: res.ExpiresAt, User: res.User}
}

// toStatus maps a service error onto a gRPC status with a fixed message.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	if msg, ok := common.ValidationMessage(err); ok {
		return status.Error(codes.InvalidArgument, msg)
	}

	switch {
	case errors.Is(err, common.ErrDuplicateIdentity):
		return status.Error(codes.AlreadyExists, "email already registered")
	case errors.Is(err, common.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, "invalid credentials")
	case errors.Is(err, common.ErrUnauthorized):
		return status.Error(codes.Unauthenticated, "unauthorized")
	case errors.Is(err, common.ErrNotFound):
		return status.Error(codes.NotFound, "user not found")
	}

	s.logger.Error(ctx, "call failed", "error", err)
	return status.Error(codes.Internal, "internal error")
}
