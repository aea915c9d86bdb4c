package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/fintrack/internal/common"
	"github.com/dmitrijs2005/fintrack/internal/server/auth"
)

// publicMethods are callable without a session token.
var publicMethods = map[string]bool{
	MethodRegister: true,
	MethodLogin:    true,
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {

	if publicMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	var header string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.AuthorizationHeaderName); len(values) > 0 {
			header = values[0]
		}
	}

	d := s.authorizer.Authorize(header)
	s.metrics.ObserveDecision("grpc", d.Allowed)
	if !d.Allowed {
		s.logger.Debug(ctx, "call denied", "method", info.FullMethod, "reason", d.Reason)
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	return handler(auth.WithIdentity(ctx, d.Identity), req)
}
