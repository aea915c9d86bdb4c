// Package grpc exposes the FinTrack authentication API over gRPC.
package grpc

import (
	"context"
	"net"

	"google.golang.org/grpc"

	"github.com/dmitrijs2005/fintrack/internal/logging"
	"github.com/dmitrijs2005/fintrack/internal/server/auth"
	"github.com/dmitrijs2005/fintrack/internal/server/metrics"
	"github.com/dmitrijs2005/fintrack/internal/server/services"
)

type GRPCServer struct {
	address    string
	users      *services.UserService
	authorizer *auth.Authorizer
	metrics    *metrics.Metrics
	logger     logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, us *services.UserService, az *auth.Authorizer, m *metrics.Metrics) *GRPCServer {
	if l == nil {
		l = logging.Nop()
	}
	return &GRPCServer{
		address:    a,
		logger:     l.With("module", "grpc_server"),
		users:      us,
		authorizer: az,
		metrics:    m,
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.accessTokenInterceptor))
	RegisterAuthServiceServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is canceled.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
