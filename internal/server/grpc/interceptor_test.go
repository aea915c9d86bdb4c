package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/fintrack/internal/common"
	"github.com/dmitrijs2005/fintrack/internal/logging"
	"github.com/dmitrijs2005/fintrack/internal/server/auth"
	"github.com/dmitrijs2005/fintrack/internal/server/metrics"
)

func newTestCodec(t *testing.T) *auth.TokenCodec {
	t.Helper()
	c, err := auth.NewTokenCodec([]byte("grpc-test-secret"), time.Hour)
	if err != nil {
		t.Fatalf("NewTokenCodec: %v", err)
	}
	return c
}

// helper to build server
func newInterceptorServer(t *testing.T, m *metrics.Metrics) (*GRPCServer, *auth.TokenCodec) {
	codec := newTestCodec(t)
	return NewGRPCServer("", logging.Nop(), nil, auth.NewAuthorizer(codec), m), codec
}

func withAuth(value string) context.Context {
	md := metadata.New(map[string]string{common.AuthorizationHeaderName: value})
	return metadata.NewIncomingContext(context.Background(), md)
}

func TestInterceptor_PublicMethodsSkipAuth(t *testing.T) {
	s, _ := newInterceptorServer(t, nil)

	for _, method := range []string{MethodRegister, MethodLogin} {
		called := false
		h := func(ctx context.Context, req any) (any, error) {
			called = true
			return "ok", nil
		}

		resp, err := s.accessTokenInterceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: method}, h)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", method, err)
		}
		if !called || resp != "ok" {
			t.Fatalf("%s: handler not called", method)
		}
	}
}

func TestInterceptor_MissingToken(t *testing.T) {
	s, _ := newInterceptorServer(t, nil)

	h := func(ctx context.Context, req any) (any, error) {
		t.Fatal("handler should not be called when token missing")
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: MethodWhoAmI}, h)
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", status.Code(err))
	}
}

func TestInterceptor_InvalidToken(t *testing.T) {
	s, _ := newInterceptorServer(t, nil)

	h := func(ctx context.Context, req any) (any, error) {
		t.Fatal("handler should not be called for invalid token")
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(withAuth("Bearer not-a-valid-jwt"), nil, &grpc.UnaryServerInfo{FullMethod: MethodGetProfile}, h)
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", status.Code(err))
	}
	if msg := status.Convert(err).Message(); msg != "unauthorized" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestInterceptor_ValidTokenPutsIdentityInContext(t *testing.T) {
	reg := prometheus.NewRegistry()
	s, codec := newInterceptorServer(t, metrics.New(reg))

	token, _, err := codec.Issue(auth.Identity{UserID: "usr_1", Email: "ana@x.com"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	var got auth.Identity
	h := func(ctx context.Context, req any) (any, error) {
		got, _ = auth.IdentityFromContext(ctx)
		return "ok", nil
	}

	if _, err := s.accessTokenInterceptor(withAuth("Bearer "+token), nil, &grpc.UnaryServerInfo{FullMethod: MethodWhoAmI}, h); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.UserID != "usr_1" || got.Email != "ana@x.com" {
		t.Fatalf("unexpected identity: %+v", got)
	}

	if n, err := testutil.GatherAndCount(reg, "fintrack_auth_decisions_total"); err != nil || n != 1 {
		t.Fatalf("expected one decision series, got %d (%v)", n, err)
	}
}
