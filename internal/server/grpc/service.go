package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"

	"github.com/dmitrijs2005/fintrack/internal/server/models"
)

const serviceName = "fintrack.v1.AuthService"

// Full method names.
const (
	MethodRegister   = "/" + serviceName + "/Register"
	MethodLogin      = "/" + serviceName + "/Login"
	MethodWhoAmI     = "/" + serviceName + "/WhoAmI"
	MethodGetProfile = "/" + serviceName + "/GetProfile"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token     string               `json:"token"`
	ExpiresAt time.Time            `json:"expiresAt"`
	User      models.PublicProfile `json:"user"`
}

type WhoAmIRequest struct{}

type WhoAmIResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

type GetProfileRequest struct{}

// AuthServiceServer is implemented by GRPCServer.
type AuthServiceServer interface {
	Register(context.Context, *RegisterRequest) (*AuthResponse, error)
	Login(context.Context, *LoginRequest) (*AuthResponse, error)
	WhoAmI(context.Context, *WhoAmIRequest) (*WhoAmIResponse, error)
	GetProfile(context.Context, *GetProfileRequest) (*models.PublicProfile, error)
}

// unaryHandler adapts one typed method into a grpc.MethodDesc handler.
func unaryHandler[Req any, Resp any](fullMethod string, call func(AuthServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AuthServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(AuthServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var authServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*AuthServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unaryHandler(MethodRegister, AuthServiceServer.Register)},
		{MethodName: "Login", Handler: unaryHandler(MethodLogin, AuthServiceServer.Login)},
		{MethodName: "WhoAmI", Handler: unaryHandler(MethodWhoAmI, AuthServiceServer.WhoAmI)},
		{MethodName: "GetProfile", Handler: unaryHandler(MethodGetProfile, AuthServiceServer.GetProfile)},
	},
	Metadata: "fintrack/v1/auth.proto",
}

// RegisterAuthServiceServer registers impl with s.
func RegisterAuthServiceServer(s grpc.ServiceRegistrar, impl AuthServiceServer) {
	s.RegisterService(&authServiceDesc, impl)
}

// AuthServiceClient calls fintrack.v1.AuthService using the JSON codec.
type AuthServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAuthServiceClient(cc grpc.ClientConnInterface) *AuthServiceClient {
	return &AuthServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AuthServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, MethodRegister, in, opts)
}

func (c *AuthServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c.cc, MethodLogin, in, opts)
}

func (c *AuthServiceClient) WhoAmI(ctx context.Context, in *WhoAmIRequest, opts ...grpc.CallOption) (*WhoAmIResponse, error) {
	return invoke[WhoAmIResponse](ctx, c.cc, MethodWhoAmI, in, opts)
}

func (c *AuthServiceClient) GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*models.PublicProfile, error) {
	return invoke[models.PublicProfile](ctx, c.cc, MethodGetProfile, in, opts)
}
