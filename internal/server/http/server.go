// Package http exposes the FinTrack API over HTTP using echo.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrijs2005/fintrack/internal/logging"
	"github.com/dmitrijs2005/fintrack/internal/server/auth"
	"github.com/dmitrijs2005/fintrack/internal/server/metrics"
	"github.com/dmitrijs2005/fintrack/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

// Options configures an HTTPServer. Metrics and Gatherer may be nil; the
// /metrics route is registered only when Gatherer is set.
type Options struct {
	Address        string
	AllowedOrigins []string
	Users          *services.UserService
	Expenses       *services.ExpenseService
	Authorizer     *auth.Authorizer
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	Logger         logging.Logger
}

type HTTPServer struct {
	address string
	echo    *echo.Echo
	logger  logging.Logger
}

func NewHTTPServer(o Options) *HTTPServer {
	logger := o.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	logger = logger.With("module", "http_server")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(logger)

	e.Use(RequestID())
	e.Use(RequestLogger(logger, o.Metrics))
	e.Use(Recovery(logger))
	e.Use(CORS(o.AllowedOrigins))

	h := &handlers{users: o.Users, expenses: o.Expenses}
	requireAuth := RequireAuth(o.Authorizer, logger, o.Metrics)

	e.GET("/healthz", healthz)
	if o.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(o.Gatherer, promhttp.HandlerOpts{})))
	}

	e.POST("/auth/register", h.register)
	e.POST("/auth/login", h.login)

	e.GET("/user/profile", h.getProfile, requireAuth)
	e.PUT("/user/profile", h.updateProfile, requireAuth)

	e.GET("/expenses", h.listExpenses, requireAuth)
	e.POST("/expenses", h.createExpense, requireAuth)
	e.PUT("/expenses/:id", h.updateExpense, requireAuth)
	e.DELETE("/expenses/:id", h.deleteExpense, requireAuth)

	return &HTTPServer{address: o.Address, echo: e, logger: logger}
}

// Handler returns the configured router.
func (s *HTTPServer) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is canceled and then shuts the server down,
// letting in-flight requests finish.
func (s *HTTPServer) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "http shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.echo.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
