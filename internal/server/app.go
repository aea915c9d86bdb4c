// Package server wires the FinTrack components together and runs the HTTP
// and gRPC servers until the process is asked to stop.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmitrijs2005/fintrack/internal/logging"
	"github.com/dmitrijs2005/fintrack/internal/server/auth"
	"github.com/dmitrijs2005/fintrack/internal/server/config"
	"github.com/dmitrijs2005/fintrack/internal/server/metrics"
	"github.com/dmitrijs2005/fintrack/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/fintrack/internal/server/services"

	gs "github.com/dmitrijs2005/fintrack/internal/server/grpc"
	hs "github.com/dmitrijs2005/fintrack/internal/server/http"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	repos          repomanager.RepositoryManager
	registry       *prometheus.Registry
	metrics        *metrics.Metrics
	authorizer     *auth.Authorizer
	userService    *services.UserService
	expenseService *services.ExpenseService
}

// newRepositoryManager is a seam for tests.
var newRepositoryManager = repomanager.New

// NewApp builds every component from c. Logs go to w as JSON.
func NewApp(ctx context.Context, c *config.Config, w io.Writer) (*App, error) {

	logger := logging.NewJSONLogger(w, c.LogLevel)
	logger.Info(ctx, "configuration loaded", "config", c)

	codec, err := auth.NewTokenCodec([]byte(c.SecretKey), c.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("token codec: %w", err)
	}

	repos, err := newRepositoryManager(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	var (
		reg *prometheus.Registry
		m   *metrics.Metrics
	)
	if c.MetricsEnabled {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m = metrics.New(reg)
	}

	hasher := auth.NewHasher(c.BcryptCost)

	return &App{
		config:         c,
		logger:         logger,
		repos:          repos,
		registry:       reg,
		metrics:        m,
		authorizer:     auth.NewAuthorizer(codec),
		userService:    services.NewUserService(repos.Users(), hasher, codec, logger.With("module", "users"), m),
		expenseService: services.NewExpenseService(repos.Expenses(), logger.With("module", "expenses")),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) httpServer() *hs.HTTPServer {
	opts := hs.Options{
		Address:        app.config.HTTPAddr,
		AllowedOrigins: app.config.CORSAllowedOrigins,
		Users:          app.userService,
		Expenses:       app.expenseService,
		Authorizer:     app.authorizer,
		Metrics:        app.metrics,
		Logger:         app.logger,
	}
	if app.registry != nil {
		opts.Gatherer = app.registry
	}
	return hs.NewHTTPServer(opts)
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.httpServer().Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.GRPCAddr, app.logger, app.userService, app.authorizer, app.metrics)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is canceled, a termination signal arrives or one of
// the servers fails, then closes the storage backend.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.config.GRPCAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startGRPCServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, "storage close failed", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
}
