package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/pennywise/pennywise-api/config"
	schedrunner "github.com/pennywise/pennywise-api/internal/adapters/scheduler"
	"github.com/pennywise/pennywise-api/internal/data"
	"github.com/pennywise/pennywise-api/internal/graph"
	httpx "github.com/pennywise/pennywise-api/internal/http"
	"github.com/pennywise/pennywise-api/internal/service"
)

// ServiceContainer holds the application services shared by the HTTP server
// and the recurring scheduler.
type ServiceContainer struct {
	Auth         *service.AuthService
	Users        *service.UserService
	Transactions *service.TransactionService
	Recurring    *service.RecurringService
}

// ServiceDeps contains the infrastructure dependencies for building services.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices wires repositories and services from infrastructure handles.
func NewServices(ctx context.Context, deps ServiceDeps) (ServiceContainer, error) {
	if deps.Config == nil {
		return ServiceContainer{}, errors.New("config is required")
	}
	if deps.DB == nil {
		return ServiceContainer{}, errors.New("database handle is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	userRepo := data.NewUserRepo(deps.DB)
	txnRepo := data.NewTransactionRepo(deps.DB)
	ruleRepo := data.NewRecurringRuleRepo(deps.DB)

	authSvc, err := BuildAuthService(ctx, AuthConfig{
		Auth:        deps.Config.Auth,
		Users:       userRepo,
		RedisClient: deps.RedisClient,
		Logger:      logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build auth service: %w", err)
	}

	userSvc := service.NewUserService(service.UserServiceOptions{
		Users:  userRepo,
		Auth:   authSvc,
		Logger: logger,
	})
	txnSvc := service.NewTransactionService(service.TransactionServiceOptions{
		Transactions: txnRepo,
		Logger:       logger,
	})
	recurringSvc := service.NewRecurringService(service.RecurringServiceOptions{
		Rules:        ruleRepo,
		Transactions: txnRepo,
		TickBatch:    deps.Config.Scheduler.BatchSize,
		Logger:       logger,
	})

	return ServiceContainer{
		Auth:         authSvc,
		Users:        userSvc,
		Transactions: txnSvc,
		Recurring:    recurringSvc,
	}, nil
}

// Run starts the enabled services and blocks until the context is cancelled
// or a service fails. The HTTP server shuts down gracefully on exit.
func Run(ctx context.Context, deps ServiceDeps, services ServiceContainer) error {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	enabled, err := deps.Config.GetEnabledServices()
	if err != nil {
		return fmt.Errorf("invalid service configuration: %w", err)
	}

	group, ctx := errgroup.WithContext(ctx)

	if enabled[config.ServiceModeHTTP] {
		server, buildErr := buildHTTPServer(deps.Config, services, logger)
		if buildErr != nil {
			return buildErr
		}

		group.Go(func() error {
			logger.Info("starting HTTP server", "addr", server.Addr)
			if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", serveErr)
			}
			return nil
		})
		group.Go(func() error {
			<-ctx.Done()
			logger.Info("shutting down HTTP server")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
				return fmt.Errorf("shutdown http server: %w", shutdownErr)
			}
			logger.Info("HTTP server stopped")
			return nil
		})
	}

	if enabled[config.ServiceModeScheduler] {
		runner, runnerErr := schedrunner.NewRunner(schedrunner.RunnerOptions{
			Ticker:   services.Recurring,
			Interval: deps.Config.Scheduler.Interval,
			Logger:   logger,
		})
		if runnerErr != nil {
			return fmt.Errorf("create scheduler runner: %w", runnerErr)
		}

		group.Go(func() error {
			return runner.Run(ctx)
		})
	}

	return group.Wait()
}

func buildHTTPServer(cfg *config.AppConfig, services ServiceContainer, logger *slog.Logger) (*http.Server, error) {
	resolver := graph.NewResolver(graph.ResolverOptions{
		Auth:         services.Auth,
		Users:        services.Users,
		Transactions: services.Transactions,
		Recurring:    services.Recurring,
		Logger:       logger,
	})
	schema, err := graph.NewSchema(resolver)
	if err != nil {
		return nil, fmt.Errorf("build graphql schema: %w", err)
	}

	handler := httpx.NewRouter(httpx.RouterServices{
		GraphQL:           graph.NewHandler(schema),
		Auth:              services.Auth,
		CookieName:        cfg.Auth.CookieName,
		CORSAllowedOrigin: cfg.HTTP.CORSAllowedOrigin,
		StaticDir:         cfg.HTTP.StaticDir,
		Logger:            logger,
	})

	addr := cfg.HTTP.Addr
	if addr == "" {
		addr = ":8080"
	}

	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}, nil
}
