package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/smartstore/store-system/internal/api"
	"github.com/smartstore/store-system/internal/api/handler"
	"github.com/smartstore/store-system/internal/core/domain"
	"github.com/smartstore/store-system/internal/core/ports"
	"github.com/smartstore/store-system/internal/core/repository"
	"github.com/smartstore/store-system/internal/core/security"
	"github.com/smartstore/store-system/internal/core/service"
	"github.com/smartstore/store-system/internal/infrastructure/db/memory"
	"github.com/smartstore/store-system/internal/infrastructure/db/mongo"
	"github.com/smartstore/store-system/internal/infrastructure/db/redis"
	"github.com/smartstore/store-system/internal/pkg/config"
)

const shutdownTimeout = 10 * time.Second

// Server wraps the echo instance and the backend it was built on.
type Server struct {
	echo   *echo.Echo
	addr   string
	dm     ports.DataManager
	closer func(context.Context) error
	logger zerolog.Logger
}

// New opens the configured backend, seeds the admin account and builds the router.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Server, error) {
	dm, closer, err := openDataManager(ctx, cfg)
	if err != nil {
		return nil, err
	}

	authService := service.NewAuthService(
		repository.NewUserRepository(dm),
		security.NewBcryptHasherWithCost(cfg.BcryptCost),
		logger.With().Str("component", "auth").Logger(),
	)
	storeService := service.NewStoreService(
		repository.NewStoreRepository(dm),
		dm,
		dm,
		logger.With().Str("component", "stores").Logger(),
	)

	if err := seedAdmin(ctx, authService, cfg.Seed, logger); err != nil {
		_ = closer(context.Background())
		return nil, err
	}

	e := api.NewRouter(api.Dependencies{
		Auth:   authService,
		Stores: storeService,
		Health: []handler.Pinger{dm},
		Logger: logger,
	})

	logger.Info().Str("backend", dm.Name()).Msg("data manager ready")

	return &Server{
		echo:   e,
		addr:   ":" + cfg.Port,
		dm:     dm,
		closer: closer,
		logger: logger,
	}, nil
}

func openDataManager(ctx context.Context, cfg *config.Config) (ports.DataManager, func(context.Context) error, error) {
	switch cfg.Storage {
	case config.BackendMongo:
		dm, err := mongo.Open(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, nil, err
		}
		return dm, dm.Close, nil
	case config.BackendRedis:
		dm, err := redis.Open(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB, KeyPrefix: cfg.Redis.KeyPrefix})
		if err != nil {
			return nil, nil, err
		}
		return dm, func(context.Context) error { return dm.Close() }, nil
	case config.BackendMemory:
		return memory.NewDataManager(), func(context.Context) error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage)
	}
}

// seedAdmin registers the configured ADMIN account unless it already exists.
func seedAdmin(ctx context.Context, auth ports.AuthService, seed config.SeedConfig, logger zerolog.Logger) error {
	if !seed.Enabled() {
		return nil
	}
	_, err := auth.RegisterUserWithRole(ctx, seed.Email, seed.Password, seed.Name, string(domain.RoleAdmin))
	switch {
	case err == nil:
		logger.Info().Str("email", seed.Email).Msg("admin account seeded")
		return nil
	case errors.Is(err, domain.ErrUserExists):
		logger.Debug().Str("email", seed.Email).Msg("admin account already present")
		return nil
	default:
		return fmt.Errorf("seed admin: %w", err)
	}
}

// Handler exposes the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.addr).Str("backend", s.dm.Name()).Msg("http server listening")
		if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			_ = s.closer(context.Background())
			return err
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info().Msg("shutting down")
	err := s.echo.Shutdown(shutdownCtx)
	if cerr := s.closer(shutdownCtx); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
