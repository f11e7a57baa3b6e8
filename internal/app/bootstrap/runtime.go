package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	httpadapter "github.com/tasknest/taskd/internal/adapters/http"
	"github.com/tasknest/taskd/internal/adapters/postgres"
	"github.com/tasknest/taskd/internal/adapters/security"
	"github.com/tasknest/taskd/internal/application"
	"github.com/tasknest/taskd/internal/metrics"
)

type Runtime struct {
	cfg        Config
	logger     *slog.Logger
	httpServer *http.Server
	cleanupFn  func(context.Context)
}

func NewRuntime(ctx context.Context, configPath string) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)
	logger.Info("bootstrapping task service", "service_id", cfg.ServiceID, "http_port", cfg.HTTPPort)

	if cfg.UsingDefaultSecret() {
		logger.Warn("JWT_SECRET not configured, using the shipped placeholder; tokens are forgeable across deployments sharing it")
	}

	pool, err := postgres.Connect(ctx, cfg.DatabaseURL, cfg.MaxDBConns)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	sqlDB, err := pool.DB()
	if err != nil {
		return nil, fmt.Errorf("gorm sql db: %w", err)
	}

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	signer, err := security.NewJWTSigner(cfg.JWTSecret)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("init jwt signer: %w", err)
	}

	if cfg.SeedOnBoot {
		if err := postgres.Seed(ctx, pool, hasher); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("seed database: %w", err)
		}
	}

	repos := postgres.NewRepositories(pool)
	users := application.NewUserService(application.UserServiceDeps{
		Config: application.Config{TokenTTL: cfg.TokenTTL},
		Users:  repos.Users,
		Hasher: hasher,
		Signer: signer,
	})
	tasks := application.NewTaskService(application.TaskServiceDeps{
		Users: repos.Users,
		Tasks: repos.Tasks,
	})

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	handler := httpadapter.NewHandler(users, tasks, signer)
	router := httpadapter.NewRouter(handler, collector, registry)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Runtime{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpServer,
		cleanupFn: func(ctx context.Context) {
			_ = sqlDB.Close()
		},
	}, nil
}

// Run serves HTTP until a shutdown signal or a server failure, then
// drains within a bounded window.
func (r *Runtime) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		r.logger.Info("http server started", "addr", r.httpServer.Addr)
		if err := r.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		r.logger.Info("shutdown signal received")
	case err := <-errCh:
		r.logger.Error("server failure", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = r.httpServer.Shutdown(shutdownCtx)
	r.cleanupFn(shutdownCtx)
	return nil
}
