package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/nomindnick/worktracker-v1/internal/config"
	"github.com/nomindnick/worktracker-v1/internal/handlers"
	"github.com/nomindnick/worktracker-v1/internal/logger"
	"github.com/nomindnick/worktracker-v1/internal/middleware"
	"github.com/nomindnick/worktracker-v1/internal/repository/inmemory"
	"github.com/nomindnick/worktracker-v1/internal/repository/postgres"
	"github.com/nomindnick/worktracker-v1/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// Storage is a repository the app owns and must close.
type Storage interface {
	service.Repository
	Close()
}

type App struct {
	config     *config.Config
	server     *http.Server
	router     *chi.Mux
	repository Storage
	service    *service.WorklistService
	shutdowns  []func() // run in reverse order on Close
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

// Init builds the logger, storage, service and router. Close releases
// whatever Init managed to set up, even when it fails halfway.
func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("App: flushing logs")
		logger.Sync()
	})

	repo, err := a.openRepository(ctx)
	if err != nil {
		return err
	}
	a.repository = repo
	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("App: closing storage")
		repo.Close()
	})

	loc, err := a.config.Worklist.Location()
	if err != nil {
		return fmt.Errorf("loading timezone: %w", err)
	}
	a.service = service.NewWorklistService(repo, service.WithLocation(loc))

	a.router = a.newRouter(handlers.NewWorklistHandler(a.service))
	a.server = &http.Server{
		Addr:         a.config.GetServerAddr(),
		Handler:      otelhttp.NewHandler(a.router, "worktracker"),
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
	}

	logger.Info("App: initialized",
		zap.String("repository", a.config.Repository.Type),
		zap.String("timezone", loc.String()))
	return nil
}

func (a *App) openRepository(ctx context.Context) (Storage, error) {
	switch a.config.Repository.Type {
	case config.RepositoryPostgres:
		storage, err := postgres.New(ctx, a.config.Database)
		if err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		if err := storage.Migrate(); err != nil {
			storage.Close()
			return nil, fmt.Errorf("migrating database: %w", err)
		}
		return storage, nil
	case config.RepositoryInMemory:
		return inmemory.New(), nil
	default:
		return nil, fmt.Errorf("unknown repository type %q", a.config.Repository.Type)
	}
}

func (a *App) newRouter(h *handlers.WorklistHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: a.config.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIdHeader},
		ExposedHeaders: []string{middleware.RequestIdHeader, "Content-Disposition"},
		MaxAge:         300,
	}))
	r.Use(middleware.RateLimit(a.config.Server.RateLimit))

	r.Handle("/metrics", promhttp.Handler())
	h.Routes(r)
	return r
}

func (a *App) Router() http.Handler {
	return a.router
}

func (a *App) Service() *service.WorklistService {
	return a.service
}

// Run serves HTTP until ctx is cancelled, then shuts the server down
// gracefully within the configured timeout.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("App: server started", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serving http: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("App: shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

func (a *App) Close() {
	for _, shutdown := range slices.Backward(a.shutdowns) {
		shutdown()
	}
	a.shutdowns = nil
}
