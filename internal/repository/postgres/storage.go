package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/nomindnick/worktracker-v1/internal/config"
	"github.com/nomindnick/worktracker-v1/internal/logger"
	"github.com/nomindnick/worktracker-v1/internal/metrics"
	repo "github.com/nomindnick/worktracker-v1/internal/repository"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

const defaultSlowQuery = 100 * time.Millisecond

type Storage struct {
	pool      *pgxpool.Pool
	slowQuery time.Duration
}

func New(ctx context.Context, cfg config.DatabaseConfig) (*Storage, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		logger.Error("Repository: failed to parse database config", err)
		return nil, fmt.Errorf("parsing database config: %w", err)
	}

	if cfg.MaxConnections > 0 {
		poolConfig.MaxConns = cfg.MaxConnections
	}
	if cfg.MinConnections > 0 {
		poolConfig.MinConns = cfg.MinConnections
	}
	if cfg.IdleTimeout > 0 {
		poolConfig.MaxConnIdleTime = cfg.IdleTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Error("Repository: failed to create pool", err)
		return nil, fmt.Errorf("creating pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		logger.Error("Repository: ping failed", err)
		return nil, fmt.Errorf("ping: %w", err)
	}

	slowQuery := cfg.SlowQueryThreshold
	if slowQuery <= 0 {
		slowQuery = defaultSlowQuery
	}

	logger.Info("Repository: connected to PostgreSQL")
	return &Storage{pool: pool, slowQuery: slowQuery}, nil
}

func (s *Storage) Close() {
	s.pool.Close()
	logger.Info("Repository: closed all PostgreSQL connections")
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	defer s.observe("ping", "", time.Now())

	if err := s.pool.Ping(ctx); err != nil {
		logger.Error("Repository: ping failed", err)
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Migrate applies every pending embedded migration.
func (s *Storage) Migrate() error {
	m, err := s.migrator()
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Error("Repository: migration failed", err)
		return fmt.Errorf("applying migrations: %w", err)
	}

	version, _, _ := m.Version()
	logger.Info("Repository: migrations applied", zap.Uint("version", version))
	return nil
}

// Down rolls back every migration.
func (s *Storage) Down() error {
	m, err := s.migrator()
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Error("Repository: rollback failed", err)
		return fmt.Errorf("rolling back migrations: %w", err)
	}
	logger.Info("Repository: migrations rolled back")
	return nil
}

func (s *Storage) migrator() (*migrate.Migrate, error) {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("opening embedded migrations: %w", err)
	}

	driver, err := pgxmigrate.WithInstance(stdlib.OpenDBFromPool(s.pool), &pgxmigrate.Config{})
	if err != nil {
		return nil, fmt.Errorf("creating migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "pgx5", driver)
	if err != nil {
		return nil, fmt.Errorf("creating migrator: %w", err)
	}
	return m, nil
}

// observe records the duration of one query and logs it when slow.
func (s *Storage) observe(operation, table string, start time.Time) {
	elapsed := time.Since(start)
	metrics.RecordDBQueryDuration(operation, table, elapsed)

	if elapsed > s.slowQuery {
		metrics.IncrementSlowQuery(operation, table)
		logger.Warn("Repository: slow query",
			zap.String("operation", operation),
			zap.String("table", table),
			zap.Duration("ms", elapsed))
	}
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return repo.ErrNotFound
	}
	return err
}

// execOne runs a statement that must touch exactly one row.
func (s *Storage) execOne(ctx context.Context, query string, args ...any) error {
	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}
