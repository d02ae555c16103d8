package app

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/Anas-en/College-event-management/internal/config"
	"github.com/Anas-en/College-event-management/internal/metrics"
	"github.com/Anas-en/College-event-management/internal/repository"
	"github.com/Anas-en/College-event-management/internal/seed"
	"github.com/Anas-en/College-event-management/internal/service"
	"github.com/Anas-en/College-event-management/internal/service/ports"
	"github.com/Anas-en/College-event-management/internal/store"
	"github.com/Anas-en/College-event-management/migrations"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/logger"
)

type backend interface {
	store.Backend
	Close() error
}

// Core is the storage and service graph shared by the HTTP server and eventctl.
type Core struct {
	Store         *store.Store
	Events        *service.EventService
	Registrations *service.RegistrationService
	Metrics       *metrics.Recorder
	Location      *time.Location

	backend backend
}

// NewCore opens the configured backend and wires the services on top of it.
// notifier may be nil.
func NewCore(
	ctx context.Context,
	cfg *config.Config,
	log logger.Logger,
	notifier ports.RegistrationNotifier,
) (*Core, error) {
	loc, err := cfg.Calendar.Location()
	if err != nil {
		return nil, err
	}

	b, err := openBackend(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", cfg.Storage.Driver, err)
	}

	rec := metrics.New()
	st := store.New(
		b,
		seed.New(cfg.Seed.URL, cfg.Seed.File, cfg.Seed.Timeout),
		rec,
		log,
	)

	var mu sync.Mutex
	c := &Core{
		Store:    st,
		Metrics:  rec,
		Location: loc,
		backend:  b,
	}
	c.Events = service.NewEventService(st, &mu, loc, cfg.Registrations.CascadeOnEventDelete, log)
	c.Registrations = service.NewRegistrationService(st, &mu, notifier, log)

	return c, nil
}

func (c *Core) Close() error {
	return c.backend.Close()
}

func openBackend(ctx context.Context, cfg *config.Config, log logger.Logger) (backend, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		log.Warn("using in-memory storage, data is lost on exit")
		return repository.NewMemoryRepo(), nil

	case config.DriverSQLite:
		r, err := repository.NewSQLiteRepo(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.LogAttrs(ctx, logger.InfoLevel, "sqlite storage opened",
			logger.String("path", cfg.Storage.SQLitePath),
		)
		return r, nil

	case config.DriverPostgres:
		if err := runMigrations(ctx, cfg.Postgres.DSN(), log); err != nil {
			return nil, fmt.Errorf("migrations: %w", err)
		}
		db, err := openPostgres(ctx, &cfg.Postgres, log)
		if err != nil {
			return nil, err
		}
		return repository.NewPostgresRepo(db), nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func openPostgres(ctx context.Context, cfg *config.PostgresConfig, log logger.Logger) (*dbpg.DB, error) {
	db, err := dbpg.New(
		cfg.DSN(),
		nil,
		&dbpg.Options{
			MaxOpenConns: cfg.MaxOpenConns,
			MaxIdleConns: cfg.MaxIdleConns,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := db.Master.PingContext(ctx); err != nil {
		db.Master.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	db.Master.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	log.LogAttrs(ctx, logger.InfoLevel, "database connected",
		logger.String("host", cfg.Host),
		logger.Int("port", cfg.Port),
		logger.String("database", cfg.Database),
	)
	return db, nil
}

func runMigrations(ctx context.Context, dsn string, log logger.Logger) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("open db for migrations: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	log.Info("migrations applied successfully")
	return nil
}
