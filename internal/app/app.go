// Package app assembles the vendor screening services from configuration.
// The server and the CLI share it so both run against the same stack.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"vendorscreen/internal/audit"
	"vendorscreen/internal/audit/kafka"
	auditstore "vendorscreen/internal/audit/store"
	"vendorscreen/internal/evidence/cache"
	evmetrics "vendorscreen/internal/evidence/metrics"
	"vendorscreen/internal/evidence/providers"
	"vendorscreen/internal/evidence/providers/g2b"
	"vendorscreen/internal/evidence/providers/nts"
	"vendorscreen/internal/evidence/providers/opendart"
	"vendorscreen/internal/platform/config"
	"vendorscreen/internal/platform/postgres"
	redisclient "vendorscreen/internal/platform/redis"
	screeningmetrics "vendorscreen/internal/screening/metrics"
	screeningservice "vendorscreen/internal/screening/service"
	screeningstore "vendorscreen/internal/screening/store"
	vendorservice "vendorscreen/internal/vendors/service"
	vendorstore "vendorscreen/internal/vendors/store"
	txcontext "vendorscreen/pkg/platform/tx"
)

const outboxSize = 256

// App holds the wired services and the connections behind them.
type App struct {
	Vendors   *vendorservice.Service
	Screening *screeningservice.Service

	// Worker drains the audit outbox into Kafka. Nil without brokers.
	Worker *audit.Worker

	db    *sql.DB
	redis *redisclient.Client
	sink  *kafka.Sink
}

type options struct {
	metrics bool
	migrate bool
}

type Option func(*options)

// WithMetrics registers the Prometheus collectors. Only one App per process
// may enable it.
func WithMetrics() Option {
	return func(o *options) { o.metrics = true }
}

// WithMigrations applies pending schema migrations after connecting.
func WithMigrations() Option {
	return func(o *options) { o.migrate = true }
}

// New connects the configured backends and wires the services. Without
// DATABASE_URL every store is in memory.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	a := &App{}

	registry, err := newRegistry(cfg.Evidence, logger)
	if err != nil {
		return nil, err
	}

	var (
		vendors      vendorservice.Store
		runs         screeningservice.Store
		auditEntries audit.Store
		finder       cache.SnapshotFinder
		runner       screeningservice.TxRunner = txcontext.Sequential{}
	)
	if cfg.Storage.DatabaseURL != "" {
		db, err := postgres.Open(ctx, cfg.Storage.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.db = db
		if o.migrate {
			if err := postgres.Migrate(ctx, db); err != nil {
				_ = a.Close()
				return nil, err
			}
		}
		pg := screeningstore.NewPostgres(db)
		vendors = vendorstore.NewPostgres(db)
		runs = pg
		auditEntries = auditstore.NewPostgres(db)
		finder = pg
		runner = txcontext.NewSQLRunner(db)
	} else {
		logger.WarnContext(ctx, "DATABASE_URL not set, using in-memory stores")
		mem := screeningstore.NewInMemoryStore()
		vendors = vendorstore.NewInMemory()
		runs = mem
		auditEntries = auditstore.NewInMemoryStore()
		finder = mem
	}

	if cfg.Storage.RedisURL != "" {
		client, err := redisclient.New(ctx, cfg.Storage.RedisURL)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.redis = client
		finder = cache.NewRedisIndex(client.Client, finder, cfg.Evidence.CacheWindow, logger)
	}

	publisherOpts := []audit.Option{audit.WithLogger(logger)}
	if len(cfg.Audit.KafkaBrokers) > 0 {
		sink, err := kafka.New(cfg.Audit.KafkaBrokers, cfg.Audit.Topic)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.sink = sink
		if err := sink.EnsureTopic(ctx); err != nil {
			logger.WarnContext(ctx, "failed to ensure audit topic",
				"topic", cfg.Audit.Topic,
				"error", err,
			)
		}
		outbox := make(chan *audit.Entry, outboxSize)
		a.Worker = audit.NewWorker(sink, outbox, logger)
		publisherOpts = append(publisherOpts, audit.WithOutbox(outbox))
	}
	publisher := audit.NewPublisher(auditEntries, publisherOpts...)

	cacheOpts := []cache.Option{cache.WithWindow(cfg.Evidence.CacheWindow), cache.WithLogger(logger)}
	screeningOpts := []screeningservice.Option{
		screeningservice.WithLogger(logger),
		screeningservice.WithTxRunner(runner),
	}
	if o.metrics {
		em := evmetrics.New()
		cacheOpts = append(cacheOpts, cache.WithMetrics(em))
		screeningOpts = append(screeningOpts,
			screeningservice.WithMetrics(screeningmetrics.New()),
			screeningservice.WithEvidenceMetrics(em),
		)
	}

	a.Screening = screeningservice.New(vendors, runs, cache.New(finder, cacheOpts...), registry, publisher, screeningOpts...)
	a.Vendors = vendorservice.New(vendors, a.Screening,
		vendorservice.WithLogger(logger),
		vendorservice.WithAuditPublisher(publisher),
	)
	return a, nil
}

func newRegistry(cfg config.Evidence, logger *slog.Logger) (*providers.Registry, error) {
	registry, err := providers.NewRegistry(
		providers.Coalesce(nts.New(cfg.NTS, nts.WithLogger(logger))),
		providers.Coalesce(opendart.New(cfg.OpenDART, opendart.WithLogger(logger))),
		providers.Coalesce(g2b.New(cfg.G2B, g2b.WithLogger(logger))),
	)
	if err != nil {
		return nil, fmt.Errorf("register providers: %w", err)
	}
	if err := registry.Complete(); err != nil {
		return nil, err
	}
	return registry, nil
}

// Checks returns a health check per connected backend.
func (a *App) Checks() map[string]func(context.Context) error {
	checks := map[string]func(context.Context) error{}
	if a.db != nil {
		checks["postgres"] = a.db.PingContext
	}
	if a.redis != nil {
		checks["redis"] = a.redis.Health
	}
	if a.sink != nil {
		checks["kafka"] = a.sink.Ping
	}
	return checks
}

// DB returns the database pool, or nil when running in memory.
func (a *App) DB() *sql.DB { return a.db }

// Close releases every connection. Call it after the Worker has stopped.
func (a *App) Close() error {
	var errs []error
	if a.sink != nil {
		a.sink.Close()
	}
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}
