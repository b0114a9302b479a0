package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"coderr/config"
	"coderr/internal/domain/lifecycle"
	"coderr/internal/errors"
	"coderr/internal/infra/persistence/model"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the marketplace database. The connection is verified, the schema
// optionally migrated and pool monitoring started when the fx app starts.
func New(params Params) (*gorm.DB, error) {
	if params.Config.Postgres == nil {
		return nil, errors.New("postgres configuration is required")
	}

	db, err := pgLib.New(params.Config.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}
	// Multi-statement writes go through the transaction manager explicitly.
	db = db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		Logger:                 newQueryLogger(params.Logger, params.Config),
	})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	monitor := newPoolMonitor(params.Logger, sqlDB.Stats, params.Config.Database)
	monitorCtx, stopMonitor := context.WithCancel(context.Background())

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := prepare(ctx, db, sqlDB, params.Config.Env.AutoMigrate, params.Logger); err != nil {
				return err
			}
			go monitor.run(monitorCtx)

			return nil
		},
		OnStop: func(_ context.Context) error {
			stopMonitor()

			return errors.Wrap(sqlDB.Close(), "failed to close PostgreSQL")
		},
	})

	return db, nil
}

func prepare(ctx context.Context, db *gorm.DB, sqlDB *sql.DB, migrate bool, logger *slog.Logger) error {
	if err := sqlDB.PingContext(ctx); err != nil {
		return errors.Wrap(err, "failed to ping PostgreSQL")
	}
	if !migrate {
		return nil
	}
	if err := AutoMigrate(db.WithContext(ctx)); err != nil {
		return err
	}
	logger.Info("Database schema migrated", slog.Int("tables", len(model.All())))

	return nil
}

// AutoMigrate creates or updates every table of the marketplace schema.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.All()...); err != nil {
		return errors.Wrap(err, "failed to migrate schema")
	}

	return nil
}

// poolMonitor samples sql.DBStats and reports intervals in which callers had
// to wait for a free connection.
type poolMonitor struct {
	logger    *slog.Logger
	stats     func() sql.DBStats
	interval  time.Duration
	warnAfter time.Duration
}

func newPoolMonitor(logger *slog.Logger, stats func() sql.DBStats, cfg *config.DatabaseConfig) *poolMonitor {
	m := &poolMonitor{
		logger:    logger,
		stats:     stats,
		interval:  5 * time.Second,
		warnAfter: 50 * time.Millisecond,
	}
	if cfg != nil {
		if cfg.PoolMonitorInterval > 0 {
			m.interval = cfg.PoolMonitorInterval
		}
		if cfg.PoolWaitWarnThreshold > 0 {
			m.warnAfter = cfg.PoolWaitWarnThreshold
		}
	}

	return m
}

func (m *poolMonitor) run(ctx context.Context) {
	if m.logger == nil {
		return
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	prev := m.stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := m.stats()
			m.report(ctx, prev, cur)
			prev = cur
		}
	}
}

func (m *poolMonitor) report(ctx context.Context, prev, cur sql.DBStats) {
	waits := cur.WaitCount - prev.WaitCount
	if waits <= 0 {
		return
	}
	waited := cur.WaitDuration - prev.WaitDuration

	level := slog.LevelDebug
	if waited >= m.warnAfter {
		level = slog.LevelWarn
	}

	m.logger.LogAttrs(ctx, level, "Database pool wait",
		slog.Int64("waits", waits),
		slog.Duration("waited", waited),
		slog.Duration("avgWait", waited/time.Duration(waits)),
		slog.Int("maxOpenConns", cur.MaxOpenConnections),
		slog.Int("openConns", cur.OpenConnections),
		slog.Int("inUseConns", cur.InUse),
		slog.Int("idleConns", cur.Idle),
	)
}
