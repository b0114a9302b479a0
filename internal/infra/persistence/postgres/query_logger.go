package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"coderr/config"
	deliverycontext "coderr/internal/delivery/context"
	"coderr/internal/errors"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// queryLogger routes GORM output through the request scoped slog logger so
// that every statement carries the request id of the HTTP call that issued it.
type queryLogger struct {
	logger        *slog.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
	now           func() time.Time
}

func newQueryLogger(base *slog.Logger, cfg *config.Config) *queryLogger {
	l := &queryLogger{
		logger: base,
		level:  gormlogger.Warn,
		now:    time.Now,
	}
	if cfg == nil {
		return l
	}
	if cfg.Env.Debug {
		l.level = gormlogger.Info
	}
	if cfg.Database != nil {
		l.slowThreshold = cfg.Database.SlowQueryThreshold
	}

	return l
}

func (l *queryLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cloned := *l
	cloned.level = level

	return &cloned
}

func (l *queryLogger) Info(ctx context.Context, msg string, args ...any) {
	l.message(ctx, gormlogger.Info, slog.LevelInfo, msg, args)
}

func (l *queryLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.message(ctx, gormlogger.Warn, slog.LevelWarn, msg, args)
}

func (l *queryLogger) Error(ctx context.Context, msg string, args ...any) {
	l.message(ctx, gormlogger.Error, slog.LevelError, msg, args)
}

func (l *queryLogger) message(ctx context.Context, enabledAt gormlogger.LogLevel, level slog.Level, msg string, args []any) {
	if l.logger == nil || l.level < enabledAt {
		return
	}

	deliverycontext.GetLoggerOrDefault(ctx, l.logger).LogAttrs(ctx, level, "Database message",
		slog.String("message", fmt.Sprintf(msg, args...)),
	)
}

// Trace classifies a finished statement. Missing rows, constraint violations
// and statements cancelled with their request only show up at debug level.
func (l *queryLogger) Trace(ctx context.Context, begin time.Time, sqlAndRows func() (string, int64), err error) {
	if l.logger == nil || l.level == gormlogger.Silent {
		return
	}

	elapsed := l.now().Sub(begin)
	level, msg, ok := l.classify(elapsed, err)
	if !ok {
		return
	}

	query, rows := sqlAndRows()
	attrs := []slog.Attr{
		slog.Duration("elapsed", elapsed),
		slog.Int64("rows", rows),
		slog.String("sql", query),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}

	deliverycontext.GetLoggerOrDefault(ctx, l.logger).LogAttrs(ctx, level, msg, attrs...)
}

func (l *queryLogger) classify(elapsed time.Duration, err error) (slog.Level, string, bool) {
	switch {
	case err != nil && expectedQueryError(err):
		return slog.LevelDebug, "Database query rejected", l.level >= gormlogger.Info
	case err != nil:
		return slog.LevelError, "Database query failed", l.level >= gormlogger.Error
	case l.slowThreshold > 0 && elapsed > l.slowThreshold:
		return slog.LevelWarn, "Database query slow", l.level >= gormlogger.Warn
	default:
		return slog.LevelDebug, "Database query", l.level >= gormlogger.Info
	}
}

func expectedQueryError(err error) bool {
	return errors.IsAny(err, gorm.ErrRecordNotFound, context.Canceled) ||
		isUniqueConstraintViolation(err) ||
		isForeignKeyConstraintViolation(err) ||
		isCheckConstraintViolation(err)
}
