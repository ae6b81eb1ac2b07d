package slogx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger routes gorm's query log through slog. Not-found errors are
// expected control flow and are never logged. Unique constraint failures are
// surfaced to callers as conflicts and only logged at debug.
type GormLogger struct {
	Logger        *slog.Logger
	SlowThreshold time.Duration
	Level         gormlogger.LogLevel
}

// NewGormLogger returns a GormLogger at warn level with a 200ms slow query
// threshold.
func NewGormLogger(logger *slog.Logger) *GormLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &GormLogger{
		Logger:        logger.With("component", "gorm"),
		SlowThreshold: 200 * time.Millisecond,
		Level:         gormlogger.Warn,
	}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *l
	cp.Level = level
	return &cp
}

func (l *GormLogger) Info(ctx context.Context, msg string, args ...any) {
	if l.Level >= gormlogger.Info {
		l.logger(ctx).InfoContext(ctx, fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, args ...any) {
	if l.Level >= gormlogger.Warn {
		l.logger(ctx).WarnContext(ctx, fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, args ...any) {
	if l.Level >= gormlogger.Error {
		l.logger(ctx).ErrorContext(ctx, fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.Level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && isUniqueViolation(err):
		sql, _ := fc()
		l.logger(ctx).DebugContext(ctx, "gorm_unique_violation",
			slog.String("sql", sql),
			slog.Any("error", err),
		)
	case err != nil && l.Level >= gormlogger.Error && !errors.Is(err, gormlogger.ErrRecordNotFound):
		sql, rows := fc()
		l.logger(ctx).ErrorContext(ctx, "gorm_query_failed",
			slog.String("sql", sql),
			slog.Int64("rows", rows),
			slog.Duration("elapsed", elapsed),
			slog.Any("error", err),
		)
	case l.SlowThreshold > 0 && elapsed > l.SlowThreshold && l.Level >= gormlogger.Warn:
		sql, rows := fc()
		l.logger(ctx).WarnContext(ctx, "gorm_slow_query",
			slog.String("sql", sql),
			slog.Int64("rows", rows),
			slog.Duration("elapsed", elapsed),
		)
	case l.Level >= gormlogger.Info:
		sql, rows := fc()
		l.logger(ctx).DebugContext(ctx, "gorm_query",
			slog.String("sql", sql),
			slog.Int64("rows", rows),
			slog.Duration("elapsed", elapsed),
		)
	}
}

// logger prefers the request-scoped logger so queries carry the req_id.
func (l *GormLogger) logger(ctx context.Context) *slog.Logger {
	if v, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return v.With("component", "gorm")
	}
	return l.Logger
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed")
}
