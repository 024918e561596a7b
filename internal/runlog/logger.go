package runlog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/mattn/go-colorable"
	"gorm.io/gorm/logger"

	"github.com/alex65536/tsrand/internal/util/slogx"
)

type gormLogger struct {
	log  *slog.Logger
	slow time.Duration
}

func newLogger(srcLog *slog.Logger, o Options) logger.Interface {
	if o.Debug {
		// Debug mode prints every statement with gorm's own colored logger.
		return logger.New(
			log.New(colorable.NewColorableStderr(), "", log.LstdFlags),
			logger.Config{
				LogLevel:                  logger.Info,
				IgnoreRecordNotFoundError: false,
				Colorful:                  true,
			},
		)
	}
	return &gormLogger{
		log:  srcLog.With(slog.String("component", "runlog")),
		slow: o.SlowThreshold,
	}
}

func (l *gormLogger) LogMode(logger.LogLevel) logger.Interface {
	return l
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...any) {
	l.log.DebugContext(ctx, "gorm info", slog.String("msg", fmt.Sprintf(msg, data...)))
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...any) {
	l.log.WarnContext(ctx, "gorm warn", slog.String("msg", fmt.Sprintf(msg, data...)))
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...any) {
	l.log.ErrorContext(ctx, "gorm error", slog.String("msg", fmt.Sprintf(msg, data...)))
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	switch {
	case err != nil && !errors.Is(err, logger.ErrRecordNotFound):
		sql, rows := fc()
		l.log.ErrorContext(ctx, "sql error",
			slog.Duration("elapsed", elapsed),
			slogx.Err(err),
			slog.String("sql", sql),
			slog.Int64("rows", rows),
		)
	case elapsed > l.slow:
		sql, rows := fc()
		l.log.WarnContext(ctx, "slow sql",
			slog.Duration("elapsed", elapsed),
			slog.String("sql", sql),
			slog.Int64("rows", rows),
		)
	}
}
