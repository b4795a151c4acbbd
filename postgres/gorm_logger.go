package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xy-planning-network/enums/logger"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const slowThreshold = 200 * time.Millisecond

// gormLogger routes GORM's logging through a logger.Logger.
type gormLogger struct {
	l     logger.Logger
	level gormlogger.LogLevel
}

var _ gormlogger.Interface = gormLogger{}

func newGORMLogger(l logger.Logger) gormLogger {
	gl := gormLogger{l: l, level: gormlogger.Warn}
	if l.LogLevel() == logger.LogLevelDebug {
		gl.level = gormlogger.Info
	}

	if sl, ok := l.(logger.SkipLogger); ok {
		// NOTE: skip past gormLogger and GORM's callbacks to the query's caller
		gl.l = sl.AddSkip(sl.Skip() + 1)
	}

	return gl
}

func (gl gormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	gl.level = level
	return gl
}

func (gl gormLogger) Info(_ context.Context, msg string, data ...any) {
	if gl.level >= gormlogger.Info {
		gl.l.Info(fmt.Sprintf(msg, data...), nil)
	}
}

func (gl gormLogger) Warn(_ context.Context, msg string, data ...any) {
	if gl.level >= gormlogger.Warn {
		gl.l.Warn(fmt.Sprintf(msg, data...), nil)
	}
}

func (gl gormLogger) Error(_ context.Context, msg string, data ...any) {
	if gl.level >= gormlogger.Error {
		gl.l.Error(fmt.Sprintf(msg, data...), nil)
	}
}

func (gl gormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if gl.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && gl.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		gl.l.Error("query failed", &logger.LogContext{
			Data:  map[string]any{"sql": sql, "rows": rows, "elapsed": elapsed.String()},
			Error: err,
		})

	case elapsed > slowThreshold && gl.level >= gormlogger.Warn:
		sql, rows := fc()
		gl.l.Warn("slow query", &logger.LogContext{
			Data: map[string]any{"sql": sql, "rows": rows, "elapsed": elapsed.String()},
		})

	case gl.level >= gormlogger.Info:
		sql, rows := fc()
		gl.l.Debug("query", &logger.LogContext{
			Data: map[string]any{"sql": sql, "rows": rows, "elapsed": elapsed.String()},
		})
	}
}
