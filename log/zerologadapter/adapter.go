// Package zerologadapter provides a logger that writes to a github.com/rs/zerolog.
package zerologadapter

import (
	"context"

	"github.com/pgfield/pgfield/tracelog"
	"github.com/rs/zerolog"
)

type Logger struct {
	logger     zerolog.Logger
	withFunc   func(context.Context, zerolog.Context) zerolog.Context
	skipModule bool
}

// Option configures a Logger.
type Option func(logger *Logger)

// WithContextFunc adds possibility to get request scoped values from the ctx.Context before logging lines.
func WithContextFunc(withFunc func(context.Context, zerolog.Context) zerolog.Context) Option {
	return func(logger *Logger) {
		logger.withFunc = withFunc
	}
}

// WithoutModule disables adding module:pgfield to the default logger context.
func WithoutModule() Option {
	return func(logger *Logger) {
		logger.skipModule = true
	}
}

// NewLogger accepts a zerolog.Logger as input and returns a new tracelog.Logger.
func NewLogger(logger zerolog.Logger, options ...Option) *Logger {
	l := Logger{
		logger: logger,
	}
	for _, opt := range options {
		opt(&l)
	}
	if !l.skipModule {
		l.logger = l.logger.With().Str("module", "pgfield").Logger()
	}
	return &l
}

func (pl *Logger) Log(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]interface{}) {
	var zlevel zerolog.Level
	switch level {
	case tracelog.LogLevelNone:
		zlevel = zerolog.NoLevel
	case tracelog.LogLevelError:
		zlevel = zerolog.ErrorLevel
	case tracelog.LogLevelWarn:
		zlevel = zerolog.WarnLevel
	case tracelog.LogLevelInfo:
		zlevel = zerolog.InfoLevel
	case tracelog.LogLevelDebug:
		zlevel = zerolog.DebugLevel
	case tracelog.LogLevelTrace:
		zlevel = zerolog.TraceLevel
	default:
		zlevel = zerolog.DebugLevel
	}

	zctx := pl.logger.With()
	if pl.withFunc != nil {
		zctx = pl.withFunc(ctx, zctx)
	}

	pgflog := zctx.Fields(data).Logger()
	pgflog.WithLevel(zlevel).Msg(msg)
}
