// Package tracelog provides a tracer that logs Result builds and field conversions through a traditional logger.
package tracelog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/pgfield/pgfield"
)

// LogLevel represents the logging level. See LogLevel* constants for
// possible values.
type LogLevel int

// The values for log levels are chosen such that the zero value means that no
// log level was specified.
const (
	LogLevelTrace = LogLevel(6)
	LogLevelDebug = LogLevel(5)
	LogLevelInfo  = LogLevel(4)
	LogLevelWarn  = LogLevel(3)
	LogLevelError = LogLevel(2)
	LogLevelNone  = LogLevel(1)
)

func (ll LogLevel) String() string {
	switch ll {
	case LogLevelTrace:
		return "trace"
	case LogLevelDebug:
		return "debug"
	case LogLevelInfo:
		return "info"
	case LogLevelWarn:
		return "warn"
	case LogLevelError:
		return "error"
	case LogLevelNone:
		return "none"
	default:
		return fmt.Sprintf("invalid level %d", ll)
	}
}

// Logger is the interface used to get log output from a TraceLog.
type Logger interface {
	// Log a message at the given level with data key/value pairs. data may be nil.
	Log(ctx context.Context, level LogLevel, msg string, data map[string]any)
}

// LoggerFunc is a wrapper around a function to satisfy the Logger interface
type LoggerFunc func(ctx context.Context, level LogLevel, msg string, data map[string]any)

// Log delegates the logging request to the wrapped function
func (f LoggerFunc) Log(ctx context.Context, level LogLevel, msg string, data map[string]any) {
	f(ctx, level, msg, data)
}

// LogLevelFromString converts log level string to constant
//
// Valid levels:
//
//	trace
//	debug
//	info
//	warn
//	error
//	none
func LogLevelFromString(s string) (LogLevel, error) {
	switch s {
	case "trace":
		return LogLevelTrace, nil
	case "debug":
		return LogLevelDebug, nil
	case "info":
		return LogLevelInfo, nil
	case "warn":
		return LogLevelWarn, nil
	case "error":
		return LogLevelError, nil
	case "none":
		return LogLevelNone, nil
	default:
		return 0, errors.New("invalid log level")
	}
}

// TraceLogConfig holds the configuration for key names
type TraceLogConfig struct {
	TimeKey string

	// MaxValueLen is the number of bytes of field text included in conversion logs. Longer text is truncated.
	MaxValueLen int
}

// DefaultTraceLogConfig returns the default configuration for TraceLog
func DefaultTraceLogConfig() *TraceLogConfig {
	return &TraceLogConfig{
		TimeKey:     "time",
		MaxValueLen: 64,
	}
}

// TraceLog implements pgfield.BuildTracer and pgfield.ConversionTracer. Logger and LogLevel are required. Config will be
// automatically initialized on the first use if nil.
type TraceLog struct {
	Logger   Logger
	LogLevel LogLevel

	Config           *TraceLogConfig
	ensureConfigOnce sync.Once
}

// ensureConfig initializes the Config field with default values if it is nil.
func (tl *TraceLog) ensureConfig() {
	tl.ensureConfigOnce.Do(
		func() {
			if tl.Config == nil {
				tl.Config = DefaultTraceLogConfig()
			}
		},
	)
}

var _ pgfield.BuildTracer = (*TraceLog)(nil)
var _ pgfield.ConversionTracer = (*TraceLog)(nil)

// TraceBuild logs a finished Result at info level, or the failure at error level.
func (tl *TraceLog) TraceBuild(res *pgfield.Result, data pgfield.TraceBuildData) {
	tl.ensureConfig()

	if data.Err != nil {
		if tl.shouldLog(LogLevelError) {
			tl.log(LogLevelError, "Build", map[string]any{"err": data.Err, tl.Config.TimeKey: data.Duration})
		}
		return
	}

	if tl.shouldLog(LogLevelInfo) {
		tl.log(LogLevelInfo, "Build", map[string]any{
			"rows":            data.Rows,
			"columns":         data.Columns,
			"bytes":           data.Bytes,
			"commandTag":      data.CommandTag,
			tl.Config.TimeKey: data.Duration,
		})
	}
}

// TraceConversion logs failed conversions at error level and every other conversion at debug level.
func (tl *TraceLog) TraceConversion(f pgfield.Field, data pgfield.TraceConversionData) {
	lvl := LogLevelDebug
	if data.Err != nil {
		lvl = LogLevelError
	}
	if !tl.shouldLog(lvl) {
		return
	}
	tl.ensureConfig()

	logData := map[string]any{
		"row":      f.RowNum(),
		"column":   f.Num(),
		"name":     f.Name(),
		"null":     data.Null,
		"assigned": data.Assigned,
	}
	if data.Target != nil {
		logData["target"] = data.Target.String()
	}
	if !data.Null {
		logData["value"] = truncateValue(f.View(), tl.Config.MaxValueLen)
	}
	if data.Err != nil {
		logData["err"] = data.Err
	}

	tl.log(lvl, "Conversion", logData)
}

// truncateValue cuts s to at most max bytes without splitting a UTF-8 sequence.
func truncateValue(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}

	l := 0
	for l < len(s) {
		_, w := utf8.DecodeRuneInString(s[l:])
		if l+w > max {
			break
		}
		l += w
	}
	return fmt.Sprintf("%s (truncated %d bytes)", s[:l], len(s)-l)
}

func (tl *TraceLog) shouldLog(lvl LogLevel) bool {
	return tl.LogLevel >= lvl
}

// log passes a background context because building and reading a Result never block and so are never given one.
func (tl *TraceLog) log(lvl LogLevel, msg string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	tl.Logger.Log(context.Background(), lvl, msg, data)
}
