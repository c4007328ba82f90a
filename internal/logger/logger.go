// Package logger provides the zap based application logger.
package logger

import (
	"context"
	"net/http"
	"os"
	"runtime/debug"

	"github.com/KretovDmitry/shorturl/internal/config"
	"github.com/google/uuid"
	sqldblogger "github.com/simukti/sqldb-logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is a logger that supports log levels, context and structured logging.
type Logger interface {
	// With returns a logger based off the root logger and decorates it with
	// the given context and arguments.
	With(ctx context.Context, args ...any) Logger

	// Debug uses fmt.Sprint to construct and log a message at DEBUG level.
	Debug(args ...any)
	// Info uses fmt.Sprint to construct and log a message at INFO level.
	Info(args ...any)
	// Warn uses fmt.Sprint to construct and log a message at WARN level.
	Warn(args ...any)
	// Error uses fmt.Sprint to construct and log a message at ERROR level.
	Error(args ...any)

	// Debugf uses fmt.Sprintf to construct and log a message at DEBUG level.
	Debugf(format string, args ...any)
	// Infof uses fmt.Sprintf to construct and log a message at INFO level.
	Infof(format string, args ...any)
	// Warnf uses fmt.Sprintf to construct and log a message at WARN level.
	Warnf(format string, args ...any)
	// Errorf uses fmt.Sprintf to construct and log a message at ERROR level.
	Errorf(format string, args ...any)

	// Sync flushes any buffered log entries.
	Sync() error

	// Logger lets the logger trace database queries.
	sqldblogger.Logger
}

type contextKey int

const requestIDKey contextKey = iota

// RequestIDHeader is the header carrying the request ID.
const RequestIDHeader = "X-Request-ID"

type logger struct {
	*zap.SugaredLogger
}

var _ Logger = (*logger)(nil)

// New creates a logger writing to the console and,
// when a log path is configured, to a rotated JSON file.
func New(c config.Logger) Logger {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	logLevel := zap.NewAtomicLevelAt(level)

	developmentCfg := zap.NewDevelopmentEncoderConfig()
	developmentCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	consoleEncoder := zapcore.NewConsoleEncoder(developmentCfg)

	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), logLevel),
	}

	if c.Path != "" {
		file := zapcore.AddSync(&lumberjack.Logger{
			Filename:   c.Path,
			MaxSize:    c.MaxSizeMB, // megabytes
			MaxBackups: c.MaxBackups,
			MaxAge:     c.MaxAgeDays, // days
			Compress:   true,
		})

		productionCfg := zap.NewProductionEncoderConfig()
		productionCfg.TimeKey = "timestamp"
		productionCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		fileEncoder := zapcore.NewJSONEncoder(productionCfg)

		var gitRevision, goVersion string
		if buildInfo, ok := debug.ReadBuildInfo(); ok {
			goVersion = buildInfo.GoVersion
			for _, v := range buildInfo.Settings {
				if v.Key == "vcs.revision" {
					gitRevision = v.Value
					break
				}
			}
		}

		cores = append(cores, zapcore.NewCore(fileEncoder, file, logLevel).
			With([]zapcore.Field{
				zap.String("git_revision", gitRevision),
				zap.String("go_version", goVersion),
			}))
	}

	// log to multiple destinations (console and file)
	return NewWithZap(zap.New(zapcore.NewTee(cores...)))
}

// NewWithZap creates a new logger using the preconfigured zap logger.
func NewWithZap(l *zap.Logger) Logger {
	return &logger{l.Sugar()}
}

// NewForTest returns a new logger and the corresponding observed logs
// which can be used in unit tests to verify log entries.
func NewForTest() (Logger, *observer.ObservedLogs) {
	core, recorded := observer.New(zapcore.DebugLevel)
	return NewWithZap(zap.New(core)), recorded
}

// With returns a logger based off the root logger and decorates it with
// the given context and arguments.
//
// If the context contains a request ID, it will be added
// to every log message generated by the new logger.
//
// The arguments should be specified as a sequence of name, value pairs
// with names being strings.
func (l *logger) With(ctx context.Context, args ...any) Logger {
	if ctx != nil {
		if id, ok := ctx.Value(requestIDKey).(string); ok {
			args = append(args, zap.String("request_id", id))
		}
	}
	if len(args) > 0 {
		return &logger{l.SugaredLogger.With(args...)}
	}
	return l
}

// Log implements sqldblogger.Logger.
func (l *logger) Log(ctx context.Context, level sqldblogger.Level, msg string, data map[string]any) {
	args := make([]any, 0, len(data)*2)
	for k, v := range data {
		args = append(args, k, v)
	}

	lg := l.With(ctx, args...)
	switch level {
	case sqldblogger.LevelError:
		lg.Error(msg)
	case sqldblogger.LevelInfo:
		lg.Info(msg)
	default:
		lg.Debug(msg)
	}
}

// WithRequest returns a context which knows the request ID of the given
// request. An inbound X-Request-ID header is kept, otherwise a new ID is
// generated.
func WithRequest(ctx context.Context, r *http.Request) context.Context {
	id := r.Header.Get(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the request ID stored in the context, if any.
func RequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok
}
