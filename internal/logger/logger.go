// Package logger holds the process-wide slog logger and its request-scoped variants.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

const productionEnv = "production"

var defaultLogger *slog.Logger

// falls back to the process environment until Configure runs with the loaded config
func init() {
	Configure(os.Getenv("ENVIRONMENT"))
}

// selects the output for env: JSON at INFO on stdout in production, text at DEBUG on stderr otherwise
func Configure(env string) {
	if env == productionEnv {
		defaultLogger = slog.New(newHandler(env, os.Stdout))
	} else {
		defaultLogger = slog.New(newHandler(env, os.Stderr))
	}

	slog.SetDefault(defaultLogger)
}

func newHandler(env string, w io.Writer) slog.Handler {
	if env == productionEnv {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	}

	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
}

func Default() *slog.Logger {
	return defaultLogger
}

// returns the request logger stored by Middleware, or the default one
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return defaultLogger
	}

	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}

	return defaultLogger
}

func WithContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

type loggerKey struct{}

func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}

// logs msg at error level on l with err attached
func ErrorErr(l *slog.Logger, err error, msg string, args ...any) {
	if l == nil {
		l = defaultLogger
	}

	l.Error(msg, append(args, "error", err)...)
}

// logs err and exits; startup only
func FatalErr(err error, msg string, args ...any) {
	defaultLogger.Error(msg, append(args, "error", err)...)
	os.Exit(1)
}
