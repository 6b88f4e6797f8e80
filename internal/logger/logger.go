// Package logger wraps log/slog with a process-wide default and a few
// shorthand helpers for tracing repository calls.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

var defaultLogger *slog.Logger

// Initialize sets up the global logger with the given level and format.
func Initialize(level, format string) {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn", "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// Get returns the default logger, initializing it lazily so tests and
// one-off tools work without an explicit Initialize call.
func Get() *slog.Logger {
	if defaultLogger == nil {
		Initialize("info", "text")
	}
	return defaultLogger
}

func Debug(msg string, args ...any) {
	Get().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	Get().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	Get().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	Get().Error(msg, args...)
}

func InfoContext(ctx context.Context, msg string, args ...any) {
	Get().InfoContext(ctx, msg, args...)
}

func WarnContext(ctx context.Context, msg string, args ...any) {
	Get().WarnContext(ctx, msg, args...)
}

func ErrorContext(ctx context.Context, msg string, args ...any) {
	Get().ErrorContext(ctx, msg, args...)
}

// EnterMethod traces entry into a method at debug level.
func EnterMethod(methodName string, args ...any) {
	allArgs := append([]any{"method", methodName}, args...)
	Get().Debug("Entering method", allArgs...)
}

// ExitMethod traces successful exit from a method at debug level.
func ExitMethod(methodName string, args ...any) {
	allArgs := append([]any{"method", methodName}, args...)
	Get().Debug("Exiting method", allArgs...)
}

// ExitMethodWithError traces an error exit from a method.
func ExitMethodWithError(methodName string, err error, args ...any) {
	allArgs := append([]any{"method", methodName, "error", err}, args...)
	Get().Error("Method failed", allArgs...)
}

// DatabaseCall traces a database operation at debug level.
func DatabaseCall(operation, query string, args ...any) {
	allArgs := append([]any{"operation", operation, "query", query}, args...)
	Get().Debug("Database call", allArgs...)
}

// DatabaseResult traces the outcome of a database operation.
func DatabaseResult(operation string, rowsAffected int64, err error, args ...any) {
	if err != nil {
		allArgs := append([]any{"operation", operation, "error", err}, args...)
		Get().Error("Database call failed", allArgs...)
		return
	}
	allArgs := append([]any{"operation", operation, "rows_affected", rowsAffected}, args...)
	Get().Debug("Database call completed", allArgs...)
}
