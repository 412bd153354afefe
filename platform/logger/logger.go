// Package logger provides structured logging infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger for structured logging
type Logger struct {
	*slog.Logger
}

// New creates a new logger based on environment
func New(env string) *Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	if strings.EqualFold(env, "development") {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// HTTPRequest logs an HTTP request
func (l *Logger) HTTPRequest(method, path string, status int, latencyMs float64, clientIP string) {
	l.Info("http_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("latency_ms", latencyMs),
		slog.String("client_ip", clientIP),
	)
}

// GeocodeEvent logs the outcome of an external geocoding call.
func (l *Logger) GeocodeEvent(query string, cacheHit bool, results int) {
	l.Debug("geocode_event",
		slog.String("query", query),
		slog.Bool("cache_hit", cacheHit),
		slog.Int("results", results),
	)
}

// GeocodeError logs a failed geocoding call. Quote computation degrades to the
// zero-distance fallback, so this is a warning rather than an error.
func (l *Logger) GeocodeError(query string, err error) {
	l.Warn("geocode_failed",
		slog.String("query", query),
		slog.String("error", err.Error()),
	)
}

// CatalogLoaded logs a catalog (re)load.
func (l *Logger) CatalogLoaded(source string, lots int) {
	l.Info("catalog_loaded",
		slog.String("source", source),
		slog.Int("lots", lots),
	)
}

// RateLimitExceeded logs rate limit events
func (l *Logger) RateLimitExceeded(clientIP, path string) {
	l.Warn("rate_limit_exceeded",
		slog.String("client_ip", clientIP),
		slog.String("path", path),
	)
}
