// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"shipquote_backend/platform/config"
	"shipquote_backend/platform/logger"
)

// RouterConfig combines the config interfaces needed by the HTTP router.
type RouterConfig interface {
	config.HTTPConfig
	config.JWTConfig
}

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the router configuration (HTTP and JWT settings only).
	Config RouterConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Env is the application environment ("development", "production").
	Env string
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
