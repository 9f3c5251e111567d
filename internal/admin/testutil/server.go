package testutil

import (
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"gpark.dev/acs-admin/internal/admin/httpserver"
	"gpark.dev/acs-admin/internal/admin/visitors"
)

// ServerOption customises the HTTP server configuration for tests.
type ServerOption func(*httpserver.Config)

// WithBasePath sets a custom base path for the admin routes.
func WithBasePath(path string) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.BasePath = path
	}
}

// WithVisitorsService wires a custom visitors service implementation.
func WithVisitorsService(service visitors.Service) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.VisitorsService = service
	}
}

// WithLogger routes server logs to logger.
func WithLogger(logger *zap.Logger) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Logger = logger
	}
}

// WithClock fixes the page clock.
func WithClock(now func() time.Time) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Now = now
	}
}

// NewServer constructs an httptest server running the admin HTTP stack with sensible defaults.
func NewServer(t testing.TB, opts ...ServerOption) *httptest.Server {
	t.Helper()

	cfg := httpserver.Config{
		Address:         ":0",
		BasePath:        "/admin",
		Environment:     "Test",
		CSRFCookieName:  "csrftoken",
		CSRFHeaderName:  "X-CSRFToken",
		VisitorsService: visitors.NewStaticService(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	srv := httpserver.New(cfg)
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}
