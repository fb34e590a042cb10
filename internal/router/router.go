// internal/router/router.go
package router

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/ownthedoge/dogeday/internal/config"
	"github.com/ownthedoge/dogeday/internal/logging"
	"github.com/ownthedoge/dogeday/internal/metrics"
	"github.com/ownthedoge/dogeday/internal/middleware"
	"go.uber.org/zap"
)

// New creates a chi.Router pre-wired with the standard middleware stack:
// - RequestID
// - RealIP
// - Recoverer (panic → 500)
// - body size limit (MaxRequestBodyBytes)
// - CORS (when enabled by config)
// - metrics HTTP middleware
// - request logging
// - NotFound / MethodNotAllowed JSON handlers
// Routes (signup, health, metrics, static site) are mounted by the caller.
func New(coreCfg *config.CoreConfig, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()

	// Request context & safety
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(logging.Recoverer(logger))

	// Body size limit (if configured)
	r.Use(middleware.LimitBodySize(coreCfg.MaxRequestBodyBytes))

	// CORS (config decides whether this is active)
	r.Use(middleware.CORSFromConfig(coreCfg))

	// Metrics
	r.Use(metrics.HTTPMetrics)

	// Access logging
	r.Use(logging.RequestLogger(logger))

	// NotFound / MethodNotAllowed JSON handlers
	r.NotFound(middleware.NotFoundHandler(logger))
	r.MethodNotAllowed(middleware.MethodNotAllowedHandler(logger))

	return r
}
