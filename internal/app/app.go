// internal/app/app.go

// Package app runs the standard dogedayd startup sequence: bootstrap logger,
// config, final logger, metrics, HTTP handler, and the server lifecycle.
package app

import (
	"context"
	"net/http"
	"os"

	"github.com/ownthedoge/dogeday/internal/config"
	"github.com/ownthedoge/dogeday/internal/httputil"
	"github.com/ownthedoge/dogeday/internal/logging"
	"github.com/ownthedoge/dogeday/internal/metrics"
	"github.com/ownthedoge/dogeday/internal/server"
	"go.uber.org/zap"
)

// Hooks defines the integration points an application must provide to run.
type Hooks[C any] struct {
	// Name is used only for logging/diagnostics.
	Name string

	// LoadConfig must return both the core config and the app-specific
	// config. It typically calls config.Load internally, plus any app-level
	// config loading/validation.
	LoadConfig func(logger *zap.Logger) (*config.CoreConfig, C, error)

	// BuildHandler must construct the final http.Handler for the app:
	// router, middleware, and routes.
	BuildHandler func(core *config.CoreConfig, appCfg C, logger *zap.Logger) (http.Handler, error)
}

// Run executes the startup sequence:
//
//  1. Bootstrap logger
//  2. Load core + app config (Hooks.LoadConfig)
//  3. Build final logger based on core config
//  4. Register default metrics
//  5. Wire shutdown signals to a context
//  6. Build the HTTP handler (Hooks.BuildHandler)
//  7. Start the HTTP(S) server and block until shutdown
func Run[C any](ctx context.Context, hooks Hooks[C]) error {
	// 1) Bootstrap logger for early startup
	bootstrap := logging.BootstrapLogger()
	defer bootstrap.Sync()
	bootstrap.Info("bootstrap logger initialized", zap.String("app", hooks.Name))

	// 2) Load config (core + app-specific)
	coreCfg, appCfg, err := hooks.LoadConfig(bootstrap)
	if err != nil {
		bootstrap.Error("config load failed", zap.Error(err))
		os.Exit(1)
	}
	bootstrap.Info("config loaded",
		zap.String("env", coreCfg.Env),
		zap.String("log_level", coreCfg.LogLevel),
	)

	// 3) Build final logger
	logger := logging.MustBuildLogger(coreCfg.LogLevel, coreCfg.Env)
	defer logger.Sync()
	logger.Info("logger initialized", zap.String("app", hooks.Name))
	httputil.SetJSONLogger(jsonLogger{logger})

	// 4) Register default metrics (Go, process, HTTP, signup counters)
	metrics.RegisterDefault(logger)

	// 5) Wire shutdown signals → context
	ctx, cancel := server.WithShutdownSignals(ctx, logger)
	defer cancel()

	// 6) Build HTTP handler (router + middleware + routes)
	handler, err := hooks.BuildHandler(coreCfg, appCfg, logger)
	if err != nil {
		logger.Error("handler build failed", zap.Error(err))
		os.Exit(1)
	}

	// 7) Start HTTP server
	if err := server.ListenAndServeWithContext(ctx, coreCfg, handler, logger); err != nil {
		logger.Error("server exited with error", zap.Error(err))
		return err
	}
	logger.Info("server stopped")
	return nil
}

// jsonLogger adapts zap to the httputil.JSONLogger interface.
type jsonLogger struct {
	l *zap.Logger
}

func (j jsonLogger) Error(msg string, args ...any) {
	if len(args) == 0 {
		j.l.Error(msg)
		return
	}
	j.l.Error(msg, zap.Any("details", args))
}
