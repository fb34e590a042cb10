// internal/web/routes.go
package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ownthedoge/dogeday/internal/config"
	"github.com/ownthedoge/dogeday/internal/httputil"
	"github.com/ownthedoge/dogeday/internal/mail"
	"github.com/ownthedoge/dogeday/internal/metrics"
	"go.uber.org/zap"
)

// MountRoutes attaches all application routes to the router: the signup API,
// health and metrics endpoints, and (when configured) the static site.
func MountRoutes(r chi.Router, coreCfg *config.CoreConfig, dispatcher *mail.Dispatcher, logger *zap.Logger) {
	r.Post("/api/signup", NewSignupHandler(dispatcher, logger).ServeHTTP)

	r.Get("/healthz", healthHandler)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	if dir := coreCfg.StaticDir; dir != "" {
		r.Handle("/*", http.FileServer(http.Dir(dir)))
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
