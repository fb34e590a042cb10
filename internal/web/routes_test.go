// internal/web/routes_test.go
package web

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/ownthedoge/dogeday/internal/config"
	"github.com/ownthedoge/dogeday/internal/mail"
	"go.uber.org/zap"
)

func TestMountRoutes(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>Doge Day</h1>"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := chi.NewRouter()
	coreCfg := &config.CoreConfig{StaticDir: dir}
	dispatcher := mail.NewDispatcher(mail.Config{}, mail.Routing{}, nil)
	MountRoutes(r, coreCfg, dispatcher, zap.NewNop())

	t.Run("healthz", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
			t.Errorf("body = %s", rec.Body.String())
		}
	})

	t.Run("metrics", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("static site", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Doge Day") {
			t.Errorf("body = %s", rec.Body.String())
		}
	})

	t.Run("signup only accepts POST", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/signup", nil))
		// Routed (not a 404 from the static fallback); body handling is
		// covered by the handler tests.
		if rec.Code == http.StatusNotFound {
			t.Errorf("POST /api/signup not routed")
		}
	})
}
