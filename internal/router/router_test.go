package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-api/internal/handler/health"
	"github.com/jwalitptl/hospital-api/internal/middleware"
	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/pkg/metrics"
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

type noTokens struct{}

func (noTokens) Authenticate(context.Context, string) (*model.User, error) { return nil, nil }

func newTestRouter(t *testing.T, mediaDir string) *Router {
	reg := prometheus.NewRegistry()
	r := NewRouter(Config{
		Mode:           gin.TestMode,
		RequestTimeout: time.Second,
		CORS:           middleware.DefaultCORSConfig(),
		MediaDir:       mediaDir,
		MediaURL:       "http://localhost:8080/media",
	},
		middleware.NewAuthMiddleware(noTokens{}),
		health.NewHandler(okPinger{}),
		metrics.NewAPIMetrics("hospital", reg),
		reg,
	)
	r.Setup()
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealthAndMetrics(t *testing.T) {
	r := newTestRouter(t, "")

	w := get(r, "/api/health/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderXRequestID))

	w = get(r, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `hospital_http_requests_total{method="GET",route="/api/health/",status="200"} 1`)
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	r := newTestRouter(t, "")

	w := get(r, "/api/nothing-here/")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"status":"error","message":"Not found."}`, w.Body.String())
}

func TestMediaServedWithCacheHeaders(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "profile_pictures"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "profile_pictures", "a.txt"), []byte("hello"), 0o644))
	r := newTestRouter(t, dir)

	w := get(r, "/media/profile_pictures/a.txt")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello", w.Body.String())
	assert.Equal(t, "public, max-age=86400", w.Header().Get("Cache-Control"))
}

func TestMediaPath(t *testing.T) {
	assert.Equal(t, "/media", mediaPath("/media"))
	assert.Equal(t, "/uploads", mediaPath("https://cdn.example.com/uploads"))
	assert.Equal(t, "/media", mediaPath(""))
}
