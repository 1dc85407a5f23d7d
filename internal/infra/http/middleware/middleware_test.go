package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xavierca1/lintra-console/internal/infra/metrics"
)

func TestLogger_LevelByStatus(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := chi.NewRouter()
	r.Use(Logger(zap.New(core)))
	r.Get("/ok", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/missing", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNotFound) })
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusBadGateway) })

	for _, path := range []string{"/ok", "/missing", "/boom"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.All()
	if assert.Len(t, entries, 3) {
		assert.Equal(t, zap.InfoLevel, entries[0].Level)
		assert.Equal(t, zap.WarnLevel, entries[1].Level)
		assert.Equal(t, zap.ErrorLevel, entries[2].Level)
		assert.Equal(t, int64(404), entries[1].ContextMap()["status"])
	}
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/deals/{id}", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/deals/abc", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	counter := metrics.HTTPRequests().WithLabelValues(http.MethodGet, "/deals/{id}", "204")
	assert.Equal(t, float64(1), testutil.ToFloat64(counter))
}

func TestMetrics_UnmatchedPathsShareOneLabel(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {})

	before := testutil.ToFloat64(metrics.HTTPRequests().WithLabelValues(http.MethodGet, "unmatched", "404"))
	for _, path := range []string{"/wp-admin", "/a/b/c", "/x1", "/x2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}

	counter := metrics.HTTPRequests().WithLabelValues(http.MethodGet, "unmatched", "404")
	assert.Equal(t, before+4, testutil.ToFloat64(counter))
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.HTTPRequests().WithLabelValues(http.MethodGet, "/wp-admin", "404")))
}
