package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/lintra-console/internal/infra/metrics"
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func wrap(w http.ResponseWriter) *responseWriter {
	if rw, ok := w.(*responseWriter); ok {
		return rw
	}
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

// unmatchedRoute agrupa requisições sem rota para que caminhos arbitrários não virem labels.
const unmatchedRoute = "unmatched"

// routePattern usa o padrão da rota chi ("/deals/{id}") para não explodir a cardinalidade.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return unmatchedRoute
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		metrics.ConnectionOpened()
		defer metrics.ConnectionClosed()

		rw := wrap(w)
		next.ServeHTTP(rw, r)

		metrics.ObserveHTTP(r.Method, routePattern(r), strconv.Itoa(rw.statusCode), time.Since(start).Seconds())
	})
}
