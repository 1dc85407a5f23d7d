package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/xavierca1/lintra-console/internal/infra/http/middleware"
)

type RouterDeps struct {
	Board   *BoardHandler
	Clients *ClientHandler
	Posts   *PostHandler
	Health  *HealthHandler
	Logger  *zap.Logger
}

func NewRouter(d RouterDeps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Request-Id"},
	}))

	if d.Health != nil {
		r.Get("/health", d.Health.Handle)
	}
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		if d.Board != nil {
			d.Board.Routes(r)
		}
		if d.Clients != nil {
			d.Clients.Routes(r)
		}
		if d.Posts != nil {
			d.Posts.Routes(r)
		}
	})
	return r
}
