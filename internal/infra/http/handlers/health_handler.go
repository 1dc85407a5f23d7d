package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"sort"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/lintra-console/internal/entity"
)

const healthCheckTimeout = 2 * time.Second

// SessionProbe consulta GET /auth/me na API remota.
type SessionProbe interface {
	Me(ctx context.Context) (*entity.User, error)
}

type pinger interface {
	PingContext(ctx context.Context) error
}

type connState interface {
	IsClosed() bool
}

// HealthCheck devolve o estado de uma dependência e se ela derruba o serviço.
type HealthCheck func(ctx context.Context) (state string, ok bool)

type HealthHandler struct {
	StartTime time.Time
	checks    map[string]HealthCheck
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

// NewHealthHandler aceita dependências nulas: elas aparecem como "not configured".
func NewHealthHandler(db *sql.DB, rabbitMQ *amqp091.Connection, api SessionProbe) *HealthHandler {
	h := &HealthHandler{StartTime: time.Now(), checks: make(map[string]HealthCheck)}
	if db != nil {
		h.AddCheck("database", pingCheck(db))
	} else {
		h.AddCheck("database", notConfigured)
	}
	h.SetRabbitMQ(rabbitMQ)
	if api != nil {
		h.AddCheck("lintra_api", sessionCheck(api))
	} else {
		h.AddCheck("lintra_api", notConfigured)
	}
	return h
}

func (h *HealthHandler) AddCheck(name string, check HealthCheck) {
	h.checks[name] = check
}

func (h *HealthHandler) SetRabbitMQ(conn *amqp091.Connection) {
	if conn == nil {
		h.AddCheck("rabbitmq", notConfigured)
		return
	}
	h.AddCheck("rabbitmq", connCheck(conn))
}

func notConfigured(context.Context) (string, bool) { return "not configured", true }

func pingCheck(p pinger) HealthCheck {
	return func(ctx context.Context) (string, bool) {
		if err := p.PingContext(ctx); err != nil {
			return "unhealthy: " + err.Error(), false
		}
		return "healthy", true
	}
}

func connCheck(c connState) HealthCheck {
	return func(context.Context) (string, bool) {
		if c.IsClosed() {
			return "unhealthy: connection closed", false
		}
		return "healthy", true
	}
}

// sessionCheck: sessão ausente não derruba o health; só indica se há usuário logado.
func sessionCheck(api SessionProbe) HealthCheck {
	return func(ctx context.Context) (string, bool) {
		if u, _ := api.Me(ctx); u != nil {
			return "authenticated", true
		}
		return "configured", true
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := "healthy"
	deps := make(map[string]string, len(names))
	for _, name := range names {
		state, ok := h.checks[name](ctx)
		deps[name] = state
		if !ok {
			status = "degraded"
		}
	}

	code := http.StatusOK
	if status == "degraded" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, HealthResponse{
		Status:       status,
		Version:      "1.0.0",
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	})
}
