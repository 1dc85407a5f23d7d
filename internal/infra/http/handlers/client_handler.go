package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/xavierca1/lintra-console/internal/entity"
	"github.com/xavierca1/lintra-console/internal/usecase"
)

type ClientHandler struct {
	Clients *usecase.ClientService
	Billing *usecase.BillingService
	logger  *zap.Logger
}

func NewClientHandler(clients *usecase.ClientService, billing *usecase.BillingService, logger *zap.Logger) *ClientHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClientHandler{Clients: clients, Billing: billing, logger: logger}
}

func (h *ClientHandler) Routes(r chi.Router) {
	r.Get("/clients", h.List)
	r.Post("/clients", h.Create)
	r.Get("/clients/{id}", h.Get)
	r.Put("/clients/{id}", h.Update)
	r.Delete("/clients/{id}", h.Delete)
	r.Post("/clients/{id}/payments", h.AddPayment)
	r.Put("/payments/{paymentId}", h.UpdatePayment)
	r.Delete("/payments/{paymentId}", h.DeletePayment)

	r.Get("/clients/{id}/billing/customer", h.BillingCustomer)
	r.Post("/clients/{id}/billing/customer", h.EnsureBillingCustomer)
	r.Get("/clients/{id}/billing/charges", h.Billings)
	r.Post("/clients/{id}/billing/charges", h.CreateBilling)
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Clients.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if list == nil {
		list = []entity.Client{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.Clients.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in entity.Client
	if !decodeJSON(w, r, &in) {
		return
	}
	c, err := h.Clients.Create(r.Context(), in)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in entity.Client
	if !decodeJSON(w, r, &in) {
		return
	}
	c, err := h.Clients.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.Clients.Delete(r.Context(), chi.URLParam(r, "id"), confirmFromQuery(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}

func (h *ClientHandler) AddPayment(w http.ResponseWriter, r *http.Request) {
	var in usecase.PaymentInput
	if !decodeJSON(w, r, &in) {
		return
	}
	p, err := h.Clients.AddPayment(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *ClientHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	var in usecase.PaymentInput
	if !decodeJSON(w, r, &in) {
		return
	}
	p, err := h.Clients.UpdatePayment(r.Context(), chi.URLParam(r, "paymentId"), in)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ClientHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.Clients.DeletePayment(r.Context(), chi.URLParam(r, "paymentId"), confirmFromQuery(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}

func (h *ClientHandler) BillingCustomer(w http.ResponseWriter, r *http.Request) {
	c, err := h.Billing.Customer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if c == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "cliente AbacatePay não encontrado", Code: usecase.CodeNotFound})
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *ClientHandler) EnsureBillingCustomer(w http.ResponseWriter, r *http.Request) {
	c, err := h.Billing.EnsureCustomer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *ClientHandler) Billings(w http.ResponseWriter, r *http.Request) {
	list, err := h.Billing.Billings(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if list == nil {
		list = []entity.Billing{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *ClientHandler) CreateBilling(w http.ResponseWriter, r *http.Request) {
	var in usecase.BillingInput
	if !decodeJSON(w, r, &in) {
		return
	}
	list, err := h.Billing.CreateBilling(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, list)
}
