package http

import (
	"encoding/json"
	"net/http"

	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/domain"
	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/order"
)

type OrdersHandler struct {
	svc *order.Service
}

func NewOrdersHandler(svc *order.Service) *OrdersHandler {
	return &OrdersHandler{svc: svc}
}

type UpdateStatusRequestDTO struct {
	Status string `json:"status"`
}

func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.GetAll(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}
	if orders == nil {
		orders = []*domain.Order{}
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *OrdersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "order_id")
	if !ok {
		return
	}

	o, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, o)
}

func (h *OrdersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "order_id")
	if !ok {
		return
	}

	var req UpdateStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	o, err := h.svc.UpdateStatus(r.Context(), id, domain.OrderStatus(req.Status))
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, o)
}
