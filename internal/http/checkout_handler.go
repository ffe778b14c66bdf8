package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/checkout"
	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/domain"
)

type CheckoutHandler struct {
	sessions *checkout.Manager
}

func NewCheckoutHandler(sessions *checkout.Manager) *CheckoutHandler {
	return &CheckoutHandler{sessions: sessions}
}

type CheckoutSessionDTO struct {
	CheckoutID string `json:"checkout_id"`
	Step       string `json:"step"`
	OrderID    int64  `json:"order_id,omitempty"`
}

// Begin starts a checkout session. An empty cart is rejected before any
// state is created.
func (h *CheckoutHandler) Begin(w http.ResponseWriter, r *http.Request) {
	id, flow, err := h.sessions.Begin(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, CheckoutSessionDTO{
		CheckoutID: id,
		Step:       flow.Step().String(),
	})
}

func (h *CheckoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	flow, ok := h.flow(w, r)
	if !ok {
		return
	}

	summary, err := flow.Summary(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, struct {
		CheckoutSessionDTO
		Summary checkout.Summary `json:"summary"`
	}{
		CheckoutSessionDTO: CheckoutSessionDTO{
			CheckoutID: chi.URLParam(r, "checkout_id"),
			Step:       flow.Step().String(),
			OrderID:    flow.OrderID(),
		},
		Summary: summary,
	})
}

func (h *CheckoutHandler) SubmitShipping(w http.ResponseWriter, r *http.Request) {
	flow, ok := h.flow(w, r)
	if !ok {
		return
	}

	var addr domain.Address
	if err := json.NewDecoder(r.Body).Decode(&addr); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := flow.SubmitShipping(addr); err != nil {
		handleDomainError(w, err)
		return
	}
	h.respondStep(w, r, flow)
}

func (h *CheckoutHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	flow, ok := h.flow(w, r)
	if !ok {
		return
	}

	var form checkout.PaymentForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := flow.SubmitPayment(form); err != nil {
		handleDomainError(w, err)
		return
	}
	h.respondStep(w, r, flow)
}

func (h *CheckoutHandler) Back(w http.ResponseWriter, r *http.Request) {
	flow, ok := h.flow(w, r)
	if !ok {
		return
	}

	if err := flow.Back(); err != nil {
		handleDomainError(w, err)
		return
	}
	h.respondStep(w, r, flow)
}

// PlaceOrder completes the flow. On failure the session stays at Review
// with the cart intact; the client can simply retry.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	flow, ok := h.flow(w, r)
	if !ok {
		return
	}

	placed, err := flow.PlaceOrder(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}

	log.Printf("order %d placed (request %s)", placed.ID, getRequestID(r.Context()))
	respondJSON(w, http.StatusCreated, placed)
}

func (h *CheckoutHandler) flow(w http.ResponseWriter, r *http.Request) (*checkout.Flow, bool) {
	flow, err := h.sessions.Get(chi.URLParam(r, "checkout_id"))
	if err != nil {
		handleDomainError(w, err)
		return nil, false
	}
	return flow, true
}

func (h *CheckoutHandler) respondStep(w http.ResponseWriter, r *http.Request, flow *checkout.Flow) {
	respondJSON(w, http.StatusOK, CheckoutSessionDTO{
		CheckoutID: chi.URLParam(r, "checkout_id"),
		Step:       flow.Step().String(),
		OrderID:    flow.OrderID(),
	})
}
