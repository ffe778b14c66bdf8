package http

import (
	"encoding/json"
	"net/http"

	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/cart"
	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/domain"
)

type CartHandler struct {
	svc *cart.Service
}

func NewCartHandler(svc *cart.Service) *CartHandler {
	return &CartHandler{svc: svc}
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartResponseDTO struct {
	Items []domain.EnrichedCartItem `json:"items"`
	Total float64                   `json:"total"`
	Count int                       `json:"count"`
}

// GetCart serves the enriched cart view with computed total and count.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Enriched(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}

	var total float64
	count := 0
	for _, item := range items {
		total += item.Subtotal()
		count += item.Quantity
	}

	respondJSON(w, http.StatusOK, CartResponseDTO{Items: items, Total: total, Count: count})
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	if err := h.svc.AddItem(r.Context(), req.ProductID, req.Quantity); err != nil {
		handleDomainError(w, err)
		return
	}
	h.GetCart(w, r)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseID(w, r, "product_id")
	if !ok {
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.svc.UpdateQuantity(r.Context(), productID, req.Quantity); err != nil {
		handleDomainError(w, err)
		return
	}
	h.GetCart(w, r)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseID(w, r, "product_id")
	if !ok {
		return
	}

	if err := h.svc.RemoveItem(r.Context(), productID); err != nil {
		handleDomainError(w, err)
		return
	}
	h.GetCart(w, r)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Clear(r.Context()); err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, CartResponseDTO{Items: []domain.EnrichedCartItem{}})
}
