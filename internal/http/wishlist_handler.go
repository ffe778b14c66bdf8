package http

import (
	"net/http"

	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/domain"
	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/wishlist"
)

type WishlistHandler struct {
	svc *wishlist.Service
}

func NewWishlistHandler(svc *wishlist.Service) *WishlistHandler {
	return &WishlistHandler{svc: svc}
}

type ToggleResponseDTO struct {
	ProductID  int64 `json:"product_id"`
	InWishlist bool  `json:"in_wishlist"`
}

func (h *WishlistHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.GetAll(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}
	if items == nil {
		items = []domain.WishlistItem{}
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseID(w, r, "product_id")
	if !ok {
		return
	}

	item, err := h.svc.Add(r.Context(), productID)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseID(w, r, "product_id")
	if !ok {
		return
	}

	if err := h.svc.Remove(r.Context(), productID); err != nil {
		handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseID(w, r, "product_id")
	if !ok {
		return
	}

	inWishlist, err := h.svc.Toggle(r.Context(), productID)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ToggleResponseDTO{ProductID: productID, InWishlist: inWishlist})
}
