package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/cart"
	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/catalog"
	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/checkout"
	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/order"
	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/wishlist"
)

type ErrorResponse struct {
	Error   string   `json:"error"`
	Code    string   `json:"code,omitempty"`
	Details []string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// handleDomainError maps store and flow errors onto HTTP statuses. Every
// store error is transient from the client's point of view; nothing here
// is fatal to the process.
func handleDomainError(w http.ResponseWriter, err error) {
	var validation *checkout.ValidationError
	if errors.As(err, &validation) {
		respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:   validation.Error(),
			Code:    "validation_failed",
			Details: validation.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, checkout.ErrSessionNotFound),
		errors.Is(err, wishlist.ErrNotInWishlist):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, wishlist.ErrAlreadyInWishlist):
		respondError(w, http.StatusConflict, "already_exists", err.Error())
	case errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, order.ErrInvalidStatus):
		respondError(w, http.StatusBadRequest, "invalid_argument", err.Error())
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusConflict, "empty_cart", err.Error())
	case errors.Is(err, checkout.ErrInvalidTransition):
		respondError(w, http.StatusConflict, "invalid_transition", err.Error())
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
