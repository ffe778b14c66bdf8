package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/catalog"
)

const defaultRelatedLimit = 4

type ProductHandler struct {
	catalog catalog.Catalog
}

func NewProductHandler(cat catalog.Catalog) *ProductHandler {
	return &ProductHandler{catalog: cat}
}

// List serves the catalog, optionally filtered: ?q= searches
// name/description/category, ?category= filters by category.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	var err error
	switch {
	case r.URL.Query().Get("q") != "":
		products, searchErr := h.catalog.Search(r.Context(), r.URL.Query().Get("q"))
		if searchErr == nil {
			respondJSON(w, http.StatusOK, products)
			return
		}
		err = searchErr
	case r.URL.Query().Get("category") != "":
		products, catErr := h.catalog.GetByCategory(r.Context(), r.URL.Query().Get("category"))
		if catErr == nil {
			respondJSON(w, http.StatusOK, products)
			return
		}
		err = catErr
	default:
		products, allErr := h.catalog.GetAll(r.Context())
		if allErr == nil {
			respondJSON(w, http.StatusOK, products)
			return
		}
		err = allErr
	}
	handleDomainError(w, err)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "product_id")
	if !ok {
		return
	}

	product, err := h.catalog.GetByID(r.Context(), id)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Featured(w http.ResponseWriter, r *http.Request) {
	limit := 8
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	products, err := h.catalog.GetFeatured(r.Context(), limit)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Related(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "product_id")
	if !ok {
		return
	}

	products, err := h.catalog.GetRelated(r.Context(), id, defaultRelatedLimit)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func parseID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_id",
			param+" must be a positive integer")
		return 0, false
	}
	return id, true
}
