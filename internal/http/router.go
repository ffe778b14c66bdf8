package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/cart"
	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/catalog"
	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/checkout"
	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/order"
	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/wishlist"
)

// NewRouter assembles the storefront API.
func NewRouter(
	cat catalog.Catalog,
	cartSvc *cart.Service,
	wishlistSvc *wishlist.Service,
	orderSvc *order.Service,
	sessions *checkout.Manager,
	requestTimeout time.Duration,
) chi.Router {
	productHandler := NewProductHandler(cat)
	cartHandler := NewCartHandler(cartSvc)
	wishlistHandler := NewWishlistHandler(wishlistSvc)
	ordersHandler := NewOrdersHandler(orderSvc)
	checkoutHandler := NewCheckoutHandler(sessions)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(MetricsMiddleware)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.List)
			r.Get("/featured", productHandler.Featured)
			r.Get("/{product_id}", productHandler.Get)
			r.Get("/{product_id}/related", productHandler.Related)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", wishlistHandler.GetAll)
			r.Post("/{product_id}", wishlistHandler.Add)
			r.Delete("/{product_id}", wishlistHandler.Remove)
			r.Post("/{product_id}/toggle", wishlistHandler.Toggle)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", ordersHandler.List)
			r.Get("/{order_id}", ordersHandler.Get)
			r.Put("/{order_id}/status", ordersHandler.UpdateStatus)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", checkoutHandler.Begin)
			r.Get("/{checkout_id}", checkoutHandler.Get)
			r.Post("/{checkout_id}/shipping", checkoutHandler.SubmitShipping)
			r.Post("/{checkout_id}/payment", checkoutHandler.SubmitPayment)
			r.Post("/{checkout_id}/back", checkoutHandler.Back)
			r.Post("/{checkout_id}/order", checkoutHandler.PlaceOrder)
		})
	})

	return r
}
