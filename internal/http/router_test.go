package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/cart"
	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/catalog"
	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/checkout"
	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/domain"
	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/order"
	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/storage"
	"github.com/apper-canvas/quantum-marketpulse-ecommerce/internal/wishlist"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cat, err := catalog.NewFixtureCatalog()
	require.NoError(t, err)

	store := storage.NewMemoryStore()
	cartSvc := cart.NewService(store, cat, "test_cart")
	wishlistSvc := wishlist.NewService(store, "test_wishlist")
	orderSvc := order.NewService(store, "test_orders", nil)
	sessions := checkout.NewManager(cartSvc, orderSvc, checkout.DefaultPricing())

	router := NewRouter(cat, cartSvc, wishlistSvc, orderSvc, sessions, 5*time.Second)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body interface{}) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestProducts_ListAndGet(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/products/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var products []domain.Product
	decodeBody(t, resp, &products)
	assert.NotEmpty(t, products)

	resp, err = http.Get(srv.URL + "/api/v1/products/1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var product domain.Product
	decodeBody(t, resp, &product)
	assert.Equal(t, int64(1), product.ID)

	resp, err = http.Get(srv.URL + "/api/v1/products/99999")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/v1/products/not-a-number")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCart_AddUpdateRemoveFlow(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/cart/items", AddItemRequestDTO{ProductID: 1, Quantity: 2})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var view CartResponseDTO
	decodeBody(t, resp, &view)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Count)

	// adding the same product merges quantities
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/cart/items", AddItemRequestDTO{ProductID: 1, Quantity: 3})
	decodeBody(t, resp, &view)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 5, view.Items[0].Quantity)

	// omitted quantity defaults to one
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/cart/items", AddItemRequestDTO{ProductID: 2})
	decodeBody(t, resp, &view)
	require.Len(t, view.Items, 2)

	// quantity zero removes the line
	resp = doJSON(t, http.MethodPut, srv.URL+"/api/v1/cart/items/2", UpdateQuantityRequestDTO{Quantity: 0})
	decodeBody(t, resp, &view)
	require.Len(t, view.Items, 1)

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/v1/cart/items/1", nil)
	decodeBody(t, resp, &view)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.Count)
}

func TestCart_RejectsInvalidInput(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/cart/items", AddItemRequestDTO{ProductID: 0, Quantity: 1})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/cart/items", AddItemRequestDTO{ProductID: 1, Quantity: -2})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWishlist_AddToggleRemove(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/wishlist/3", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// duplicate add conflicts
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/wishlist/3", nil)
	var errBody ErrorResponse
	decodeBody(t, resp, &errBody)
	assert.Equal(t, "already_exists", errBody.Code)

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/v1/wishlist/3", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// removing an absent product is not found
	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/v1/wishlist/3", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/wishlist/4/toggle", nil)
	var toggled ToggleResponseDTO
	decodeBody(t, resp, &toggled)
	assert.True(t, toggled.InWishlist)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/wishlist/4/toggle", nil)
	decodeBody(t, resp, &toggled)
	assert.False(t, toggled.InWishlist)
}

func TestCheckout_FullFlowOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	// empty cart cannot enter checkout
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/checkout/", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/cart/items", AddItemRequestDTO{ProductID: 1, Quantity: 2})
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/checkout/", nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var session CheckoutSessionDTO
	decodeBody(t, resp, &session)
	require.NotEmpty(t, session.CheckoutID)
	assert.Equal(t, "Shipping", session.Step)

	base := srv.URL + "/api/v1/checkout/" + session.CheckoutID

	// incomplete address keeps the flow at shipping
	resp = doJSON(t, http.MethodPost, base+"/shipping", domain.Address{FullName: "Maya Krishnan"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var errBody ErrorResponse
	decodeBody(t, resp, &errBody)
	assert.Contains(t, errBody.Details, "city")

	resp = doJSON(t, http.MethodPost, base+"/shipping", domain.Address{
		FullName:     "Maya Krishnan",
		AddressLine1: "14 Juniper Lane",
		City:         "Portland",
		State:        "OR",
		ZipCode:      "97203",
		Phone:        "555-0142",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &session)
	assert.Equal(t, "Payment", session.Step)

	resp = doJSON(t, http.MethodPost, base+"/payment", checkout.PaymentForm{
		Method: checkout.PaymentMethodUPI,
		UPIID:  "maya@upi",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &session)
	assert.Equal(t, "Review", session.Step)

	resp = doJSON(t, http.MethodPost, base+"/order", nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var placed domain.Order
	decodeBody(t, resp, &placed)
	assert.Equal(t, int64(1), placed.ID)
	assert.Equal(t, domain.OrderStatusProcessing, placed.Status)
	assert.Equal(t, "UPI Payment", placed.PaymentMethod)

	// the cart is cleared on completion
	resp, err := http.Get(srv.URL + "/api/v1/cart/")
	require.NoError(t, err)
	var view CartResponseDTO
	decodeBody(t, resp, &view)
	assert.Empty(t, view.Items)

	// the order is now listed
	resp, err = http.Get(srv.URL + "/api/v1/orders/")
	require.NoError(t, err)
	var orders []domain.Order
	decodeBody(t, resp, &orders)
	require.Len(t, orders, 1)
	assert.Equal(t, int64(1), orders[0].ID)
}

func TestCheckout_UnknownSession(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/checkout/no-such-session")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOrders_StatusUpdate(t *testing.T) {
	srv := newTestServer(t)

	// place one order through the flow
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/cart/items", AddItemRequestDTO{ProductID: 1, Quantity: 1})
	resp.Body.Close()
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/checkout/", nil)
	var session CheckoutSessionDTO
	decodeBody(t, resp, &session)
	base := srv.URL + "/api/v1/checkout/" + session.CheckoutID
	resp = doJSON(t, http.MethodPost, base+"/shipping", domain.Address{
		FullName: "Maya Krishnan", AddressLine1: "14 Juniper Lane",
		City: "Portland", State: "OR", ZipCode: "97203", Phone: "555-0142",
	})
	resp.Body.Close()
	resp = doJSON(t, http.MethodPost, base+"/payment", checkout.PaymentForm{Method: checkout.PaymentMethodUPI, UPIID: "maya@upi"})
	resp.Body.Close()
	resp = doJSON(t, http.MethodPost, base+"/order", nil)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPut, srv.URL+"/api/v1/orders/1/status", map[string]string{"status": "Shipped"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var updated domain.Order
	decodeBody(t, resp, &updated)
	assert.Equal(t, domain.OrderStatusShipped, updated.Status)

	resp = doJSON(t, http.MethodPut, srv.URL+"/api/v1/orders/1/status", map[string]string{"status": "Teleported"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, http.MethodPut, srv.URL+"/api/v1/orders/42/status", map[string]string{"status": "Shipped"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
