package domain

import "time"

type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// Valid reports whether s is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) String() string {
	return string(s)
}

// OrderItem is a denormalized snapshot of a product at checkout time.
// Later catalog changes never affect a placed order.
type OrderItem struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
}

type Address struct {
	FullName     string `json:"full_name"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
	Phone        string `json:"phone"`
}

// Order is an append-only record: created once at checkout completion,
// only its status is ever mutated afterwards, and it is never deleted.
// PaymentMethod is a display string, never raw card or UPI data.
type Order struct {
	ID                int64       `json:"id"`
	Items             []OrderItem `json:"items"`
	Total             float64     `json:"total"`
	ShippingAddress   Address     `json:"shipping_address"`
	PaymentMethod     string      `json:"payment_method"`
	Status            OrderStatus `json:"status"`
	CreatedAt         time.Time   `json:"created_at"`
	EstimatedDelivery time.Time   `json:"estimated_delivery"`
}

// Clone returns a deep copy so callers cannot mutate stored orders.
func (o *Order) Clone() *Order {
	cp := *o
	cp.Items = make([]OrderItem, len(o.Items))
	copy(cp.Items, o.Items)
	return &cp
}
