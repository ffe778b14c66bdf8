package domain

import "time"

// CartItem is the persisted cart record. At most one item exists per
// product id; repeat adds merge into the existing item's quantity.
type CartItem struct {
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

// EnrichedCartItem joins a cart line with its catalog record. Items whose
// product could not be resolved never appear in the enriched view, but they
// stay in storage.
type EnrichedCartItem struct {
	CartItem
	Product *Product `json:"product"`
}

func (e EnrichedCartItem) Subtotal() float64 {
	return e.Product.Price * float64(e.Quantity)
}
