package domain

import "time"

// WishlistItem is created on add and destroyed on remove; it is never
// mutated in place. At most one entry exists per product id.
type WishlistItem struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	AddedAt   time.Time `json:"added_at"`
}
