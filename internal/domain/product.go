package domain

// Product is a catalog record. The catalog is read-only from the
// storefront's point of view; carts and orders reference products by id
// and never hold a live pointer into catalog storage.
type Product struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Images      []string `json:"images"`
	Rating      float64  `json:"rating"`
	Stock       int      `json:"stock"`
}

// Image returns the primary product image, or "" when none is set.
func (p *Product) Image() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
