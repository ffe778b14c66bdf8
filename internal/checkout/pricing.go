package checkout

// Pricing holds the rates applied on top of the cart subtotal. Both are
// configuration, not business rules derived from address or weight.
type Pricing struct {
	TaxRate     float64
	ShippingFee float64
}

func DefaultPricing() Pricing {
	return Pricing{TaxRate: 0.08, ShippingFee: 10}
}

// Summary is the priced view of the cart shown at the review step and
// used as the order total.
type Summary struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

func (p Pricing) Quote(subtotal float64) Summary {
	tax := subtotal * p.TaxRate
	return Summary{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: p.ShippingFee,
		Total:    subtotal + tax + p.ShippingFee,
	}
}
