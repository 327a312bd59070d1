package models

import "time"

// CartItem pairs a product with the quantity selected for it. A cart
// holds at most one item per product ID.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// LineTotal is price × quantity for this entry.
func (ci CartItem) LineTotal() float64 {
	return ci.Product.Price * float64(ci.Quantity)
}

// Cart is the in-session collection of selected products. It is created
// empty at session start and never persisted across restarts.
type Cart struct {
	SessionID  string     `json:"session_id"`
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"total_items"`
	Subtotal   float64    `json:"subtotal"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CartTotals is the pricing breakdown checkout shows and submits.
type CartTotals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}
