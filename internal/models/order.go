package models

import "time"

// Order status values as reported by the backend.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

// Order is created by the backend in response to a checkout submission;
// the UI only builds the request payload and displays the result.
type Order struct {
	ID              string     `json:"_id"`
	UserID          string     `json:"userId"`
	Items           []CartItem `json:"items"`
	ShippingAddress Address    `json:"shippingAddress"`
	BillingAddress  Address    `json:"billingAddress"`
	PaymentMethod   string     `json:"paymentMethod"`
	Subtotal        float64    `json:"subtotal"`
	Shipping        float64    `json:"shipping"`
	Tax             float64    `json:"tax"`
	Total           float64    `json:"total"`
	Status          string     `json:"status"`
	TrackingNumber  string     `json:"trackingNumber,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// OrderRequest is the payload for POST /orders: a snapshot of the cart,
// the chosen addresses and the totals the cart computed at submit time.
type OrderRequest struct {
	UserID          string     `json:"userId"`
	Items           []CartItem `json:"items"`
	ShippingAddress Address    `json:"shippingAddress"`
	BillingAddress  Address    `json:"billingAddress"`
	PaymentMethod   string     `json:"paymentMethod"`
	Subtotal        float64    `json:"subtotal"`
	Shipping        float64    `json:"shipping"`
	Tax             float64    `json:"tax"`
	Total           float64    `json:"total"`
	Status          string     `json:"status"`
}
