package models

import "time"

// Product is owned by the backend; the UI never mutates one.
type Product struct {
	ID            string    `json:"_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	OriginalPrice float64   `json:"originalPrice,omitempty"`
	Images        []string  `json:"images"`
	Category      string    `json:"category"`
	Brand         string    `json:"brand"`
	Stock         int       `json:"stock"`
	Rating        float64   `json:"rating"`
	ReviewCount   int       `json:"reviewCount"`
	Features      []string  `json:"features"`
	IsNew         bool      `json:"isNew,omitempty"`
	IsFeatured    bool      `json:"isFeatured,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// InStock reports whether the product can currently be added to a cart.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// HasDiscount reports whether an original price should be shown struck through.
func (p Product) HasDiscount() bool {
	return p.OriginalPrice > p.Price
}

type Category struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Image       string `json:"image"`
	ParentID    string `json:"parentId,omitempty"`
	IsActive    bool   `json:"isActive"`
}

type Review struct {
	ID        string    `json:"_id"`
	ProductID string    `json:"productId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"`
	Title     string    `json:"title"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReviewRequest is the payload for POST /reviews.
type ReviewRequest struct {
	ProductID string `json:"productId"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	Rating    int    `json:"rating"`
	Title     string `json:"title"`
	Comment   string `json:"comment"`
}
