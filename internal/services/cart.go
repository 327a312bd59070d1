package services

import (
	"log"
	"sync"
	"time"

	"shopfront/internal/models"
)

// Pricing policy consumed by checkout. Fixed constants, not configurable
// per region.
const (
	FreeShippingThreshold = 50.0
	FlatShippingFee       = 9.99
	TaxRate               = 0.08
)

// CartService manages one cart per storefront session. Carts live in
// memory only; they are created empty at session start, mutated by the
// cart endpoints and cleared exactly once after a successful order.
type CartService struct {
	mu    sync.RWMutex
	carts map[string]*models.Cart
}

func NewCartService() *CartService {
	return &CartService{
		carts: make(map[string]*models.Cart),
	}
}

// GetCart returns a snapshot of the session's cart, creating an empty
// one on first touch.
func (cs *CartService) GetCart(sessionID string) *models.Cart {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return snapshot(cs.getOrCreate(sessionID))
}

// AddItem adds quantity units of product to the cart. If the product is
// already present the quantities accumulate. The resulting quantity is
// clamped so it never exceeds the product's known stock; a request for
// zero or fewer units does nothing.
func (cs *CartService) AddItem(sessionID string, product models.Product, quantity int) {
	if quantity <= 0 {
		log.Printf("CartService.AddItem - ignoring non-positive quantity %d for product %s", quantity, product.ID)
		return
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()

	cart := cs.getOrCreate(sessionID)
	for i := range cart.Items {
		if cart.Items[i].Product.ID == product.ID {
			qty := clampToStock(cart.Items[i].Quantity+quantity, product.Stock)
			if qty <= 0 {
				// The product's known stock dropped to zero since it
				// was added.
				cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			} else {
				cart.Items[i].Quantity = qty
			}
			cs.recompute(cart)
			return
		}
	}

	qty := clampToStock(quantity, product.Stock)
	if qty <= 0 {
		// Out of stock: nothing to insert.
		return
	}
	cart.Items = append(cart.Items, models.CartItem{Product: product, Quantity: qty})
	cs.recompute(cart)
}

// UpdateQuantity sets the quantity for a product directly. Zero or a
// negative value removes the entry; a value above stock clamps to stock.
func (cs *CartService) UpdateQuantity(sessionID, productID string, quantity int) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cart, ok := cs.carts[sessionID]
	if !ok {
		return
	}

	for i := range cart.Items {
		if cart.Items[i].Product.ID != productID {
			continue
		}
		if quantity <= 0 {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
		} else {
			cart.Items[i].Quantity = clampToStock(quantity, cart.Items[i].Product.Stock)
		}
		cs.recompute(cart)
		return
	}
}

// RemoveItem deletes the entry if present. Removing an absent product is
// not an error.
func (cs *CartService) RemoveItem(sessionID, productID string) {
	cs.UpdateQuantity(sessionID, productID, 0)
}

// ClearCart empties the collection. Called exactly once, after order
// placement succeeds.
func (cs *CartService) ClearCart(sessionID string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cart, ok := cs.carts[sessionID]
	if !ok {
		return
	}
	cart.Items = nil
	cs.recompute(cart)
}

// ItemCount is the sum of quantities over all entries.
func (cs *CartService) ItemCount(sessionID string) int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	if cart, ok := cs.carts[sessionID]; ok {
		return cart.TotalItems
	}
	return 0
}

// Subtotal is Σ price × quantity over all entries.
func (cs *CartService) Subtotal(sessionID string) float64 {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	if cart, ok := cs.carts[sessionID]; ok {
		return cart.Subtotal
	}
	return 0
}

func (cs *CartService) IsInCart(sessionID, productID string) bool {
	return cs.GetItemQuantity(sessionID, productID) > 0
}

func (cs *CartService) GetItemQuantity(sessionID, productID string) int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	cart, ok := cs.carts[sessionID]
	if !ok {
		return 0
	}
	for _, item := range cart.Items {
		if item.Product.ID == productID {
			return item.Quantity
		}
	}
	return 0
}

// Totals applies the pricing policy to the current subtotal: free
// shipping above the threshold, a flat fee below it, 8% tax on the
// subtotal.
func (cs *CartService) Totals(sessionID string) models.CartTotals {
	return TotalsFor(cs.Subtotal(sessionID))
}

// TotalsFor computes the pricing breakdown for a given subtotal.
func TotalsFor(subtotal float64) models.CartTotals {
	shipping := FlatShippingFee
	if subtotal > FreeShippingThreshold {
		shipping = 0
	}
	tax := subtotal * TaxRate
	return models.CartTotals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal + shipping + tax,
	}
}

// getOrCreate must be called with the write lock held.
func (cs *CartService) getOrCreate(sessionID string) *models.Cart {
	if cart, ok := cs.carts[sessionID]; ok {
		return cart
	}
	cart := &models.Cart{
		SessionID: sessionID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	cs.carts[sessionID] = cart
	return cart
}

// recompute must be called with the write lock held.
func (cs *CartService) recompute(cart *models.Cart) {
	totalItems := 0
	subtotal := 0.0
	for _, item := range cart.Items {
		totalItems += item.Quantity
		subtotal += item.LineTotal()
	}
	cart.TotalItems = totalItems
	cart.Subtotal = subtotal
	cart.UpdatedAt = time.Now()
}

func snapshot(cart *models.Cart) *models.Cart {
	clone := *cart
	clone.Items = append([]models.CartItem(nil), cart.Items...)
	return &clone
}

func clampToStock(quantity, stock int) int {
	if quantity > stock {
		return stock
	}
	return quantity
}
