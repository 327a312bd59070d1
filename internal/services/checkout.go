package services

import (
	"context"
	"errors"
	"log"
	"sync"

	"shopfront/internal/models"
)

// Checkout flow errors surfaced inline on the checkout page.
var (
	ErrWrongStep          = errors.New("step cannot be submitted from the current checkout state")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrNotSignedIn        = errors.New("sign in to place an order")
	ErrIncompleteAddress  = errors.New("all address fields are required")
	ErrNoPaymentMethod    = errors.New("select a payment method")
	ErrIncompleteCard     = errors.New("all card fields are required")
	ErrOrderAlreadyPlaced = errors.New("this checkout is already complete")
)

// CheckoutService drives the per-session checkout state machine:
// shipping → payment → review → complete, with payment→shipping and
// review→payment the only backward moves. A step is never skipped past
// its local validation.
type CheckoutService struct {
	gateway Gateway
	cart    *CartService

	mu    sync.Mutex
	flows map[string]*models.CheckoutState
}

func NewCheckoutService(gateway Gateway, cart *CartService) *CheckoutService {
	return &CheckoutService{
		gateway: gateway,
		cart:    cart,
		flows:   make(map[string]*models.CheckoutState),
	}
}

// State returns a copy of the session's checkout state, starting a new
// flow at the shipping step on first touch.
func (s *CheckoutService) State(sessionID string) models.CheckoutState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.flow(sessionID)
}

// SubmitShipping validates the shipping address and advances to the
// payment step. No server-side address validation happens here; the
// fields just have to be filled in.
func (s *CheckoutService) SubmitShipping(sessionID string, address models.Address) error {
	if !address.Complete() {
		return ErrIncompleteAddress
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	flow := s.flow(sessionID)
	if flow.Step != models.StepShipping {
		return ErrWrongStep
	}
	flow.ShippingAddress = address
	flow.Step = models.StepPayment
	return nil
}

// SubmitPayment validates the payment form and advances to review.
// Card details are required only for the card method. When the billing
// address is not the shipping address it must be complete too.
func (s *CheckoutService) SubmitPayment(sessionID string, payment models.PaymentInfo, billing models.Address) error {
	if payment.Method == "" {
		return ErrNoPaymentMethod
	}
	if payment.Method == models.PaymentCard {
		if payment.NameOnCard == "" || payment.CardNumber == "" || payment.ExpiryDate == "" || payment.CVV == "" {
			return ErrIncompleteCard
		}
	}
	if !payment.BillingSame && !billing.Complete() {
		return ErrIncompleteAddress
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	flow := s.flow(sessionID)
	if flow.Step != models.StepPayment {
		return ErrWrongStep
	}
	flow.Payment = payment
	if payment.BillingSame {
		flow.BillingAddress = flow.ShippingAddress
	} else {
		flow.BillingAddress = billing
	}
	flow.Step = models.StepReview
	return nil
}

// Back moves one step backwards where the flow allows it. Complete is
// terminal; shipping has nowhere to go.
func (s *CheckoutService) Back(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow := s.flow(sessionID)
	switch flow.Step {
	case models.StepPayment:
		flow.Step = models.StepShipping
	case models.StepReview:
		flow.Step = models.StepPayment
	}
}

// PlaceOrder submits the order from the review step: a snapshot of the
// cart, the chosen addresses, the payment method and the cart's computed
// totals. On success the cart is cleared and the flow reaches its
// terminal complete state; on failure the flow stays in review and the
// error is surfaced. There is no automatic retry.
func (s *CheckoutService) PlaceOrder(ctx context.Context, sessionID, token string, user *models.User) (*models.Order, error) {
	if user == nil {
		return nil, ErrNotSignedIn
	}

	s.mu.Lock()
	flow := s.flow(sessionID)
	if flow.Step == models.StepComplete {
		s.mu.Unlock()
		return nil, ErrOrderAlreadyPlaced
	}
	if flow.Step != models.StepReview {
		s.mu.Unlock()
		return nil, ErrWrongStep
	}
	shipping := flow.ShippingAddress
	billing := flow.BillingAddress
	method := flow.Payment.Method
	s.mu.Unlock()

	cart := s.cart.GetCart(sessionID)
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}
	totals := TotalsFor(cart.Subtotal)

	request := models.OrderRequest{
		UserID:          user.ID,
		Items:           cart.Items,
		ShippingAddress: shipping,
		BillingAddress:  billing,
		PaymentMethod:   method,
		Subtotal:        totals.Subtotal,
		Shipping:        totals.Shipping,
		Tax:             totals.Tax,
		Total:           totals.Total,
		Status:          models.OrderPending,
	}

	order, err := s.gateway.CreateOrder(ctx, token, request)
	if err != nil {
		log.Printf("CheckoutService.PlaceOrder - order submission failed for session %s: %v", sessionID, err)
		return nil, err
	}

	s.cart.ClearCart(sessionID)

	// Re-fetch the flow: a Reset during the gateway call replaces the
	// map entry, and the completion must land on the live one.
	s.mu.Lock()
	flow = s.flow(sessionID)
	flow.Step = models.StepComplete
	flow.PlacedOrder = order
	s.mu.Unlock()

	log.Printf("CheckoutService.PlaceOrder - order %s placed for session %s", order.ID, sessionID)
	return order, nil
}

// Reset discards the session's flow so a new checkout starts at
// shipping. Called when the user returns to the store after a completed
// order.
func (s *CheckoutService) Reset(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.flows, sessionID)
}

// flow must be called with the lock held.
func (s *CheckoutService) flow(sessionID string) *models.CheckoutState {
	if flow, ok := s.flows[sessionID]; ok {
		return flow
	}
	flow := &models.CheckoutState{
		Step: models.StepShipping,
		ShippingAddress: models.Address{
			Country: "United States",
		},
		Payment: models.PaymentInfo{
			Method:      models.PaymentCard,
			BillingSame: true,
		},
	}
	s.flows[sessionID] = flow
	return flow
}
