package models

// Checkout steps. The flow is strictly linear: shipping → payment →
// review → complete, with payment→shipping and review→payment as the
// only backward transitions.
type CheckoutStep string

const (
	StepShipping CheckoutStep = "shipping"
	StepPayment  CheckoutStep = "payment"
	StepReview   CheckoutStep = "review"
	StepComplete CheckoutStep = "complete"
)

// Payment methods offered at checkout.
const (
	PaymentCard   = "card"
	PaymentPayPal = "paypal"
)

// PaymentInfo carries the payment form data. Card fields are required
// only when Method is "card". BillingSame means the billing address
// aliases the shipping address.
type PaymentInfo struct {
	Method      string `json:"method" form:"method"`
	NameOnCard  string `json:"nameOnCard,omitempty" form:"nameOnCard"`
	CardNumber  string `json:"cardNumber,omitempty" form:"cardNumber"`
	ExpiryDate  string `json:"expiryDate,omitempty" form:"expiryDate"`
	CVV         string `json:"cvv,omitempty" form:"cvv"`
	BillingSame bool   `json:"billingAddressSame" form:"billingAddressSame"`
}

// CheckoutState is the per-session state of the checkout flow.
type CheckoutState struct {
	Step            CheckoutStep `json:"step"`
	ShippingAddress Address      `json:"shippingAddress"`
	BillingAddress  Address      `json:"billingAddress"`
	Payment         PaymentInfo  `json:"payment"`
	PlacedOrder     *Order       `json:"placedOrder,omitempty"`
}
