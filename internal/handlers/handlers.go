package handlers

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"shopfront/internal/models"
	"shopfront/internal/services"
	"shopfront/internal/views"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// The storefront session cookie: one per browser, minted on first
// touch, good for 30 days.
const (
	sessionCookie = "shop_session"
	sessionMaxAge = 3600 * 24 * 30
)

// TemplateFuncs is installed into every template set.
var TemplateFuncs = template.FuncMap{
	"money": func(v float64) string {
		return fmt.Sprintf("$%.2f", v)
	},
	"pages": func(n int) []int {
		out := make([]int, n)
		for i := range out {
			out[i] = i + 1
		}
		return out
	},
	"stars": func(rating float64) string {
		full := int(rating + 0.5)
		if full > 5 {
			full = 5
		}
		s := ""
		for i := 0; i < 5; i++ {
			if i < full {
				s += "★"
			} else {
				s += "☆"
			}
		}
		return s
	},
}

// Handler owns the storefront views. Every dependency is passed in
// explicitly; there is no ambient global state.
type Handler struct {
	gateway  services.Gateway
	carts    *services.CartService
	sessions *services.SessionService
	checkout *services.CheckoutService
	catalog  *services.CatalogService
}

func NewHandler(gateway services.Gateway, carts *services.CartService, sessions *services.SessionService, checkout *services.CheckoutService, catalog *services.CatalogService) *Handler {
	return &Handler{
		gateway:  gateway,
		carts:    carts,
		sessions: sessions,
		checkout: checkout,
		catalog:  catalog,
	}
}

// sessionID returns the storefront session ID, minting a cookie for
// first-time visitors.
func (h *Handler) sessionID(c *gin.Context) string {
	sid, _ := c.Cookie(sessionCookie)
	if sid == "" {
		sid = uuid.New().String()
		c.SetCookie(sessionCookie, sid, sessionMaxAge, "/", "", false, true)
		log.Printf("Handler.sessionID - new storefront session %s", sid)
	}
	return sid
}

// frame builds the chrome every page shares.
func (h *Handler) frame(c *gin.Context, title string) views.Frame {
	sid := h.sessionID(c)
	return views.Frame{
		Title:     title,
		User:      h.sessions.CurrentUser(c.Request.Context(), sid),
		CartCount: h.carts.ItemCount(sid),
	}
}

// render resolves the page variant to its template. The variant carries
// all the data the template sees.
func (h *Handler) render(c *gin.Context, page views.Page) {
	c.HTML(http.StatusOK, views.TemplateName(page), page)
}

// AuthUserMiddleware gates pages that need a signed-in user.
func (h *Handler) AuthUserMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := h.sessionID(c)
		if h.sessions.CurrentUser(c.Request.Context(), sid) == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// HomePage shows featured products and the category strip.
func (h *Handler) HomePage(c *gin.Context) {
	page := views.Home{Frame: h.frame(c, "Home")}

	featured, err := h.gateway.GetFeaturedProducts(c.Request.Context())
	if err != nil {
		log.Printf("HomePage - featured products failed: %v", err)
		page.Error = err.Error()
	}
	page.Featured = featured

	categories, err := h.gateway.GetCategories(c.Request.Context())
	if err != nil {
		log.Printf("HomePage - categories failed: %v", err)
	}
	page.Categories = categories

	h.render(c, page)
}

// ProductsPage renders one catalog listing state. Filters arrive as
// query parameters and are rebuilt on every request; a filter form
// submission carries no page parameter, so any filter change lands back
// on page 1.
func (h *Handler) ProductsPage(c *gin.Context) {
	filters := parseFilters(c)
	pageNum, _ := strconv.Atoi(c.Query("page"))

	view := h.catalog.Browse(c.Request.Context(), filters, pageNum)
	h.render(c, views.Catalog{
		Frame: h.frame(c, "Products"),
		View:  view,
	})
}

// ProductDetailPage shows one product with its reviews.
func (h *Handler) ProductDetailPage(c *gin.Context) {
	id := c.Param("id")
	product, err := h.gateway.GetProduct(c.Request.Context(), id)
	if err != nil {
		log.Printf("ProductDetailPage - product %s failed: %v", id, err)
		c.Redirect(http.StatusFound, "/products")
		return
	}

	reviews, err := h.gateway.GetProductReviews(c.Request.Context(), id)
	if err != nil {
		// The product still renders; reviews just stay empty.
		log.Printf("ProductDetailPage - reviews for %s failed: %v", id, err)
	}

	sid := h.sessionID(c)
	h.render(c, views.ProductDetail{
		Frame:   h.frame(c, product.Name),
		Product: *product,
		Reviews: reviews,
		InCart:  h.carts.GetItemQuantity(sid, id),
		Error:   c.Query("error"),
	})
}

// SubmitReview posts a product review and returns to the detail page.
func (h *Handler) SubmitReview(c *gin.Context) {
	sid := h.sessionID(c)
	productID := c.Param("id")

	user := h.sessions.CurrentUser(c.Request.Context(), sid)
	if user == nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	rating, _ := strconv.Atoi(c.PostForm("rating"))
	review := models.ReviewRequest{
		ProductID: productID,
		UserID:    user.ID,
		UserName:  user.FullName(),
		Rating:    rating,
		Title:     c.PostForm("title"),
		Comment:   c.PostForm("comment"),
	}

	token := h.sessions.Token(c.Request.Context(), sid)
	if _, err := h.gateway.CreateReview(c.Request.Context(), token, review); err != nil {
		log.Printf("SubmitReview - review for %s failed: %v", productID, err)
		c.Redirect(http.StatusFound, "/products/"+productID+"?error="+url.QueryEscape(err.Error()))
		return
	}
	c.Redirect(http.StatusFound, "/products/"+productID)
}

// CartPage shows the cart with the pricing breakdown.
func (h *Handler) CartPage(c *gin.Context) {
	sid := h.sessionID(c)
	cart := h.carts.GetCart(sid)
	h.render(c, views.CartPage{
		Frame:  h.frame(c, "Cart"),
		Cart:   *cart,
		Totals: services.TotalsFor(cart.Subtotal),
	})
}

type cartMutation struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// AddToCart fetches the product (for its price and current stock) and
// adds it to the session's cart.
func (h *Handler) AddToCart(c *gin.Context) {
	sid := h.sessionID(c)

	var req cartMutation
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid cart request"})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	product, err := h.gateway.GetProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		log.Printf("AddToCart - product %s lookup failed: %v", req.ProductID, err)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": err.Error()})
		return
	}

	h.carts.AddItem(sid, *product, req.Quantity)
	h.cartJSON(c, sid)
}

// UpdateCartItem sets a quantity directly; zero removes the entry.
func (h *Handler) UpdateCartItem(c *gin.Context) {
	sid := h.sessionID(c)

	var req cartMutation
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid cart request"})
		return
	}

	h.carts.UpdateQuantity(sid, req.ProductID, req.Quantity)
	h.cartJSON(c, sid)
}

// RemoveFromCart deletes an entry; an absent product is not an error.
func (h *Handler) RemoveFromCart(c *gin.Context) {
	sid := h.sessionID(c)

	var req cartMutation
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid cart request"})
		return
	}

	h.carts.RemoveItem(sid, req.ProductID)
	h.cartJSON(c, sid)
}

// GetCartCount feeds the header badge.
func (h *Handler) GetCartCount(c *gin.Context) {
	sid := h.sessionID(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "count": h.carts.ItemCount(sid)})
}

func (h *Handler) cartJSON(c *gin.Context, sid string) {
	cart := h.carts.GetCart(sid)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"cart":    cart,
		"totals":  services.TotalsFor(cart.Subtotal),
	})
}

// CheckoutPage renders the current step of the flow. A finished flow is
// reset so the next visit starts a fresh checkout.
func (h *Handler) CheckoutPage(c *gin.Context) {
	sid := h.sessionID(c)

	state := h.checkout.State(sid)
	if state.Step == models.StepComplete {
		h.checkout.Reset(sid)
		state = h.checkout.State(sid)
	}

	cart := h.carts.GetCart(sid)
	if len(cart.Items) == 0 {
		c.Redirect(http.StatusFound, "/cart")
		return
	}

	h.renderCheckout(c, sid, state, "")
}

func (h *Handler) renderCheckout(c *gin.Context, sid string, state models.CheckoutState, errMsg string) {
	cart := h.carts.GetCart(sid)
	h.render(c, views.Checkout{
		Frame:  h.frame(c, "Checkout"),
		State:  state,
		Cart:   *cart,
		Totals: services.TotalsFor(cart.Subtotal),
		Error:  errMsg,
	})
}

// CheckoutShipping submits the shipping step.
func (h *Handler) CheckoutShipping(c *gin.Context) {
	sid := h.sessionID(c)

	address := models.Address{
		Street:  c.PostForm("street"),
		City:    c.PostForm("city"),
		State:   c.PostForm("state"),
		ZipCode: c.PostForm("zipCode"),
		Country: c.PostForm("country"),
	}
	if address.Country == "" {
		address.Country = "United States"
	}

	if err := h.checkout.SubmitShipping(sid, address); err != nil {
		state := h.checkout.State(sid)
		state.ShippingAddress = address
		h.renderCheckout(c, sid, state, err.Error())
		return
	}
	c.Redirect(http.StatusFound, "/checkout")
}

// CheckoutPayment submits the payment step.
func (h *Handler) CheckoutPayment(c *gin.Context) {
	sid := h.sessionID(c)

	payment := models.PaymentInfo{
		Method:      c.PostForm("method"),
		NameOnCard:  c.PostForm("nameOnCard"),
		CardNumber:  c.PostForm("cardNumber"),
		ExpiryDate:  c.PostForm("expiryDate"),
		CVV:         c.PostForm("cvv"),
		BillingSame: c.PostForm("billingAddressSame") != "",
	}
	billing := models.Address{
		Street:  c.PostForm("billingStreet"),
		City:    c.PostForm("billingCity"),
		State:   c.PostForm("billingState"),
		ZipCode: c.PostForm("billingZipCode"),
		Country: c.PostForm("billingCountry"),
	}

	if err := h.checkout.SubmitPayment(sid, payment, billing); err != nil {
		state := h.checkout.State(sid)
		state.Payment = payment
		h.renderCheckout(c, sid, state, err.Error())
		return
	}
	c.Redirect(http.StatusFound, "/checkout")
}

// CheckoutBack moves one step backwards.
func (h *Handler) CheckoutBack(c *gin.Context) {
	sid := h.sessionID(c)
	h.checkout.Back(sid)
	c.Redirect(http.StatusFound, "/checkout")
}

// PlaceOrder submits the order from the review step. Failure keeps the
// flow in review with the error shown inline; there is no retry.
func (h *Handler) PlaceOrder(c *gin.Context) {
	sid := h.sessionID(c)
	ctx := c.Request.Context()

	user := h.sessions.CurrentUser(ctx, sid)
	token := h.sessions.Token(ctx, sid)

	if _, err := h.checkout.PlaceOrder(ctx, sid, token, user); err != nil {
		log.Printf("PlaceOrder - session %s: %v", sid, err)
		h.renderCheckout(c, sid, h.checkout.State(sid), err.Error())
		return
	}
	c.Redirect(http.StatusFound, "/order-success")
}

// OrderSuccessPage is the terminal confirmation view.
func (h *Handler) OrderSuccessPage(c *gin.Context) {
	sid := h.sessionID(c)

	state := h.checkout.State(sid)
	if state.Step != models.StepComplete || state.PlacedOrder == nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	h.render(c, views.OrderSuccess{
		Frame: h.frame(c, "Order Placed"),
		Order: *state.PlacedOrder,
	})
}

func (h *Handler) LoginPage(c *gin.Context) {
	h.render(c, views.Login{Frame: h.frame(c, "Sign In")})
}

// HandleLogin delegates to the backend. Failure re-renders the form
// with the reason; the session stays anonymous.
func (h *Handler) HandleLogin(c *gin.Context) {
	sid := h.sessionID(c)

	credentials := models.LoginCredentials{
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
	}
	if credentials.Email == "" || credentials.Password == "" {
		h.render(c, views.Login{
			Frame: h.frame(c, "Sign In"),
			Email: credentials.Email,
			Error: "email and password are required",
		})
		return
	}

	if _, err := h.sessions.Login(c.Request.Context(), sid, credentials); err != nil {
		h.render(c, views.Login{
			Frame: h.frame(c, "Sign In"),
			Email: credentials.Email,
			Error: err.Error(),
		})
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) RegisterPage(c *gin.Context) {
	h.render(c, views.Register{Frame: h.frame(c, "Create Account")})
}

func (h *Handler) HandleRegister(c *gin.Context) {
	sid := h.sessionID(c)

	form := models.RegisterData{
		FirstName: c.PostForm("firstName"),
		LastName:  c.PostForm("lastName"),
		Email:     c.PostForm("email"),
		Password:  c.PostForm("password"),
		Phone:     c.PostForm("phone"),
	}
	if form.FirstName == "" || form.LastName == "" || form.Email == "" || form.Password == "" {
		h.render(c, views.Register{
			Frame: h.frame(c, "Create Account"),
			Form:  form,
			Error: "all fields except phone are required",
		})
		return
	}

	if _, err := h.sessions.Register(c.Request.Context(), sid, form); err != nil {
		h.render(c, views.Register{
			Frame: h.frame(c, "Create Account"),
			Form:  form,
			Error: err.Error(),
		})
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// UserLogout always lands back on the home page as an anonymous
// session, whatever the backend said.
func (h *Handler) UserLogout(c *gin.Context) {
	sid := h.sessionID(c)
	h.sessions.Logout(c.Request.Context(), sid)
	c.Redirect(http.StatusFound, "/")
}

// OrdersPage lists the signed-in user's order history.
func (h *Handler) OrdersPage(c *gin.Context) {
	sid := h.sessionID(c)
	ctx := c.Request.Context()

	user := h.sessions.CurrentUser(ctx, sid)
	if user == nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	page := views.Orders{Frame: h.frame(c, "My Orders")}
	orders, err := h.gateway.GetUserOrders(ctx, h.sessions.Token(ctx, sid), user.ID)
	if err != nil {
		log.Printf("OrdersPage - orders for %s failed: %v", user.ID, err)
		page.Error = err.Error()
	}
	page.Orders = orders
	h.render(c, page)
}

func (h *Handler) AboutPage(c *gin.Context) {
	h.render(c, views.About{Frame: h.frame(c, "About")})
}

func (h *Handler) ContactPage(c *gin.Context) {
	h.render(c, views.Contact{Frame: h.frame(c, "Contact")})
}

// parseFilters rebuilds the transient catalog filters from the query
// string. Unset parameters stay at their zero values.
func parseFilters(c *gin.Context) models.ProductFilters {
	filters := models.ProductFilters{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Brands:   c.QueryArray("brand"),
		SortBy:   c.Query("sortBy"),
	}
	if v := c.Query("minPrice"); v != "" {
		filters.MinPrice, _ = strconv.ParseFloat(v, 64)
	}
	if v := c.Query("maxPrice"); v != "" {
		filters.MaxPrice, _ = strconv.ParseFloat(v, 64)
	}
	if v := c.Query("rating"); v != "" {
		filters.Rating, _ = strconv.Atoi(v)
	}
	if v := c.Query("inStock"); v == "true" || v == "on" {
		filters.InStock = true
	}
	return filters
}
