package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"shopfront/internal/models"
	"shopfront/internal/services"
	"shopfront/internal/store"
)

// stubGateway drives the handlers without a backend; unscripted methods
// fail loudly.
type stubGateway struct {
	getProduct   func(id string) (*models.Product, error)
	getProducts  func(filters models.ProductFilters, page, limit int) ([]models.Product, *models.Pagination, error)
	login        func(credentials models.LoginCredentials) (*models.AuthPayload, error)
	createReview func(token string, review models.ReviewRequest) (*models.Review, error)
}

var errStubCall = errors.New("unexpected gateway call")

func (s *stubGateway) GetProducts(ctx context.Context, filters models.ProductFilters, page, limit int) ([]models.Product, *models.Pagination, error) {
	if s.getProducts == nil {
		return nil, nil, errStubCall
	}
	return s.getProducts(filters, page, limit)
}

func (s *stubGateway) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	if s.getProduct == nil {
		return nil, errStubCall
	}
	return s.getProduct(id)
}

func (s *stubGateway) GetFeaturedProducts(ctx context.Context) ([]models.Product, error) {
	return nil, errStubCall
}

func (s *stubGateway) GetCategories(ctx context.Context) ([]models.Category, error) {
	return nil, errStubCall
}

func (s *stubGateway) GetProductReviews(ctx context.Context, productID string) ([]models.Review, error) {
	return nil, errStubCall
}

func (s *stubGateway) CreateReview(ctx context.Context, token string, review models.ReviewRequest) (*models.Review, error) {
	if s.createReview == nil {
		return nil, errStubCall
	}
	return s.createReview(token, review)
}

func (s *stubGateway) Login(ctx context.Context, credentials models.LoginCredentials) (*models.AuthPayload, error) {
	if s.login == nil {
		return nil, errStubCall
	}
	return s.login(credentials)
}

func (s *stubGateway) Register(ctx context.Context, data models.RegisterData) (*models.AuthPayload, error) {
	return nil, errStubCall
}

func (s *stubGateway) Logout(ctx context.Context, token string) error {
	return errStubCall
}

func (s *stubGateway) CreateOrder(ctx context.Context, token string, order models.OrderRequest) (*models.Order, error) {
	return nil, errStubCall
}

func (s *stubGateway) GetUserOrders(ctx context.Context, token, userID string) ([]models.Order, error) {
	return nil, errStubCall
}

func newTestRouter(gw services.Gateway) (*gin.Engine, *Handler) {
	gin.SetMode(gin.TestMode)

	carts := services.NewCartService()
	sessions := services.NewSessionService(gw, store.NewMemoryStore())
	checkout := services.NewCheckoutService(gw, carts)
	catalog := services.NewCatalogService(gw)
	h := NewHandler(gw, carts, sessions, checkout, catalog)

	r := gin.New()
	r.POST("/cart/add", h.AddToCart)
	r.POST("/cart/update", h.UpdateCartItem)
	r.POST("/cart/remove", h.RemoveFromCart)
	r.GET("/cart/count", h.GetCartCount)
	r.POST("/products/:id/reviews", h.SubmitReview)
	protected := r.Group("/orders", h.AuthUserMiddleware())
	protected.GET("", h.OrdersPage)
	return r, h
}

type cartResponse struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Count   int               `json:"count"`
	Cart    models.Cart       `json:"cart"`
	Totals  models.CartTotals `json:"totals"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, cartResponse) {
	t.Helper()
	var reqBody bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&reqBody).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &reqBody)
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "shop_session", Value: "test-session"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp cartResponse
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response %q: %v", w.Body.String(), err)
		}
	}
	return w, resp
}

func TestAddToCartDefaultsQuantityToOne(t *testing.T) {
	gw := &stubGateway{
		getProduct: func(id string) (*models.Product, error) {
			return &models.Product{ID: id, Name: "Keyboard", Price: 49.99, Stock: 5}, nil
		},
	}
	r, _ := newTestRouter(gw)

	w, resp := doJSON(t, r, http.MethodPost, "/cart/add", map[string]interface{}{"product_id": "p1"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !resp.Success {
		t.Fatalf("success = false: %s", resp.Error)
	}
	if resp.Cart.TotalItems != 1 {
		t.Errorf("TotalItems = %d, want default quantity 1", resp.Cart.TotalItems)
	}
	if resp.Totals.Subtotal != 49.99 {
		t.Errorf("Subtotal = %v, want 49.99", resp.Totals.Subtotal)
	}
}

func TestAddToCartRejectsMalformedBody(t *testing.T) {
	r, _ := newTestRouter(&stubGateway{})

	w, resp := doJSON(t, r, http.MethodPost, "/cart/add", map[string]interface{}{"quantity": 2})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for missing product_id", w.Code)
	}
	if resp.Success {
		t.Error("success must be false")
	}
}

func TestAddToCartSurfacesLookupFailure(t *testing.T) {
	gw := &stubGateway{
		getProduct: func(id string) (*models.Product, error) {
			return nil, errors.New("product not found")
		},
	}
	r, _ := newTestRouter(gw)

	w, resp := doJSON(t, r, http.MethodPost, "/cart/add", map[string]interface{}{"product_id": "missing"})
	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", w.Code)
	}
	if resp.Error != "product not found" {
		t.Errorf("error = %q, want the lookup reason", resp.Error)
	}
}

func TestCartMutationRoundTrip(t *testing.T) {
	gw := &stubGateway{
		getProduct: func(id string) (*models.Product, error) {
			return &models.Product{ID: id, Name: "Keyboard", Price: 10.00, Stock: 5}, nil
		},
	}
	r, _ := newTestRouter(gw)

	doJSON(t, r, http.MethodPost, "/cart/add", map[string]interface{}{"product_id": "p1", "quantity": 2})

	_, resp := doJSON(t, r, http.MethodPost, "/cart/update", map[string]interface{}{"product_id": "p1", "quantity": 4})
	if resp.Cart.TotalItems != 4 {
		t.Errorf("TotalItems after update = %d, want 4", resp.Cart.TotalItems)
	}

	_, resp = doJSON(t, r, http.MethodPost, "/cart/remove", map[string]interface{}{"product_id": "p1"})
	if resp.Cart.TotalItems != 0 {
		t.Errorf("TotalItems after remove = %d, want 0", resp.Cart.TotalItems)
	}

	_, resp = doJSON(t, r, http.MethodGet, "/cart/count", nil)
	if resp.Count != 0 {
		t.Errorf("count = %d, want 0", resp.Count)
	}
}

func TestCartIsPerSession(t *testing.T) {
	gw := &stubGateway{
		getProduct: func(id string) (*models.Product, error) {
			return &models.Product{ID: id, Price: 5.00, Stock: 9}, nil
		},
	}
	r, _ := newTestRouter(gw)

	doJSON(t, r, http.MethodPost, "/cart/add", map[string]interface{}{"product_id": "p1", "quantity": 3})

	// A different browser session sees an empty cart.
	req := httptest.NewRequest(http.MethodGet, "/cart/count", nil)
	req.AddCookie(&http.Cookie{Name: "shop_session", Value: "other-session"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp cartResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 0 {
		t.Errorf("count = %d, want 0 for a fresh session", resp.Count)
	}
}

func TestAuthMiddlewareRedirectsAnonymous(t *testing.T) {
	r, _ := newTestRouter(&stubGateway{})

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.AddCookie(&http.Cookie{Name: "shop_session", Value: "anon-session"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	if got := w.Header().Get("Location"); got != "/login" {
		t.Errorf("Location = %q, want /login", got)
	}
}

// Pagination links must re-emit the active filters; losing them would
// page through the unfiltered listing instead.
func TestPaginationLinksKeepFilterState(t *testing.T) {
	gw := &stubGateway{
		getProducts: func(filters models.ProductFilters, page, limit int) ([]models.Product, *models.Pagination, error) {
			return []models.Product{{ID: "p1", Name: "Keyboard", Price: 49.99, Stock: 5}},
				&models.Pagination{CurrentPage: page, TotalPages: 3, TotalItems: 30, ItemsPerPage: limit}, nil
		},
	}
	r, h := newTestRouter(gw)

	tmpl, err := template.New("products.html").Funcs(TemplateFuncs).
		ParseFiles("../../templates/products.html", "../../templates/base.html")
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}
	r.HTMLRender = &HTMLRenderer{Templates: map[string]*template.Template{"products.html": tmpl}}
	r.GET("/products", h.ProductsPage)

	req := httptest.NewRequest(http.MethodGet, "/products?category=Electronics&sortBy=price_asc&inStock=true&page=1", nil)
	req.AddCookie(&http.Cookie{Name: "shop_session", Value: "test-session"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	for _, param := range []string{"category=Electronics", "sortBy=price_asc", "inStock=true", "page=2"} {
		if !strings.Contains(body, param) {
			t.Errorf("page link lost %q:\n%s", param, body)
		}
	}
	if strings.Contains(body, `href="/products?page=`) {
		t.Error("found a bare page link without the active filters")
	}
}

// An error riding a redirect must be query-escaped or it corrupts the
// target URL.
func TestReviewFailureRedirectEscapesError(t *testing.T) {
	reason := "rating must be 1-5 & comment required"
	gw := &stubGateway{
		login: func(credentials models.LoginCredentials) (*models.AuthPayload, error) {
			return &models.AuthPayload{
				User:  models.User{ID: "u1", Email: credentials.Email},
				Token: "tok",
			}, nil
		},
		createReview: func(token string, review models.ReviewRequest) (*models.Review, error) {
			return nil, errors.New(reason)
		},
	}
	r, h := newTestRouter(gw)
	if _, err := h.sessions.Login(context.Background(), "test-session", models.LoginCredentials{Email: "jane@example.com", Password: "pw"}); err != nil {
		t.Fatalf("login: %v", err)
	}

	form := url.Values{"rating": {"6"}, "title": {"Bad"}, "comment": {"nope"}}
	req := httptest.NewRequest(http.MethodPost, "/products/p1/reviews", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "shop_session", Value: "test-session"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	want := "/products/p1?error=" + url.QueryEscape(reason)
	if got := w.Header().Get("Location"); got != want {
		t.Errorf("Location = %q, want %q", got, want)
	}
}

func TestFirstVisitMintsSessionCookie(t *testing.T) {
	r, _ := newTestRouter(&stubGateway{})

	req := httptest.NewRequest(http.MethodGet, "/cart/count", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var minted bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "shop_session" && c.Value != "" {
			minted = true
		}
	}
	if !minted {
		t.Error("first visit must set the session cookie")
	}
}
