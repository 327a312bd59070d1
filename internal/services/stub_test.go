package services

import (
	"context"
	"errors"

	"shopfront/internal/models"
)

// fakeGateway lets each test script the backend. Unset functions fail
// loudly so a test never silently exercises the wrong endpoint.
type fakeGateway struct {
	getProducts    func(filters models.ProductFilters, page, limit int) ([]models.Product, *models.Pagination, error)
	getProduct     func(id string) (*models.Product, error)
	login          func(credentials models.LoginCredentials) (*models.AuthPayload, error)
	register       func(data models.RegisterData) (*models.AuthPayload, error)
	logout         func(token string) error
	createOrder    func(token string, order models.OrderRequest) (*models.Order, error)
	getUserOrders  func(token, userID string) ([]models.Order, error)
	logoutCalls    int
	createdOrders  []models.OrderRequest
	suppliedTokens []string
}

var errUnexpectedCall = errors.New("unexpected gateway call")

func (f *fakeGateway) GetProducts(ctx context.Context, filters models.ProductFilters, page, limit int) ([]models.Product, *models.Pagination, error) {
	if f.getProducts == nil {
		return nil, nil, errUnexpectedCall
	}
	return f.getProducts(filters, page, limit)
}

func (f *fakeGateway) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	if f.getProduct == nil {
		return nil, errUnexpectedCall
	}
	return f.getProduct(id)
}

func (f *fakeGateway) GetFeaturedProducts(ctx context.Context) ([]models.Product, error) {
	return nil, errUnexpectedCall
}

func (f *fakeGateway) GetCategories(ctx context.Context) ([]models.Category, error) {
	return nil, errUnexpectedCall
}

func (f *fakeGateway) GetProductReviews(ctx context.Context, productID string) ([]models.Review, error) {
	return nil, errUnexpectedCall
}

func (f *fakeGateway) CreateReview(ctx context.Context, token string, review models.ReviewRequest) (*models.Review, error) {
	return nil, errUnexpectedCall
}

func (f *fakeGateway) Login(ctx context.Context, credentials models.LoginCredentials) (*models.AuthPayload, error) {
	if f.login == nil {
		return nil, errUnexpectedCall
	}
	return f.login(credentials)
}

func (f *fakeGateway) Register(ctx context.Context, data models.RegisterData) (*models.AuthPayload, error) {
	if f.register == nil {
		return nil, errUnexpectedCall
	}
	return f.register(data)
}

func (f *fakeGateway) Logout(ctx context.Context, token string) error {
	f.logoutCalls++
	if f.logout == nil {
		return nil
	}
	return f.logout(token)
}

func (f *fakeGateway) CreateOrder(ctx context.Context, token string, order models.OrderRequest) (*models.Order, error) {
	f.suppliedTokens = append(f.suppliedTokens, token)
	f.createdOrders = append(f.createdOrders, order)
	if f.createOrder == nil {
		return nil, errUnexpectedCall
	}
	return f.createOrder(token, order)
}

func (f *fakeGateway) GetUserOrders(ctx context.Context, token, userID string) ([]models.Order, error) {
	if f.getUserOrders == nil {
		return nil, errUnexpectedCall
	}
	return f.getUserOrders(token, userID)
}

func testProduct(id string, price float64, stock int) models.Product {
	return models.Product{
		ID:    id,
		Name:  "Product " + id,
		Price: price,
		Stock: stock,
	}
}
