package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"shopfront/internal/models"
)

// GetProducts queries the paginated product listing. Only non-zero
// filter fields become query parameters, matching what the backend
// expects.
func (c *Client) GetProducts(ctx context.Context, filters models.ProductFilters, page, limit int) ([]models.Product, *models.Pagination, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))
	if filters.Category != "" {
		params.Set("category", filters.Category)
	}
	if filters.Search != "" {
		params.Set("search", filters.Search)
	}
	if filters.MinPrice > 0 {
		params.Set("minPrice", strconv.FormatFloat(filters.MinPrice, 'f', -1, 64))
	}
	if filters.MaxPrice > 0 {
		params.Set("maxPrice", strconv.FormatFloat(filters.MaxPrice, 'f', -1, 64))
	}
	if len(filters.Brands) > 0 {
		params.Set("brand", strings.Join(filters.Brands, ","))
	}
	if filters.Rating > 0 {
		params.Set("rating", strconv.Itoa(filters.Rating))
	}
	if filters.InStock {
		params.Set("inStock", "true")
	}
	if filters.SortBy != "" {
		params.Set("sortBy", filters.SortBy)
	}

	var products []models.Product
	env, err := c.get(ctx, "/products?"+params.Encode(), "", &products)
	if err != nil {
		return nil, nil, err
	}
	return products, env.Pagination, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if _, err := c.get(ctx, "/products/"+url.PathEscape(id), "", &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) GetFeaturedProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if _, err := c.get(ctx, "/products/featured", "", &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if _, err := c.get(ctx, "/categories", "", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) GetProductReviews(ctx context.Context, productID string) ([]models.Review, error) {
	var reviews []models.Review
	path := fmt.Sprintf("/products/%s/reviews", url.PathEscape(productID))
	if _, err := c.get(ctx, path, "", &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (c *Client) CreateReview(ctx context.Context, token string, review models.ReviewRequest) (*models.Review, error) {
	var created models.Review
	if err := c.post(ctx, "/reviews", token, review, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Login exchanges credentials for a user and bearer token.
func (c *Client) Login(ctx context.Context, credentials models.LoginCredentials) (*models.AuthPayload, error) {
	var payload models.AuthPayload
	if err := c.post(ctx, "/auth/login", "", credentials, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) Register(ctx context.Context, data models.RegisterData) (*models.AuthPayload, error) {
	var payload models.AuthPayload
	if err := c.post(ctx, "/auth/register", "", data, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) Logout(ctx context.Context, token string) error {
	return c.post(ctx, "/auth/logout", token, nil, nil)
}

// CreateOrder submits a checkout. The backend owns order creation; the
// response is the persisted order for the confirmation view.
func (c *Client) CreateOrder(ctx context.Context, token string, order models.OrderRequest) (*models.Order, error) {
	var created models.Order
	if err := c.post(ctx, "/orders", token, order, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) GetUserOrders(ctx context.Context, token, userID string) ([]models.Order, error) {
	var orders []models.Order
	path := fmt.Sprintf("/users/%s/orders", url.PathEscape(userID))
	if _, err := c.get(ctx, path, token, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
