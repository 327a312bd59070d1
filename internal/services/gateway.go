package services

import (
	"context"

	"shopfront/internal/models"
)

// Gateway is the slice of the remote backend API the services consume.
// *api.Client satisfies it; tests substitute fakes.
type Gateway interface {
	GetProducts(ctx context.Context, filters models.ProductFilters, page, limit int) ([]models.Product, *models.Pagination, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	GetFeaturedProducts(ctx context.Context) ([]models.Product, error)
	GetCategories(ctx context.Context) ([]models.Category, error)
	GetProductReviews(ctx context.Context, productID string) ([]models.Review, error)
	CreateReview(ctx context.Context, token string, review models.ReviewRequest) (*models.Review, error)
	Login(ctx context.Context, credentials models.LoginCredentials) (*models.AuthPayload, error)
	Register(ctx context.Context, data models.RegisterData) (*models.AuthPayload, error)
	Logout(ctx context.Context, token string) error
	CreateOrder(ctx context.Context, token string, order models.OrderRequest) (*models.Order, error)
	GetUserOrders(ctx context.Context, token, userID string) ([]models.Order, error)
}
