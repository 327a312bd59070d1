package services

import (
	"context"
	"log"
	"net/url"
	"strconv"

	"shopfront/internal/models"
)

// DefaultPageSize is the fixed catalog page size.
const DefaultPageSize = 12

// CatalogView is everything the products page needs to render one
// listing state. Loading is implicit in the server-rendered form; the
// "no results" and error states are explicit, not failures.
type CatalogView struct {
	Products   []models.Product
	Filters    models.ProductFilters
	Page       int
	Pagination *models.Pagination
	NoResults  bool
	Error      string
}

// PageQuery encodes the active filters plus the given page number.
// Pagination links use it so moving between pages keeps the current
// filter and sort state; the state travels entirely in the URL.
func (v CatalogView) PageQuery(page int) string {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	f := v.Filters
	if f.Category != "" {
		params.Set("category", f.Category)
	}
	if f.Search != "" {
		params.Set("search", f.Search)
	}
	if f.MinPrice > 0 {
		params.Set("minPrice", strconv.FormatFloat(f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice > 0 {
		params.Set("maxPrice", strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	}
	for _, brand := range f.Brands {
		params.Add("brand", brand)
	}
	if f.Rating > 0 {
		params.Set("rating", strconv.Itoa(f.Rating))
	}
	if f.InStock {
		params.Set("inStock", "true")
	}
	if f.SortBy != "" {
		params.Set("sortBy", f.SortBy)
	}
	return params.Encode()
}

// CatalogService issues a fresh paginated query for every parameter
// change. Nothing is cached between pages and an in-flight request is
// never cancelled by a newer one; a slow earlier response can still
// reach the browser after a later one.
type CatalogService struct {
	gateway Gateway
}

func NewCatalogService(gateway Gateway) *CatalogService {
	return &CatalogService{gateway: gateway}
}

// Browse runs one catalog query. Filters with an unknown sort key fall
// back to newest-first. A gateway failure becomes an inline error on the
// view; the prior page state in the browser is untouched.
func (s *CatalogService) Browse(ctx context.Context, filters models.ProductFilters, page int) CatalogView {
	if page < 1 {
		page = 1
	}
	if !models.ValidSortKey(filters.SortBy) {
		filters.SortBy = models.SortNewest
	}

	view := CatalogView{
		Filters: filters,
		Page:    page,
	}

	products, pagination, err := s.gateway.GetProducts(ctx, filters, page, DefaultPageSize)
	if err != nil {
		log.Printf("CatalogService.Browse - product query failed: %v", err)
		view.Error = err.Error()
		return view
	}

	view.Products = products
	view.Pagination = pagination
	view.NoResults = len(products) == 0
	return view
}
