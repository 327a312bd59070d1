package services

import (
	"context"
	"errors"
	"net/url"
	"reflect"
	"testing"

	"shopfront/internal/models"
)

func TestBrowsePassesParameters(t *testing.T) {
	var gotFilters models.ProductFilters
	var gotPage, gotLimit int
	gw := &fakeGateway{
		getProducts: func(filters models.ProductFilters, page, limit int) ([]models.Product, *models.Pagination, error) {
			gotFilters, gotPage, gotLimit = filters, page, limit
			return []models.Product{testProduct("p1", 10, 3)},
				&models.Pagination{CurrentPage: page, TotalPages: 4, TotalItems: 40, ItemsPerPage: limit}, nil
		},
	}
	svc := NewCatalogService(gw)

	filters := models.ProductFilters{Category: "Electronics", SortBy: models.SortPriceAsc}
	view := svc.Browse(context.Background(), filters, 2)

	if gotFilters.Category != "Electronics" || gotFilters.SortBy != models.SortPriceAsc {
		t.Errorf("filters forwarded = %+v", gotFilters)
	}
	if gotPage != 2 || gotLimit != DefaultPageSize {
		t.Errorf("page/limit = %d/%d, want 2/%d", gotPage, gotLimit, DefaultPageSize)
	}
	if view.NoResults || view.Error != "" {
		t.Errorf("unexpected view state: %+v", view)
	}
	if view.Pagination.TotalPages != 4 {
		t.Errorf("pagination not carried through")
	}
}

func TestBrowseNormalizesPageAndSort(t *testing.T) {
	gw := &fakeGateway{
		getProducts: func(filters models.ProductFilters, page, limit int) ([]models.Product, *models.Pagination, error) {
			if page != 1 {
				t.Errorf("page = %d, want floor at 1", page)
			}
			if filters.SortBy != models.SortNewest {
				t.Errorf("sortBy = %s, want fallback to newest", filters.SortBy)
			}
			return nil, &models.Pagination{}, nil
		},
	}
	NewCatalogService(gw).Browse(context.Background(), models.ProductFilters{SortBy: "bogus"}, 0)
}

// Page links carry the whole catalog state, so PageQuery must re-emit
// every active filter alongside the page number.
func TestPageQueryKeepsFilterState(t *testing.T) {
	view := CatalogView{
		Filters: models.ProductFilters{
			Category: "Electronics",
			MinPrice: 10,
			MaxPrice: 99.5,
			Brands:   []string{"Acme", "Globex"},
			Rating:   4,
			InStock:  true,
			Search:   "key",
			SortBy:   models.SortPriceAsc,
		},
	}

	params, err := url.ParseQuery(view.PageQuery(3))
	if err != nil {
		t.Fatalf("PageQuery output does not parse: %v", err)
	}

	want := url.Values{
		"page":     {"3"},
		"category": {"Electronics"},
		"minPrice": {"10"},
		"maxPrice": {"99.5"},
		"brand":    {"Acme", "Globex"},
		"rating":   {"4"},
		"inStock":  {"true"},
		"search":   {"key"},
		"sortBy":   {"price_asc"},
	}
	if !reflect.DeepEqual(params, want) {
		t.Errorf("PageQuery(3) = %v, want %v", params, want)
	}
}

func TestPageQueryOmitsInactiveFilters(t *testing.T) {
	view := CatalogView{Filters: models.ProductFilters{SortBy: models.SortNewest}}
	if got := view.PageQuery(2); got != "page=2&sortBy=newest" {
		t.Errorf("PageQuery(2) = %q, want only page and sort", got)
	}
}

func TestBrowseNoResultsIsExplicitState(t *testing.T) {
	gw := &fakeGateway{
		getProducts: func(filters models.ProductFilters, page, limit int) ([]models.Product, *models.Pagination, error) {
			return []models.Product{}, &models.Pagination{CurrentPage: 1}, nil
		},
	}
	view := NewCatalogService(gw).Browse(context.Background(), models.ProductFilters{}, 1)

	if !view.NoResults {
		t.Error("empty listing must set NoResults")
	}
	if view.Error != "" {
		t.Error("no results is not an error")
	}
}

func TestBrowseErrorSurfacesInline(t *testing.T) {
	gw := &fakeGateway{
		getProducts: func(filters models.ProductFilters, page, limit int) ([]models.Product, *models.Pagination, error) {
			return nil, nil, errors.New("backend unreachable")
		},
	}
	view := NewCatalogService(gw).Browse(context.Background(), models.ProductFilters{}, 1)

	if view.Error != "backend unreachable" {
		t.Errorf("Error = %q, want the gateway reason", view.Error)
	}
	if view.NoResults {
		t.Error("a failed query is not a no-results state")
	}
}
