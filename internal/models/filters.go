package models

// Sort keys accepted by GET /products.
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNameAsc   = "name_asc"
	SortNameDesc  = "name_desc"
	SortRating    = "rating"
	SortNewest    = "newest"
)

// ValidSortKey reports whether the backend understands the given sort key.
func ValidSortKey(key string) bool {
	switch key {
	case SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc, SortRating, SortNewest:
		return true
	}
	return false
}

// ProductFilters holds the transient catalog query parameters. A zero value
// means "no filter"; filters are rebuilt per catalog view, never persisted.
type ProductFilters struct {
	Category string
	MinPrice float64
	MaxPrice float64
	Brands   []string
	Rating   int
	InStock  bool
	Search   string
	SortBy   string
}

// IsZero reports whether no filter beyond the default sort is active.
func (f ProductFilters) IsZero() bool {
	return f.Category == "" && f.MinPrice == 0 && f.MaxPrice == 0 &&
		len(f.Brands) == 0 && f.Rating == 0 && !f.InStock && f.Search == ""
}

// Pagination mirrors the list-endpoint envelope metadata.
type Pagination struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}
