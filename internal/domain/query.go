package domain

import (
	"sort"
	"strings"
)

// ProductSort enumerates the supported list orderings.
type ProductSort string

const (
	// SortRelevance preserves the store's natural order.
	SortRelevance ProductSort = "relevance"
	// SortName orders alphabetically by product name.
	SortName ProductSort = "name"
	// SortPriceLow orders by base price ascending.
	SortPriceLow ProductSort = "price-low"
	// SortPriceHigh orders by base price descending.
	SortPriceHigh ProductSort = "price-high"
	// SortRating orders by rating descending.
	SortRating ProductSort = "rating"
	// SortNewest orders by creation time descending.
	SortNewest ProductSort = "newest"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// ProductQuery is the options bag for catalog listings. Zero values mean
// "no filter". Normalize must be called before evaluation.
type ProductQuery struct {
	Search     string
	Status     *ProductStatus
	CategoryID string
	IsFeatured *bool
	PriceMin   *float64
	PriceMax   *float64
	Sort       ProductSort
	Page       int
	Limit      int
}

// Normalize clamps paging inputs, trims the search term, and falls back to
// relevance ordering for unknown sort keys. Normalizing twice is a no-op.
func (q ProductQuery) Normalize() ProductQuery {
	q.Search = strings.TrimSpace(q.Search)
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = defaultPageLimit
	}
	if q.Limit > maxPageLimit {
		q.Limit = maxPageLimit
	}
	switch q.Sort {
	case SortName, SortPriceLow, SortPriceHigh, SortRating, SortNewest, SortRelevance:
	default:
		q.Sort = SortRelevance
	}
	return q
}

// Offset returns the number of items skipped before the current page.
func (q ProductQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Matches reports whether the product satisfies every filter in the query.
// The search term matches case-insensitively as a substring of name,
// description, brand, or SKU.
func (q ProductQuery) Matches(p Product) bool {
	if q.Status != nil && p.Status != *q.Status {
		return false
	}
	if q.CategoryID != "" && p.CategoryID != q.CategoryID {
		return false
	}
	if q.IsFeatured != nil && p.IsFeatured != *q.IsFeatured {
		return false
	}
	if q.PriceMin != nil && p.BasePrice < *q.PriceMin {
		return false
	}
	if q.PriceMax != nil && p.BasePrice > *q.PriceMax {
		return false
	}
	if q.Search != "" && !matchesSearch(p, q.Search) {
		return false
	}
	return true
}

func matchesSearch(p Product, term string) bool {
	needle := strings.ToLower(term)
	for _, field := range []string{p.Name, p.Description, p.Brand, p.SKU} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// SortProducts orders products in place according to the sort key. The sort
// is stable so equal elements keep their store order, and relevance leaves
// the slice untouched.
func SortProducts(products []Product, key ProductSort) {
	switch key {
	case SortName:
		sort.SliceStable(products, func(i, j int) bool {
			return strings.ToLower(products[i].Name) < strings.ToLower(products[j].Name)
		})
	case SortPriceLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].BasePrice < products[j].BasePrice
		})
	case SortPriceHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].BasePrice > products[j].BasePrice
		})
	case SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	case SortNewest:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	}
}

// Page is one page of a filtered listing together with offset paging
// metadata.
type Page[T any] struct {
	Items      []T
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

// Paginate slices items for the query's page, reporting the pre-slice total.
// Pages past the end return an empty item set with intact metadata.
func Paginate[T any](items []T, q ProductQuery) Page[T] {
	total := len(items)
	totalPages := (total + q.Limit - 1) / q.Limit
	start := q.Offset()
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}
	return Page[T]{
		Items:      items[start:end],
		Page:       q.Page,
		Limit:      q.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
