// Package catalog derives the visible product list from the full catalog.
// Nothing here mutates its input.
package catalog

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"storefront/internal/domain"
)

// SortKey selects one total order over products.
type SortKey string

const (
	SortNone       SortKey = ""
	SortPriceAsc   SortKey = "price-asc"
	SortPriceDesc  SortKey = "price-desc"
	SortNameAsc    SortKey = "name-asc"
	SortNameDesc   SortKey = "name-desc"
	SortBrandAsc   SortKey = "brand-asc"
	SortBrandDesc  SortKey = "brand-desc"
	SortPopularity SortKey = "popularity"
)

var sortKeys = []SortKey{SortNone, SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc, SortBrandAsc, SortBrandDesc, SortPopularity}

// ParseSortKey accepts the wire names above.
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(sortKeys, k) {
		return k, nil
	}
	return SortNone, domain.Invalid("sort", fmt.Sprintf("unknown key %q", s))
}

// Filter keeps products matching category, then subcategory, then the
// free-text search over name, description, brand and category.
func Filter(products []domain.Product, f domain.Filters) []domain.Product {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.SubCategory != "" && p.SubCategory != f.SubCategory {
			continue
		}
		if search != "" && !matches(p, search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matches(p domain.Product, needle string) bool {
	for _, field := range []string{p.Name, p.Description, p.Brand, p.Category} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Popularity is 10 for a new product plus 5 for a discounted one.
func Popularity(p domain.Product) int {
	score := 0
	if p.IsNew {
		score += 10
	}
	if p.Discount > 0 {
		score += 5
	}
	return score
}

// Sort returns a stably sorted copy. SortNone keeps input order.
func Sort(products []domain.Product, key SortKey) []domain.Product {
	out := slices.Clone(products)
	var less func(a, b domain.Product) int
	switch key {
	case SortPriceAsc:
		less = func(a, b domain.Product) int { return a.Price.Cmp(b.Price) }
	case SortPriceDesc:
		less = func(a, b domain.Product) int { return b.Price.Cmp(a.Price) }
	case SortNameAsc:
		less = func(a, b domain.Product) int { return strings.Compare(a.Name, b.Name) }
	case SortNameDesc:
		less = func(a, b domain.Product) int { return strings.Compare(b.Name, a.Name) }
	case SortBrandAsc:
		less = func(a, b domain.Product) int { return strings.Compare(a.Brand, b.Brand) }
	case SortBrandDesc:
		less = func(a, b domain.Product) int { return strings.Compare(b.Brand, a.Brand) }
	case SortPopularity:
		less = func(a, b domain.Product) int { return cmp.Compare(Popularity(b), Popularity(a)) }
	default:
		return out
	}
	slices.SortStableFunc(out, less)
	return out
}

// Visible applies Filter then Sort.
func Visible(products []domain.Product, f domain.Filters, key SortKey) []domain.Product {
	return Sort(Filter(products, f), key)
}

// SubCategoriesOf lists the subcategories of the named category, or nil.
func SubCategoriesOf(categories []domain.Category, name string) []string {
	for _, c := range categories {
		if c.Name == name {
			return slices.Clone(c.SubCategories)
		}
	}
	return nil
}
