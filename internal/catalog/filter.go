package catalog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/angelmondragon/storefront-api/pkg/errors"
)

// Sort identifies the ordering applied after filtering.
type Sort string

const (
	SortDefault    Sort = "default"
	SortPriceAsc   Sort = "price-asc"
	SortPriceDesc  Sort = "price-desc"
	SortRatingDesc Sort = "rating-desc"
	SortNameAsc    Sort = "name-asc"
)

// ParseSort validates a sort key from the query string. Empty means default.
func ParseSort(raw string) (Sort, error) {
	switch Sort(strings.TrimSpace(raw)) {
	case "", SortDefault:
		return SortDefault, nil
	case SortPriceAsc:
		return SortPriceAsc, nil
	case SortPriceDesc:
		return SortPriceDesc, nil
	case SortRatingDesc:
		return SortRatingDesc, nil
	case SortNameAsc:
		return SortNameAsc, nil
	}
	return SortDefault, pkgerrors.New(pkgerrors.CodeValidation, "unknown sort key").WithDetails(map[string]any{"sort": raw})
}

// Criteria holds the filter knobs for one pipeline run. The zero-restriction
// values are an empty category set, a [0, cap] price range, and a zero
// minimum rating.
type Criteria struct {
	Categories []string
	PriceMin   decimal.Decimal
	PriceMax   decimal.Decimal
	MinRating  float64
	SortBy     Sort
}

// DefaultCriteria returns criteria that restrict nothing. The price range
// is bounded by a fixed large cap rather than being truly open-ended,
// matching the storefront's "All Prices" bucket.
func DefaultCriteria(priceCap int) Criteria {
	return Criteria{
		PriceMin: decimal.Zero,
		PriceMax: decimal.NewFromInt(int64(priceCap)),
		SortBy:   SortDefault,
	}
}

// Apply runs the filter pipeline: search, category, price range, rating,
// then sort. Each predicate short-circuits at its no-restriction value and
// none of them can fail; records missing an optional field simply do not
// match the predicate on that field. Sort is always the final stage and is
// stable, so equal keys keep catalog order.
func Apply(products []Product, searchTerm string, criteria Criteria) []Product {
	term := strings.ToLower(strings.TrimSpace(searchTerm))
	categories := toSet(criteria.Categories)

	result := make([]Product, 0, len(products))
	for _, p := range products {
		if !matchesSearch(p, term) {
			continue
		}
		if !matchesCategory(p, categories) {
			continue
		}
		if !matchesPriceRange(p, criteria.PriceMin, criteria.PriceMax) {
			continue
		}
		if !matchesRating(p, criteria.MinRating) {
			continue
		}
		result = append(result, p)
	}

	sortProducts(result, criteria.SortBy)
	return result
}

// matchesSearch is an OR across title, description, category, and brand,
// case-insensitive substring.
func matchesSearch(p Product, term string) bool {
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Title), term) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), term) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Category), term) {
		return true
	}
	if brand := p.BrandName(); brand != "" && strings.Contains(strings.ToLower(brand), term) {
		return true
	}
	return false
}

func matchesCategory(p Product, categories map[string]struct{}) bool {
	if len(categories) == 0 {
		return true
	}
	_, ok := categories[p.Category]
	return ok
}

func matchesPriceRange(p Product, min, max decimal.Decimal) bool {
	return p.Price.GreaterThanOrEqual(min) && p.Price.LessThanOrEqual(max)
}

// matchesRating treats a missing rating as zero, which never satisfies a
// positive minimum.
func matchesRating(p Product, minRating float64) bool {
	if minRating <= 0 {
		return true
	}
	return p.Rating >= minRating
}

func sortProducts(products []Product, by Sort) {
	switch by {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.LessThan(products[j].Price)
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.GreaterThan(products[j].Price)
		})
	case SortRatingDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	case SortNameAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Title < products[j].Title
		})
	}
}

// Categories returns the distinct category names in catalog order, feeding
// the storefront's filter panel.
func Categories(products []Product) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			set[trimmed] = struct{}{}
		}
	}
	return set
}
