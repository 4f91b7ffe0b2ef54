package catalog

import "github.com/shopspring/decimal"

// Product is the normalized catalog entry. Upstream payloads are USD; the
// provider rewrites Price to whole-rupee INR and keeps the original amount
// in PriceUSD. Products are immutable once published by the provider; cart
// lines hold copies, never pointers into the catalog slice.
type Product struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Brand       *string         `json:"brand,omitempty"`
	Price       decimal.Decimal `json:"price"`
	PriceUSD    decimal.Decimal `json:"price_usd,omitempty"`
	Rating      float64         `json:"rating,omitempty"`
	Stock       int             `json:"stock,omitempty"`
	Images      []string        `json:"images,omitempty"`
	Thumbnail   string          `json:"thumbnail,omitempty"`
}

// BrandName returns the brand or an empty string when the upstream record
// has none.
func (p Product) BrandName() string {
	if p.Brand == nil {
		return ""
	}
	return *p.Brand
}
