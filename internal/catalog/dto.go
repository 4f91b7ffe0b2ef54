package catalog

import (
	"github.com/angelmondragon/storefront-api/pkg/currency"
	"github.com/shopspring/decimal"
)

// ProductDTO is the catalog payload returned to clients: the normalized
// product plus its formatted display price.
type ProductDTO struct {
	ID           int64           `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Brand        *string         `json:"brand,omitempty"`
	Price        decimal.Decimal `json:"price"`
	DisplayPrice string          `json:"display_price"`
	Currency     string          `json:"currency"`
	Rating       float64         `json:"rating"`
	Stock        int             `json:"stock"`
	Images       []string        `json:"images,omitempty"`
	Thumbnail    string          `json:"thumbnail,omitempty"`
}

// ProductListDTO wraps a filtered listing with the counts the storefront
// shows ("Showing X of Y products").
type ProductListDTO struct {
	Products []ProductDTO `json:"products"`
	Total    int          `json:"total"`
	Matched  int          `json:"matched"`
}

// NewProductDTO builds the client payload for one product. Price is already
// in display currency; formatting is a pure function of the amount.
func NewProductDTO(p Product) ProductDTO {
	return ProductDTO{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Category:     p.Category,
		Brand:        p.Brand,
		Price:        p.Price,
		DisplayPrice: currency.FormatINR(p.Price),
		Currency:     "INR",
		Rating:       p.Rating,
		Stock:        p.Stock,
		Images:       p.Images,
		Thumbnail:    p.Thumbnail,
	}
}

func newProductDTOs(products []Product) []ProductDTO {
	dtos := make([]ProductDTO, len(products))
	for i, p := range products {
		dtos[i] = NewProductDTO(p)
	}
	return dtos
}
