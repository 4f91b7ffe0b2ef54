package cart

import (
	"github.com/angelmondragon/storefront-api/internal/catalog"
	"github.com/angelmondragon/storefront-api/pkg/currency"
	"github.com/shopspring/decimal"
)

// CartItemDTO is one cart line as returned to clients.
type CartItemDTO struct {
	Product          catalog.ProductDTO `json:"product"`
	Quantity         int                `json:"quantity"`
	LineTotal        decimal.Decimal    `json:"line_total"`
	LineTotalDisplay string             `json:"line_total_display"`
}

// SummaryDTO mirrors the storefront's order summary: free shipping, a flat
// tax percentage on the subtotal, and the grand total.
type SummaryDTO struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	SubtotalDisplay string          `json:"subtotal_display"`
	Shipping        string          `json:"shipping"`
	Tax             decimal.Decimal `json:"tax"`
	TaxDisplay      string          `json:"tax_display"`
	Total           decimal.Decimal `json:"total"`
	TotalDisplay    string          `json:"total_display"`
}

// CartDTO is the full cart payload.
type CartDTO struct {
	Items     []CartItemDTO `json:"items"`
	ItemCount int           `json:"item_count"`
	Summary   SummaryDTO    `json:"summary"`
}

// CheckoutDTO is the stub confirmation returned by the checkout endpoint.
type CheckoutDTO struct {
	Reference string     `json:"reference"`
	Status    string     `json:"status"`
	Message   string     `json:"message"`
	Summary   SummaryDTO `json:"summary"`
}

func newCartDTO(state State, taxRatePercent float64) CartDTO {
	items := make([]CartItemDTO, len(state.Items))
	for i, line := range state.Items {
		lineTotal := line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		items[i] = CartItemDTO{
			Product:          catalog.NewProductDTO(line.Product),
			Quantity:         line.Quantity,
			LineTotal:        lineTotal,
			LineTotalDisplay: currency.FormatINR(lineTotal),
		}
	}
	return CartDTO{
		Items:     items,
		ItemCount: state.TotalItems(),
		Summary:   newSummaryDTO(state, taxRatePercent),
	}
}

func newSummaryDTO(state State, taxRatePercent float64) SummaryDTO {
	subtotal := state.TotalPrice()
	tax := subtotal.Mul(decimal.NewFromFloat(taxRatePercent)).Div(decimal.NewFromInt(100)).Round(0)
	total := subtotal.Add(tax)
	return SummaryDTO{
		Subtotal:        subtotal,
		SubtotalDisplay: currency.FormatINR(subtotal),
		Shipping:        "Free",
		Tax:             tax,
		TaxDisplay:      currency.FormatINR(tax),
		Total:           total,
		TotalDisplay:    currency.FormatINR(total),
	}
}
