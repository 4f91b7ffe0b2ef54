package cart

import (
	"github.com/angelmondragon/storefront-api/internal/catalog"
	"github.com/shopspring/decimal"
)

// LineItem pairs a product snapshot with a quantity. Quantity is always at
// least 1 for any line present in the state.
type LineItem struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// State is the ordered cart contents for one session: insertion order is
// add order, and there is at most one line per product id. The state is
// owned by the cart service; readers get copies, never the backing slice.
type State struct {
	Items []LineItem `json:"items"`
}

// Add increments the quantity of an existing line, or appends a new line
// with quantity 1.
func (s *State) Add(product catalog.Product) {
	for i := range s.Items {
		if s.Items[i].Product.ID == product.ID {
			s.Items[i].Quantity++
			return
		}
	}
	s.Items = append(s.Items, LineItem{Product: product, Quantity: 1})
}

// Remove drops the line with the given product id. Absent ids are a silent
// no-op; remaining lines keep their order.
func (s *State) Remove(productID int64) {
	for i := range s.Items {
		if s.Items[i].Product.ID == productID {
			s.Items = append(s.Items[:i], s.Items[i+1:]...)
			return
		}
	}
}

// SetQuantity sets the quantity of the matching line. Non-positive values
// are silently ignored rather than removing the line; callers that want
// removal call Remove. Absent ids are a no-op.
func (s *State) SetQuantity(productID int64, quantity int) {
	if quantity <= 0 {
		return
	}
	for i := range s.Items {
		if s.Items[i].Product.ID == productID {
			s.Items[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart.
func (s *State) Clear() {
	s.Items = nil
}

// TotalPrice recomputes Σ price×quantity on every call; nothing is cached.
func (s *State) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// TotalItems recomputes Σ quantity on every call.
func (s *State) TotalItems() int {
	count := 0
	for _, item := range s.Items {
		count += item.Quantity
	}
	return count
}

// Snapshot returns a copy of the ordered lines.
func (s *State) Snapshot() []LineItem {
	out := make([]LineItem, len(s.Items))
	copy(out, s.Items)
	return out
}

// IsEmpty reports whether the cart has no lines.
func (s *State) IsEmpty() bool {
	return len(s.Items) == 0
}
