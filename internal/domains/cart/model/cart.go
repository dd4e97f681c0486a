package model

import (
	"errors"

	"github.com/shopspring/decimal"

	catalog "storefront-backend/internal/domains/catalog/model"
)

// LineItem is one product-plus-color entry of the cart.
// At most one LineItem exists per (Product.ID, SelectedColor).
type LineItem struct {
	Product       catalog.Product `json:"product"`
	Quantity      int             `json:"quantity"`
	SelectedColor string          `json:"selected_color,omitempty"`
}

// Matches reports whether the line holds productID in color
func (li LineItem) Matches(productID, color string) bool {
	return li.Product.ID == productID && li.SelectedColor == color
}

// Subtotal is price × quantity
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Product.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Snapshot is an immutable view of the cart after a mutation
type Snapshot struct {
	Items      []LineItem      `json:"items"`
	TotalItems int             `json:"total_items"`
	CartTotal  decimal.Decimal `json:"cart_total"`
	PanelOpen  bool            `json:"panel_open"`
	Version    uint64          `json:"version"`
}

func (s Snapshot) IsEmpty() bool {
	return len(s.Items) == 0
}

// Totals computes (Σ quantity, Σ price × quantity) over items
func Totals(items []LineItem) (int, decimal.Decimal) {
	count := 0
	total := decimal.Zero
	for _, item := range items {
		count += item.Quantity
		total = total.Add(item.Subtotal())
	}
	return count, total
}

var (
	ErrInvalidQuantity = errors.New("quantity must be >= 1")
	ErrInvalidProduct  = errors.New("product id is required")
)
