package service

import (
	"storefront-backend/internal/domains/cart/model"
	catalog "storefront-backend/internal/domains/catalog/model"
)

// StoreInterface is the cart of one session
type StoreInterface interface {
	// AddItem merges into the line matching (product.ID, color) or appends a new one.
	// Opens the cart panel. The color is not checked against product.Colors.
	AddItem(product catalog.Product, quantity int, color string) error

	// RemoveItem removes every line of productID, whatever its color.
	// Returns the number of removed lines; 0 is not an error.
	RemoveItem(productID string) int

	// Clear empties the cart and returns the number of removed lines
	Clear() int

	// ToggleOpen flips the panel flag and returns the new value
	ToggleOpen() bool

	SetOpen(open bool)

	Snapshot() model.Snapshot

	// Subscribe registers fn to receive a snapshot after every mutation.
	// The returned func unregisters it.
	Subscribe(fn func(model.Snapshot)) func()
}
