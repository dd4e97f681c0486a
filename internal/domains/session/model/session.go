package model

import (
	"time"

	cartModel "storefront-backend/internal/domains/cart/model"
	checkoutModel "storefront-backend/internal/domains/checkout/model"
)

// Snapshot is the combined view of one client's cart and checkout
type Snapshot struct {
	ID       string                 `json:"id"`
	Cart     cartModel.Snapshot     `json:"cart"`
	Checkout checkoutModel.Snapshot `json:"checkout"`
	TakenAt  time.Time              `json:"taken_at"`
}
