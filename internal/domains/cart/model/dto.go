package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// AddToCartRequest represents request to add item to cart
type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
	Color     string `json:"color,omitempty"`
}

// Validate validates AddToCartRequest
func (req AddToCartRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.ProductID, validation.Required, validation.Length(1, 64)),
		validation.Field(&req.Quantity, validation.Required, validation.Min(1)),
		validation.Field(&req.Color, validation.Length(0, 32)),
	)
}

// Normalize trims free-text fields
func (req *AddToCartRequest) Normalize() {
	req.ProductID = strings.TrimSpace(req.ProductID)
	req.Color = strings.TrimSpace(req.Color)
}

// CartItemResponse is one line as rendered by the cart panel
type CartItemResponse struct {
	ProductID     string          `json:"product_id"`
	Slug          string          `json:"slug"`
	Name          string          `json:"name"`
	Image         string          `json:"image,omitempty"`
	SelectedColor string          `json:"selected_color,omitempty"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

// CartResponse represents the full cart response with items
type CartResponse struct {
	Items      []CartItemResponse `json:"items"`
	TotalItems int                `json:"total_items"`
	CartTotal  decimal.Decimal    `json:"cart_total"`
	PanelOpen  bool               `json:"panel_open"`
	Version    uint64             `json:"version"`
}

// ToResponse converts a Snapshot to CartResponse
func (s Snapshot) ToResponse() *CartResponse {
	items := make([]CartItemResponse, len(s.Items))
	for i, li := range s.Items {
		items[i] = *li.ToItemResponse()
	}
	return &CartResponse{
		Items:      items,
		TotalItems: s.TotalItems,
		CartTotal:  s.CartTotal,
		PanelOpen:  s.PanelOpen,
		Version:    s.Version,
	}
}

// ToItemResponse converts LineItem to CartItemResponse
func (li LineItem) ToItemResponse() *CartItemResponse {
	var image string
	if len(li.Product.Images) > 0 {
		image = li.Product.Images[0]
	}
	return &CartItemResponse{
		ProductID:     li.Product.ID,
		Slug:          li.Product.Slug,
		Name:          li.Product.Name,
		Image:         image,
		SelectedColor: li.SelectedColor,
		Quantity:      li.Quantity,
		Price:         li.Product.Price,
		Subtotal:      li.Subtotal(),
	}
}
