package model

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Product is an immutable catalog record
type Product struct {
	ID          string           `json:"id"`
	Slug        string           `json:"slug"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       decimal.Decimal  `json:"price"`
	OldPrice    *decimal.Decimal `json:"old_price,omitempty"`
	Category    string           `json:"category"`
	Images      []string         `json:"images"`
	Colors      []string         `json:"colors"`
	IsFeatured  bool             `json:"is_featured,omitempty"`
	IsNew       bool             `json:"is_new,omitempty"`
	IsOnSale    bool             `json:"is_on_sale,omitempty"`
	Rating      *float64         `json:"rating,omitempty"`
	Reviews     *int             `json:"reviews,omitempty"`
}

// Clone returns a deep copy so callers never share slices with the catalog
func (p Product) Clone() Product {
	out := p
	out.Images = append([]string(nil), p.Images...)
	out.Colors = append([]string(nil), p.Colors...)
	if p.OldPrice != nil {
		old := *p.OldPrice
		out.OldPrice = &old
	}
	if p.Rating != nil {
		r := *p.Rating
		out.Rating = &r
	}
	if p.Reviews != nil {
		n := *p.Reviews
		out.Reviews = &n
	}
	return out
}

// HasColor reports whether color is one of the product's declared colors
func (p Product) HasColor(color string) bool {
	for _, c := range p.Colors {
		if strings.EqualFold(c, color) {
			return true
		}
	}
	return false
}

// Category groups products on the shop page
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Image string `json:"image"`
}

// SortOption orders a product listing
type SortOption string

const (
	SortNewest    SortOption = "newest"
	SortPriceAsc  SortOption = "price_asc"
	SortPriceDesc SortOption = "price_desc"
)

func (s SortOption) IsValid() bool {
	switch s {
	case SortNewest, SortPriceAsc, SortPriceDesc:
		return true
	}
	return false
}

// ListFilter narrows a product listing
type ListFilter struct {
	Category string     `form:"category"`
	Promo    bool       `form:"promo"`
	Sort     SortOption `form:"sort"`
}

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidSort     = errors.New("invalid sort option")
)

// Catalog error codes returned by the HTTP API
const (
	ErrCodeProductNotFound = "PRODUCT_NOT_FOUND"
	ErrCodeInvalidFilter   = "INVALID_FILTER"
)
