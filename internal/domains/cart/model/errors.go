package model

// Cart error codes returned by the HTTP API
const (
	ErrCodeInvalidRequest  = "INVALID_REQUEST"
	ErrCodeInvalidQuantity = "INVALID_QUANTITY"
	ErrCodeProductNotFound = "PRODUCT_NOT_FOUND"
)
