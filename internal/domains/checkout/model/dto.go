package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Checkout error codes returned by the HTTP API
const (
	ErrCodeInvalidRequest       = "INVALID_REQUEST"
	ErrCodeInvalidPaymentMethod = "INVALID_PAYMENT_METHOD"
)

type SetEmailRequest struct {
	Email string `json:"email"`
}

// Validate accepts an empty email, which blocks the Identity guard
func (req SetEmailRequest) Validate() error {
	email := strings.TrimSpace(req.Email)
	return validation.Validate(email, validation.Length(0, 254), is.EmailFormat)
}

type SetAddressRequest struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Complement string `json:"complement"`
}

func (req SetAddressRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Street, validation.Length(0, 200)),
		validation.Field(&req.Number, validation.Length(0, 20)),
		validation.Field(&req.City, validation.Length(0, 100)),
		validation.Field(&req.PostalCode, validation.Length(0, 20)),
		validation.Field(&req.Complement, validation.Length(0, 200)),
	)
}

func (req SetAddressRequest) ToAddress() Address {
	return Address{
		Street:     req.Street,
		Number:     req.Number,
		City:       req.City,
		PostalCode: req.PostalCode,
		Complement: req.Complement,
	}
}

type SetPaymentMethodRequest struct {
	PaymentMethod PaymentMethod `json:"payment_method" binding:"required"`
}

// TransitionResponse reports whether Next or Back moved the step
type TransitionResponse struct {
	Moved    bool     `json:"moved"`
	Checkout Snapshot `json:"checkout"`
}

// FinalizeResponse reports whether a settlement was started
type FinalizeResponse struct {
	Started   bool     `json:"started"`
	Reference string   `json:"reference,omitempty"`
	Checkout  Snapshot `json:"checkout"`
}
