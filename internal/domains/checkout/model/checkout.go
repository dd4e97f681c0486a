package model

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Step is the closed set of checkout steps, in flow order
type Step uint8

const (
	StepCart Step = iota
	StepIdentity
	StepShipping
	StepPayment
	StepSuccess
)

var stepNames = [...]string{
	StepCart:     "cart",
	StepIdentity: "identity",
	StepShipping: "shipping",
	StepPayment:  "payment",
	StepSuccess:  "success",
}

func (s Step) String() string {
	if int(s) < len(stepNames) {
		return stepNames[s]
	}
	return "unknown"
}

func (s Step) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// PaymentMethod represents valid payment methods
type PaymentMethod string

const (
	PaymentMethodInstantTransfer PaymentMethod = "instant-transfer"
	PaymentMethodCreditCard      PaymentMethod = "credit-card"
)

func (pm PaymentMethod) IsValid() bool {
	switch pm {
	case PaymentMethodInstantTransfer, PaymentMethodCreditCard:
		return true
	}
	return false
}

func (pm PaymentMethod) String() string {
	return string(pm)
}

// Address is the shipping address form
type Address struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Complement string `json:"complement,omitempty"`
}

// Trimmed returns the address with surrounding blanks removed from every field
func (a Address) Trimmed() Address {
	return Address{
		Street:     strings.TrimSpace(a.Street),
		Number:     strings.TrimSpace(a.Number),
		City:       strings.TrimSpace(a.City),
		PostalCode: strings.TrimSpace(a.PostalCode),
		Complement: strings.TrimSpace(a.Complement),
	}
}

// Receipt describes a completed settlement
type Receipt struct {
	Reference     string          `json:"reference"`
	OrderNumber   string          `json:"order_number"`
	TransactionID string          `json:"transaction_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	ContactEmail  string          `json:"contact_email"`
	LineCount     int             `json:"line_count"`
	TotalItems    int             `json:"total_items"`
	SettledAt     time.Time       `json:"settled_at"`
}

// Snapshot is an immutable view of the checkout session
type Snapshot struct {
	Step            Step          `json:"step"`
	ContactEmail    string        `json:"contact_email"`
	ShippingAddress Address       `json:"shipping_address"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
	IsSettling      bool          `json:"is_settling"`

	// CanAdvance is true when the forward transition of Step would be taken
	CanAdvance bool `json:"can_advance"`
	CanGoBack  bool `json:"can_go_back"`

	// DiscountBadge is the percent shown next to instant transfer.
	// It is never applied to the cart total or the settled amount.
	DiscountBadge *int `json:"discount_badge,omitempty"`

	LastReceipt     *Receipt `json:"last_receipt,omitempty"`
	SettlementError string   `json:"settlement_error,omitempty"`
	Version         uint64   `json:"version"`
}

var (
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)
