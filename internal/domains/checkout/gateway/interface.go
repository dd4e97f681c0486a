package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/checkout/model"
)

// =====================================================
// GATEWAY INTERFACE
// =====================================================

// Gateway settles a finalized checkout
type Gateway interface {
	// Settle blocks until the gateway reports an outcome.
	// A failure is returned as *SettlementError.
	Settle(ctx context.Context, req SettlementRequest) (*SettlementResponse, error)
}

// SettlementRequest request to settle a checkout
type SettlementRequest struct {
	Reference     string          // idempotency reference of this finalize
	Amount        decimal.Decimal // cart total, no discount applied
	PaymentMethod model.PaymentMethod
	ContactEmail  string
	Address       model.Address
	TotalItems    int
}

// SettlementResponse response from the gateway
type SettlementResponse struct {
	TransactionID string
	SettledAt     time.Time
}

// =====================================================
// FAILURES
// =====================================================

// FailureKind separates transport failures from payment refusals
type FailureKind string

const (
	FailureNetwork  FailureKind = "network"
	FailureDeclined FailureKind = "declined"
)

var ErrSettlementFailed = errors.New("settlement failed")

// SettlementError is the failed outcome of Settle
type SettlementError struct {
	Kind   FailureKind
	Reason string
}

func (e *SettlementError) Error() string {
	return fmt.Sprintf("settlement failed (%s): %s", e.Kind, e.Reason)
}

func (e *SettlementError) Unwrap() error {
	return ErrSettlementFailed
}

// AsSettlementError classifies any error returned by a gateway.
// Errors that are not *SettlementError are treated as network failures.
func AsSettlementError(err error) *SettlementError {
	var se *SettlementError
	if errors.As(err, &se) {
		return se
	}
	return &SettlementError{Kind: FailureNetwork, Reason: err.Error()}
}
