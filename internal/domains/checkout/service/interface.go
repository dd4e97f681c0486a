package service

import (
	"context"

	"storefront-backend/internal/domains/checkout/model"
)

// ControllerInterface drives the checkout of one session.
// Guards never return errors: a blocked transition reports false and leaves state unchanged.
type ControllerInterface interface {
	// Next takes the forward transition of the current step when its guard holds.
	// Payment→Success is only reachable through Finalize.
	Next() bool

	// Back takes the backward transition; no-op from Cart, Success and while settling
	Back() bool

	SetEmail(email string)
	SetAddress(addr model.Address)
	SetPaymentMethod(method model.PaymentMethod) error

	// Finalize starts the settlement from Payment.
	// Returns nil when not in Payment or when a settlement is already in flight.
	Finalize(ctx context.Context) *Settlement

	// Close hides the panel. A closed Success panel returns to Cart after the reset delay.
	Close()

	Snapshot() model.Snapshot
	Subscribe(fn func(model.Snapshot)) func()
}

// Tracker is notified of every successful settlement
type Tracker interface {
	TrackSettlement(ctx context.Context, receipt model.Receipt) error
}
