package service

import (
	"context"

	"storefront-backend/internal/domains/checkout/model"
)

// Settlement is the handle of one in-flight settlement
type Settlement struct {
	Reference string

	done    chan struct{}
	receipt *model.Receipt
	err     error
}

func newSettlement(reference string) *Settlement {
	return &Settlement{
		Reference: reference,
		done:      make(chan struct{}),
	}
}

func (s *Settlement) finish(receipt *model.Receipt, err error) {
	s.receipt = receipt
	s.err = err
	close(s.done)
}

// Wait blocks until the settlement completes or ctx ends.
// Giving up on ctx does not cancel the settlement.
func (s *Settlement) Wait(ctx context.Context) (*model.Receipt, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.done:
		return s.receipt, s.err
	}
}
