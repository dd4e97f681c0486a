package service

import (
	"sync"
	"sync/atomic"
	"time"

	cartModel "storefront-backend/internal/domains/cart/model"
	cartService "storefront-backend/internal/domains/cart/service"
	"storefront-backend/internal/domains/checkout/gateway"
	checkoutModel "storefront-backend/internal/domains/checkout/model"
	checkoutService "storefront-backend/internal/domains/checkout/service"
	"storefront-backend/internal/domains/session/model"
)

// Dependencies are shared by every session of a registry
type Dependencies struct {
	Gateway  gateway.Gateway
	Checkout checkoutService.Options

	// TrackerFor builds the settlement tracker of a session; nil disables tracking
	TrackerFor func(sessionID string) checkoutService.Tracker
}

// Session is the cart and checkout of one client
type Session struct {
	ID        string
	CreatedAt time.Time

	Cart     *cartService.Store
	Checkout *checkoutService.Controller

	lastSeen atomic.Int64
}

func New(id string, deps Dependencies, now time.Time) *Session {
	opts := deps.Checkout
	if deps.TrackerFor != nil {
		opts.Tracker = deps.TrackerFor(id)
	}

	cart := cartService.NewStore()
	s := &Session{
		ID:        id,
		CreatedAt: now,
		Cart:      cart,
		Checkout:  checkoutService.NewController(cart, deps.Gateway, opts),
	}
	s.Touch(now)
	return s
}

func (s *Session) Touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

func (s *Session) Snapshot() model.Snapshot {
	return model.Snapshot{
		ID:       s.ID,
		Cart:     s.Cart.Snapshot(),
		Checkout: s.Checkout.Snapshot(),
		TakenAt:  time.Now().UTC(),
	}
}

// Subscribe calls fn with a fresh combined snapshot after every cart or checkout change.
// Snapshots are taken and delivered one at a time, so the last call fn sees is current.
func (s *Session) Subscribe(fn func(model.Snapshot)) func() {
	var mu sync.Mutex
	deliver := func() {
		mu.Lock()
		defer mu.Unlock()
		fn(s.Snapshot())
	}

	offCart := s.Cart.Subscribe(func(cartModel.Snapshot) {
		deliver()
	})
	offCheckout := s.Checkout.Subscribe(func(checkoutModel.Snapshot) {
		deliver()
	})
	return func() {
		offCart()
		offCheckout()
	}
}
