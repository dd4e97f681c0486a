package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	cartModel "storefront-backend/internal/domains/cart/model"
	"storefront-backend/internal/domains/checkout/gateway"
	"storefront-backend/internal/domains/checkout/model"
	"storefront-backend/pkg/logger"
)

var _ ControllerInterface = (*Controller)(nil)

// Cart is the part of the cart store the checkout reads and clears
type Cart interface {
	Snapshot() cartModel.Snapshot
	Clear() int
	SetOpen(open bool)
}

// Options holds the fixed parameters of a checkout
type Options struct {
	// ResetDelay is how long a closed Success panel waits before returning to Cart
	ResetDelay time.Duration

	// InstantTransferDiscountPercent feeds the display-only badge; 0 hides it
	InstantTransferDiscountPercent int

	// Tracker is optional
	Tracker Tracker
}

type transition struct {
	to    model.Step
	guard func(c *Controller) bool
}

// forward lists every user-driven forward transition.
// Payment has no entry: Success is reached through Finalize only.
var forward = map[model.Step]transition{
	model.StepCart:     {to: model.StepIdentity, guard: (*Controller).cartHasItems},
	model.StepIdentity: {to: model.StepShipping, guard: (*Controller).hasEmail},
	model.StepShipping: {to: model.StepPayment, guard: (*Controller).hasCity},
}

var backward = map[model.Step]model.Step{
	model.StepIdentity: model.StepCart,
	model.StepShipping: model.StepIdentity,
	model.StepPayment:  model.StepShipping,
}

// Controller owns the checkout state machine of one session.
// The cart is never mutated while mu is held.
type Controller struct {
	cart    Cart
	gateway gateway.Gateway
	opts    Options

	mu            sync.Mutex
	step          model.Step
	email         string
	address       model.Address
	method        model.PaymentMethod
	settling      bool
	receipt       *model.Receipt
	settlementErr string
	resetTimer    *time.Timer
	version       uint64

	subscribers map[int]func(model.Snapshot)
	nextSubID   int

	publishMu sync.Mutex
	delivered uint64
}

func NewController(cart Cart, gw gateway.Gateway, opts Options) *Controller {
	if cart == nil || gw == nil {
		panic("checkout controller requires a cart and a gateway")
	}
	return &Controller{
		cart:        cart,
		gateway:     gw,
		opts:        opts,
		step:        model.StepCart,
		method:      model.PaymentMethodInstantTransfer,
		subscribers: make(map[int]func(model.Snapshot)),
	}
}

// Guards. Called with mu held.

func (c *Controller) cartHasItems() bool {
	return !c.cart.Snapshot().IsEmpty()
}

func (c *Controller) hasEmail() bool {
	return c.email != ""
}

func (c *Controller) hasCity() bool {
	return c.address.City != ""
}

func (c *Controller) canAdvanceLocked() bool {
	t, ok := forward[c.step]
	return ok && t.guard(c)
}

func (c *Controller) canGoBackLocked() bool {
	_, ok := backward[c.step]
	return ok && !c.settling
}

func (c *Controller) Next() bool {
	c.mu.Lock()
	if !c.canAdvanceLocked() {
		c.mu.Unlock()
		return false
	}
	from := c.step
	c.step = forward[from].to
	snap, subs := c.commitLocked()
	c.mu.Unlock()

	logger.Debug(fmt.Sprintf("checkout advanced %s -> %s", from, snap.Step))
	c.publish(subs, snap)
	return true
}

func (c *Controller) Back() bool {
	c.mu.Lock()
	if !c.canGoBackLocked() {
		c.mu.Unlock()
		return false
	}
	c.step = backward[c.step]
	snap, subs := c.commitLocked()
	c.mu.Unlock()

	c.publish(subs, snap)
	return true
}

func (c *Controller) SetEmail(email string) {
	c.mu.Lock()
	c.email = strings.TrimSpace(email)
	snap, subs := c.commitLocked()
	c.mu.Unlock()

	c.publish(subs, snap)
}

func (c *Controller) SetAddress(addr model.Address) {
	c.mu.Lock()
	c.address = addr.Trimmed()
	snap, subs := c.commitLocked()
	c.mu.Unlock()

	c.publish(subs, snap)
}

func (c *Controller) SetPaymentMethod(method model.PaymentMethod) error {
	if !method.IsValid() {
		return model.ErrInvalidPaymentMethod
	}

	c.mu.Lock()
	c.method = method
	snap, subs := c.commitLocked()
	c.mu.Unlock()

	c.publish(subs, snap)
	return nil
}

func (c *Controller) Finalize(ctx context.Context) *Settlement {
	c.mu.Lock()
	if c.step != model.StepPayment || c.settling {
		c.mu.Unlock()
		return nil
	}

	cart := c.cart.Snapshot()
	req := gateway.SettlementRequest{
		Reference:     uuid.NewString(),
		Amount:        cart.CartTotal,
		PaymentMethod: c.method,
		ContactEmail:  c.email,
		Address:       c.address,
		TotalItems:    cart.TotalItems,
	}
	lines := len(cart.Items)

	c.settling = true
	c.settlementErr = ""
	snap, subs := c.commitLocked()
	c.mu.Unlock()

	c.publish(subs, snap)

	logger.Info("Settlement started", map[string]interface{}{
		"reference":      req.Reference,
		"amount":         req.Amount.String(),
		"payment_method": req.PaymentMethod,
	})

	st := newSettlement(req.Reference)
	// the settlement outlives the request and the panel
	go c.settle(context.WithoutCancel(ctx), req, lines, st)
	return st
}

func (c *Controller) settle(ctx context.Context, req gateway.SettlementRequest, lines int, st *Settlement) {
	resp, err := c.gateway.Settle(ctx, req)
	if err != nil {
		failure := gateway.AsSettlementError(err)

		c.mu.Lock()
		c.settling = false
		c.settlementErr = failure.Error()
		snap, subs := c.commitLocked()
		c.mu.Unlock()

		logger.Error("Settlement failed", failure)
		c.publish(subs, snap)
		st.finish(nil, failure)
		return
	}

	c.cart.Clear()

	receipt := model.Receipt{
		Reference:     req.Reference,
		OrderNumber:   orderNumber(req.Reference),
		TransactionID: resp.TransactionID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		ContactEmail:  req.ContactEmail,
		LineCount:     lines,
		TotalItems:    req.TotalItems,
		SettledAt:     resp.SettledAt,
	}

	c.mu.Lock()
	c.step = model.StepSuccess
	c.settling = false
	c.receipt = &receipt
	snap, subs := c.commitLocked()
	c.mu.Unlock()

	logger.Info("Settlement completed", map[string]interface{}{
		"reference":      receipt.Reference,
		"order_number":   receipt.OrderNumber,
		"transaction_id": receipt.TransactionID,
	})
	c.publish(subs, snap)

	if c.opts.Tracker != nil {
		if err := c.opts.Tracker.TrackSettlement(ctx, receipt); err != nil {
			logger.Error("Failed to track settlement", err)
		}
	}

	st.finish(&receipt, nil)
}

func (c *Controller) Close() {
	c.cart.SetOpen(false)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.step != model.StepSuccess {
		return
	}
	if c.resetTimer != nil {
		c.resetTimer.Stop()
	}
	c.resetTimer = time.AfterFunc(c.opts.ResetDelay, c.resetAfterSuccess)
}

// resetAfterSuccess returns to Cart unless the step moved since Close
func (c *Controller) resetAfterSuccess() {
	c.mu.Lock()
	if c.step != model.StepSuccess {
		c.mu.Unlock()
		return
	}
	c.step = model.StepCart
	c.resetTimer = nil
	snap, subs := c.commitLocked()
	c.mu.Unlock()

	c.publish(subs, snap)
}

func (c *Controller) Snapshot() model.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) Subscribe(fn func(model.Snapshot)) func() {
	c.mu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subscribers, id)
			c.mu.Unlock()
		})
	}
}

func (c *Controller) commitLocked() (model.Snapshot, []func(model.Snapshot)) {
	c.version++
	subs := make([]func(model.Snapshot), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		subs = append(subs, fn)
	}
	return c.snapshotLocked(), subs
}

func (c *Controller) snapshotLocked() model.Snapshot {
	snap := model.Snapshot{
		Step:            c.step,
		ContactEmail:    c.email,
		ShippingAddress: c.address,
		PaymentMethod:   c.method,
		IsSettling:      c.settling,
		CanAdvance:      c.canAdvanceLocked(),
		CanGoBack:       c.canGoBackLocked(),
		SettlementError: c.settlementErr,
		Version:         c.version,
	}
	if c.method == model.PaymentMethodInstantTransfer && c.opts.InstantTransferDiscountPercent > 0 {
		pct := c.opts.InstantTransferDiscountPercent
		snap.DiscountBadge = &pct
	}
	if c.receipt != nil {
		r := *c.receipt
		snap.LastReceipt = &r
	}
	return snap
}

func orderNumber(reference string) string {
	return "SF-" + strings.ToUpper(strings.ReplaceAll(reference, "-", "")[:10])
}

// publish delivers in version order and drops snapshots overtaken by a newer one.
// Subscribers must not call back into the controller's mutators.
func (c *Controller) publish(subs []func(model.Snapshot), snap model.Snapshot) {
	c.publishMu.Lock()
	defer c.publishMu.Unlock()

	if snap.Version <= c.delivered {
		return
	}
	c.delivered = snap.Version
	for _, fn := range subs {
		fn(snap)
	}
}
