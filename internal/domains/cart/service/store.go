package service

import (
	"sync"

	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/cart/model"
	catalog "storefront-backend/internal/domains/catalog/model"
)

var _ StoreInterface = (*Store)(nil)

// Store owns the line items of one session and keeps the aggregates equal
// to the live sums after every mutation.
type Store struct {
	mu         sync.Mutex
	items      []model.LineItem
	totalItems int
	cartTotal  decimal.Decimal
	open       bool
	version    uint64

	subscribers map[int]func(model.Snapshot)
	nextSubID   int

	// publishMu orders deliveries; delivered is the last version handed out
	publishMu sync.Mutex
	delivered uint64
}

func NewStore() *Store {
	return &Store{
		cartTotal:   decimal.Zero,
		subscribers: make(map[int]func(model.Snapshot)),
	}
}

func (s *Store) AddItem(product catalog.Product, quantity int, color string) error {
	if product.ID == "" {
		return model.ErrInvalidProduct
	}
	if quantity < 1 {
		return model.ErrInvalidQuantity
	}

	s.mu.Lock()
	merged := false
	for i := range s.items {
		if s.items[i].Matches(product.ID, color) {
			s.items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, model.LineItem{
			Product:       product.Clone(),
			Quantity:      quantity,
			SelectedColor: color,
		})
	}
	s.open = true
	snap, subs := s.commitLocked()
	s.mu.Unlock()

	s.publish(subs, snap)
	return nil
}

func (s *Store) RemoveItem(productID string) int {
	s.mu.Lock()
	kept := s.items[:0]
	removed := 0
	for _, item := range s.items {
		if item.Product.ID == productID {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	if removed == 0 {
		s.mu.Unlock()
		return 0
	}
	// drop references held past the new length
	for i := len(kept); i < len(s.items); i++ {
		s.items[i] = model.LineItem{}
	}
	s.items = kept
	snap, subs := s.commitLocked()
	s.mu.Unlock()

	s.publish(subs, snap)
	return removed
}

func (s *Store) Clear() int {
	s.mu.Lock()
	removed := len(s.items)
	s.items = nil
	snap, subs := s.commitLocked()
	s.mu.Unlock()

	s.publish(subs, snap)
	return removed
}

func (s *Store) ToggleOpen() bool {
	s.mu.Lock()
	s.open = !s.open
	open := s.open
	snap, subs := s.commitLocked()
	s.mu.Unlock()

	s.publish(subs, snap)
	return open
}

func (s *Store) SetOpen(open bool) {
	s.mu.Lock()
	if s.open == open {
		s.mu.Unlock()
		return
	}
	s.open = open
	snap, subs := s.commitLocked()
	s.mu.Unlock()

	s.publish(subs, snap)
}

func (s *Store) Snapshot() model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) Subscribe(fn func(model.Snapshot)) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, id)
			s.mu.Unlock()
		})
	}
}

// commitLocked recomputes the aggregates and bumps the version.
// Subscribers are returned so they can be called after the lock is released.
func (s *Store) commitLocked() (model.Snapshot, []func(model.Snapshot)) {
	s.totalItems, s.cartTotal = model.Totals(s.items)
	s.version++

	subs := make([]func(model.Snapshot), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	return s.snapshotLocked(), subs
}

func (s *Store) snapshotLocked() model.Snapshot {
	items := make([]model.LineItem, len(s.items))
	for i, item := range s.items {
		item.Product = item.Product.Clone()
		items[i] = item
	}
	return model.Snapshot{
		Items:      items,
		TotalItems: s.totalItems,
		CartTotal:  s.cartTotal,
		PanelOpen:  s.open,
		Version:    s.version,
	}
}

// publish hands snap to subs unless a newer version already went out.
// Subscribers may read the store but must not mutate it.
func (s *Store) publish(subs []func(model.Snapshot), snap model.Snapshot) {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	if snap.Version <= s.delivered {
		return
	}
	s.delivered = snap.Version
	for _, fn := range subs {
		fn(snap)
	}
}
