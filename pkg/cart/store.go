package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"
)

// Observer is called with a snapshot after every mutation.
type Observer func(ctx context.Context, c Cart) error

// Store is a Cart shared between callers. Each mutator applies the change
// and then runs every observer before returning.
type Store struct {
	mu        sync.Mutex
	cart      Cart
	observers []Observer
}

func NewStore(initial Cart, observers ...Observer) *Store {
	return &Store{cart: initial.Clone(), observers: observers}
}

// Observe registers another observer.
func (s *Store) Observe(o Observer) {
	s.mu.Lock()
	s.observers = append(s.observers, o)
	s.mu.Unlock()
}

func (s *Store) AddItem(ctx context.Context, it Item) (Cart, error) {
	return s.mutate(ctx, func(c *Cart) { c.AddItem(it) })
}

func (s *Store) UpdateQuantity(ctx context.Context, itemID string, qty int) (Cart, error) {
	return s.mutate(ctx, func(c *Cart) { c.UpdateQuantity(itemID, qty) })
}

func (s *Store) RemoveItem(ctx context.Context, itemID string) (Cart, error) {
	return s.mutate(ctx, func(c *Cart) { c.RemoveItem(itemID) })
}

func (s *Store) Clear(ctx context.Context) (Cart, error) {
	return s.mutate(ctx, func(c *Cart) { c.Clear() })
}

func (s *Store) Snapshot() Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.ItemCount()
}

func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total()
}

// mutate holds the lock through the observers so saves land in mutation order.
// The state change stays applied even when an observer fails.
func (s *Store) mutate(ctx context.Context, fn func(*Cart)) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.cart)
	snap := s.cart.Clone()

	var errs []error
	for _, o := range s.observers {
		if err := o(ctx, snap.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return snap, errors.Join(errs...)
}
