// Package memory is an in-process implementation of repository.Store. It backs the demo mode
// (no database) and the service tests.
package memory

import (
	"context"
	"sync"

	"perfume-boutique-ws/internal/model"
	"perfume-boutique-ws/internal/repository"

	"github.com/google/uuid"
)

// Store keeps every collection in maps guarded by one RWMutex.
// Transaction works on a deep copy and swaps it in only when fn succeeds.
type Store struct {
	mu   sync.RWMutex
	data *state
}

type state struct {
	products  map[uuid.UUID]*model.Product
	users     map[uuid.UUID]*model.User
	boutiques map[uuid.UUID]*model.Boutique
	orders    map[uuid.UUID]*model.Order
	sales     map[uuid.UUID]*model.Sale
}

func NewStore() *Store {
	return &Store{data: newState()}
}

func newState() *state {
	return &state{
		products:  make(map[uuid.UUID]*model.Product),
		users:     make(map[uuid.UUID]*model.User),
		boutiques: make(map[uuid.UUID]*model.Boutique),
		orders:    make(map[uuid.UUID]*model.Order),
		sales:     make(map[uuid.UUID]*model.Sale),
	}
}

func (s *state) clone() *state {
	c := newState()
	for id, p := range s.products {
		c.products[id] = cloneProduct(p)
	}
	for id, u := range s.users {
		c.users[id] = cloneUser(u)
	}
	for id, b := range s.boutiques {
		cp := *b
		c.boutiques[id] = &cp
	}
	for id, o := range s.orders {
		c.orders[id] = cloneOrder(o)
	}
	for id, sale := range s.sales {
		c.sales[id] = cloneSale(sale)
	}
	return c
}

// Repos returns repositories that lock the store per call.
func (s *Store) Repos() repository.Repositories {
	return newRepositories(&access{
		data: func() *state { return s.data },
		mu:   &s.mu,
	})
}

func (s *Store) Transaction(ctx context.Context, fn func(r repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	// the write lock is already held, so the transaction's repositories do not lock again
	if err := fn(newRepositories(&access{data: func() *state { return work }})); err != nil {
		return err
	}
	s.data = work
	return nil
}

var _ repository.Store = (*Store)(nil)

// access resolves the state a repository call works on and how to lock it.
type access struct {
	data func() *state
	mu   *sync.RWMutex
}

func (a *access) read() (*state, func()) {
	if a.mu == nil {
		return a.data(), func() {}
	}
	a.mu.RLock()
	return a.data(), a.mu.RUnlock
}

func (a *access) write() (*state, func()) {
	if a.mu == nil {
		return a.data(), func() {}
	}
	a.mu.Lock()
	return a.data(), a.mu.Unlock
}

func newRepositories(a *access) repository.Repositories {
	return repository.Repositories{
		Products:  &productRepo{a},
		Users:     &userRepo{a},
		Boutiques: &boutiqueRepo{a},
		Orders:    &orderRepo{a},
		Sales:     &saleRepo{a},
	}
}

func cloneProduct(p *model.Product) *model.Product {
	cp := *p
	cp.Sizes = append([]model.SizeVariant(nil), p.Sizes...)
	return &cp
}

func cloneUser(u *model.User) *model.User {
	cp := *u
	if u.BoutiqueID != nil {
		id := *u.BoutiqueID
		cp.BoutiqueID = &id
	}
	if u.LastLoginAt != nil {
		at := *u.LastLoginAt
		cp.LastLoginAt = &at
	}
	cp.Boutiques = append([]model.Boutique(nil), u.Boutiques...)
	return &cp
}

func cloneOrder(o *model.Order) *model.Order {
	cp := *o
	cp.Items = append([]model.OrderItem(nil), o.Items...)
	return &cp
}

func cloneSale(s *model.Sale) *model.Sale {
	cp := *s
	if s.CustomerID != nil {
		id := *s.CustomerID
		cp.CustomerID = &id
	}
	cp.Items = append([]model.SaleItem(nil), s.Items...)
	return &cp
}
