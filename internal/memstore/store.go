// Package memstore keeps customers, products and orders in memory. It
// implements the same repository interfaces as the Postgres code and backs the
// workflow and handler tests.
package memstore

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/MikeMC777/ordenes-core/internal/customer"
	"github.com/MikeMC777/ordenes-core/internal/order"
	"github.com/MikeMC777/ordenes-core/internal/product"
)

type Store struct {
	mu sync.RWMutex
	// txMu serializes InTx calls; writes outside InTx do not wait on it.
	txMu sync.Mutex

	customers map[string]customer.Customer
	products  map[string]product.Product
	orders    map[string]order.Order
	// orderSeq lists order ids in creation order.
	orderSeq []string

	now func() time.Time
}

func New() *Store {
	return &Store{
		customers: make(map[string]customer.Customer),
		products:  make(map[string]product.Product),
		orders:    make(map[string]order.Order),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Customers() *Customers { return &Customers{s: s} }
func (s *Store) Products() *Products   { return &Products{s: s} }
func (s *Store) Orders() *Orders       { return &Orders{s: s} }

type txKey struct{}

// journal keeps the value each key had before the transaction first wrote it.
// A nil entry means the key did not exist.
type journal struct {
	customers map[string]*customer.Customer
	products  map[string]*product.Product
	orders    map[string]*order.Order
}

func journalFrom(ctx context.Context) *journal {
	j, _ := ctx.Value(txKey{}).(*journal)
	return j
}

// The touch helpers must be called with mu held, before the write.

func (s *Store) touchCustomer(ctx context.Context, id string) {
	j := journalFrom(ctx)
	if j == nil {
		return
	}
	if _, seen := j.customers[id]; seen {
		return
	}
	if c, ok := s.customers[id]; ok {
		j.customers[id] = &c
	} else {
		j.customers[id] = nil
	}
}

func (s *Store) touchProduct(ctx context.Context, id string) {
	j := journalFrom(ctx)
	if j == nil {
		return
	}
	if _, seen := j.products[id]; seen {
		return
	}
	if p, ok := s.products[id]; ok {
		j.products[id] = &p
	} else {
		j.products[id] = nil
	}
}

func (s *Store) touchOrder(ctx context.Context, id string) {
	j := journalFrom(ctx)
	if j == nil {
		return
	}
	if _, seen := j.orders[id]; seen {
		return
	}
	if o, ok := s.orders[id]; ok {
		cp := cloneOrder(o)
		j.orders[id] = &cp
	} else {
		j.orders[id] = nil
	}
}

func (s *Store) rollback(j *journal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, c := range j.customers {
		if c == nil {
			delete(s.customers, id)
		} else {
			s.customers[id] = *c
		}
	}
	for id, p := range j.products {
		if p == nil {
			delete(s.products, id)
		} else {
			s.products[id] = *p
		}
	}
	created := make(map[string]bool)
	for id, o := range j.orders {
		if o == nil {
			delete(s.orders, id)
			created[id] = true
		} else {
			s.orders[id] = *o
		}
	}
	if len(created) > 0 {
		seq := s.orderSeq[:0]
		for _, id := range s.orderSeq {
			if !created[id] {
				seq = append(seq, id)
			}
		}
		s.orderSeq = seq
	}
}

// InTx runs fn and, if it fails, undoes the writes made with the ctx it was
// given. Writes made with any other ctx are kept. Nested calls join the
// outer transaction.
func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if journalFrom(ctx) != nil {
		return fn(ctx)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	j := &journal{
		customers: make(map[string]*customer.Customer),
		products:  make(map[string]*product.Product),
		orders:    make(map[string]*order.Order),
	}
	if err := fn(context.WithValue(ctx, txKey{}, j)); err != nil {
		s.rollback(j)
		return err
	}
	return nil
}

func emailKey(email string) string { return strings.ToLower(strings.TrimSpace(email)) }

func nameKey(name string) string { return strings.ToLower(strings.TrimSpace(name)) }
