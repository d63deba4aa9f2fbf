package memstore

import (
	"context"

	"github.com/google/uuid"

	"github.com/MikeMC777/ordenes-core/internal/customer"
)

// Customers implements customer.Repository.
type Customers struct{ s *Store }

var _ customer.Repository = (*Customers)(nil)

func (r *Customers) Create(ctx context.Context, c *customer.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := emailKey(c.Email)
	for _, cur := range r.s.customers {
		if emailKey(cur.Email) == key {
			return customer.ErrAlreadyExist
		}
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if _, ok := r.s.customers[c.ID]; ok {
		return customer.ErrAlreadyExist
	}
	c.CreatedAt = r.s.now()
	c.UpdatedAt = c.CreatedAt
	r.s.touchCustomer(ctx, c.ID)
	r.s.customers[c.ID] = *c
	return nil
}

func (r *Customers) GetByID(ctx context.Context, id string) (*customer.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.customers[id]
	if !ok {
		return nil, customer.ErrNotFound
	}
	return &c, nil
}

func (r *Customers) GetByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	key := emailKey(email)
	for _, c := range r.s.customers {
		if emailKey(c.Email) == key {
			cp := c
			return &cp, nil
		}
	}
	return nil, customer.ErrNotFound
}
