package memstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MikeMC777/ordenes-core/internal/customer"
	"github.com/MikeMC777/ordenes-core/internal/order"
	"github.com/MikeMC777/ordenes-core/internal/product"
)

// Orders implements order.Repository.
type Orders struct{ s *Store }

var _ order.Repository = (*Orders)(nil)

func (r *Orders) Create(ctx context.Context, o *order.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.customers[o.CustomerID]; !ok {
		return fmt.Errorf("create order: %w", customer.ErrNotFound)
	}
	for _, it := range o.Products {
		if _, ok := r.s.products[it.ProductID]; !ok {
			return fmt.Errorf("create order: %w", product.ErrNotFound)
		}
	}

	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	o.CreatedAt = r.s.now()
	o.UpdatedAt = o.CreatedAt
	for i := range o.Products {
		if o.Products[i].ID == "" {
			o.Products[i].ID = uuid.NewString()
		}
		o.Products[i].OrderID = o.ID
	}
	r.s.touchOrder(ctx, o.ID)
	r.s.orders[o.ID] = cloneOrder(*o)
	r.s.orderSeq = append(r.s.orderSeq, o.ID)
	return nil
}

func (r *Orders) GetByID(ctx context.Context, id string) (*order.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	o, ok := r.s.orders[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	cp := cloneOrder(o)
	return &cp, nil
}

// ListByCustomer returns the newest orders first.
func (r *Orders) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]order.Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []order.Order{}
	skipped := 0
	for i := len(r.s.orderSeq) - 1; i >= 0 && len(out) < limit; i-- {
		o := r.s.orders[r.s.orderSeq[i]]
		if o.CustomerID != customerID {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		out = append(out, cloneOrder(o))
	}
	return out, nil
}

func (r *Orders) GetProducts(ctx context.Context, orderID string) ([]order.OrderedProduct, error) {
	o, err := r.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return o.Products, nil
}

func cloneOrder(o order.Order) order.Order {
	o.Products = append([]order.OrderedProduct(nil), o.Products...)
	return o
}
