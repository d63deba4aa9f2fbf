package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/MikeMC777/ordenes-core/internal/product"
)

// Products implements product.Repository.
type Products struct{ s *Store }

var _ product.Repository = (*Products)(nil)

func (r *Products) nameTaken(name, exceptID string) bool {
	key := nameKey(name)
	for id, p := range r.s.products {
		if id != exceptID && nameKey(p.Name) == key {
			return true
		}
	}
	return false
}

func (r *Products) Create(ctx context.Context, p *product.Product) error {
	if p.Quantity < 0 {
		return fmt.Errorf("%w: quantity must be non-negative", product.ErrInvalid)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if _, ok := r.s.products[p.ID]; ok || r.nameTaken(p.Name, "") {
		return product.ErrAlreadyExist
	}
	p.CreatedAt = r.s.now()
	p.UpdatedAt = p.CreatedAt
	r.s.touchProduct(ctx, p.ID)
	r.s.products[p.ID] = *p
	return nil
}

func (r *Products) GetByID(ctx context.Context, id string) (*product.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.products[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	return &p, nil
}

func (r *Products) List(ctx context.Context, q product.Query) ([]product.Product, error) {
	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	search := strings.ToLower(strings.TrimSpace(q.Q))

	r.s.mu.RLock()
	out := make([]product.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		out = append(out, p)
	}
	r.s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if offset >= len(out) {
		return []product.Product{}, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

func (r *Products) Update(ctx context.Context, id string, ch product.Changes) (*product.Product, error) {
	if err := ch.Validate(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.products[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	if ch.Name != nil {
		name := strings.TrimSpace(*ch.Name)
		if r.nameTaken(name, id) {
			return nil, product.ErrAlreadyExist
		}
		p.Name = name
	}
	if ch.Price != nil {
		p.Price = *ch.Price
	}
	if ch.Quantity != nil {
		p.Quantity = *ch.Quantity
	}
	p.UpdatedAt = r.s.now()
	r.s.touchProduct(ctx, id)
	r.s.products[id] = p
	return &p, nil
}

func (r *Products) Delete(ctx context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.products[id]; !ok {
		return false, nil
	}
	r.s.touchProduct(ctx, id)
	delete(r.s.products, id)
	return true, nil
}

func (r *Products) FindAllByID(ctx context.Context, ids []string) ([]product.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]product.Product, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, p)
		}
	}
	return out, nil
}

// UpdateQuantities applies all updates or none.
func (r *Products) UpdateQuantities(ctx context.Context, updates []product.QuantityUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range updates {
		if u.Quantity < 0 {
			return fmt.Errorf("%w: quantity of %s would be %d", product.ErrInvalid, u.ID, u.Quantity)
		}
		if _, ok := r.s.products[u.ID]; !ok {
			return fmt.Errorf("update quantity of %s: %w", u.ID, product.ErrNotFound)
		}
	}
	now := r.s.now()
	for _, u := range updates {
		r.s.touchProduct(ctx, u.ID)
		p := r.s.products[u.ID]
		p.Quantity = u.Quantity
		p.UpdatedAt = now
		r.s.products[u.ID] = p
	}
	return nil
}
