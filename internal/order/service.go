package order

import (
	"context"
	"errors"
	"strings"

	"github.com/MikeMC777/ordenes-core/internal/customer"
	"github.com/MikeMC777/ordenes-core/internal/product"
)

type CustomerLookup interface {
	// GetByID returns customer.ErrNotFound when the customer does not exist.
	GetByID(ctx context.Context, id string) (*customer.Customer, error)
}

type ProductLookup interface {
	// FindAllByID returns only the products that exist.
	FindAllByID(ctx context.Context, ids []string) ([]product.Product, error)
}

type ProductUpdate interface {
	UpdateQuantities(ctx context.Context, updates []product.QuantityUpdate) error
}

type OrderCreate interface {
	// Create assigns the order and line item ids and timestamps.
	Create(ctx context.Context, o *Order) error
}

// Transactor runs fn so that every write made with the ctx it receives
// commits or rolls back together.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Deps struct {
	Customers CustomerLookup
	Products  ProductLookup
	Stock     ProductUpdate
	Orders    OrderCreate
	// Tx may be nil when Orders and Stock are already atomic together.
	Tx Transactor
}

type Service struct {
	customers CustomerLookup
	products  ProductLookup
	stock     ProductUpdate
	orders    OrderCreate
	tx        Transactor
}

func NewService(d Deps) *Service {
	tx := d.Tx
	if tx == nil {
		tx = noTx{}
	}
	return &Service{
		customers: d.Customers,
		products:  d.Products,
		stock:     d.Stock,
		orders:    d.Orders,
		tx:        tx,
	}
}

type noTx struct{}

func (noTx) InTx(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

// PlaceOrder validates req against the current customer and product state,
// then creates the order and decrements stock in one transaction.
//
// Requests naming the same product more than once keep one line item per
// entry, but stock is checked against the sum of those entries.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Order, error) {
	if _, err := s.customers.GetByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			return nil, customerNotFound(req.CustomerID)
		}
		return nil, err
	}

	ids, err := requestedIDs(req.Items)
	if err != nil {
		return nil, err
	}
	found, err := s.products.FindAllByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	snapshot := make(map[string]product.Product, len(found))
	for _, p := range found {
		snapshot[p.ID] = p
	}

	lines, updates, err := priceItems(req.Items, snapshot)
	if err != nil {
		return nil, err
	}

	o := &Order{CustomerID: req.CustomerID, Products: lines}
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.orders.Create(ctx, o); err != nil {
			return err
		}
		return s.stock.UpdateQuantities(ctx, updates)
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

// requestedIDs checks the shape of items and returns the distinct product ids
// in first-seen order.
func requestedIDs(items []RequestedItem) ([]string, error) {
	if len(items) == 0 {
		return nil, invalidRequest("at least one item is required")
	}
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for i, it := range items {
		if strings.TrimSpace(it.ProductID) == "" {
			return nil, invalidRequest("item %d: product_id is required", i)
		}
		if it.Quantity <= 0 {
			return nil, invalidRequest("item %d: quantity must be positive", i)
		}
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		ids = append(ids, it.ProductID)
	}
	return ids, nil
}

func priceItems(items []RequestedItem, snapshot map[string]product.Product) ([]OrderedProduct, []product.QuantityUpdate, error) {
	reserved := make(map[string]int, len(items))
	touched := make([]string, 0, len(items))
	lines := make([]OrderedProduct, 0, len(items))

	for _, it := range items {
		p, ok := snapshot[it.ProductID]
		if !ok {
			return nil, nil, productNotFound(it.ProductID)
		}
		// Compared against what is left so huge quantities cannot wrap the sum.
		if it.Quantity > p.Quantity-reserved[p.ID] {
			return nil, nil, insufficientStock(p.ID, p.Quantity)
		}
		if _, ok := reserved[p.ID]; !ok {
			touched = append(touched, p.ID)
		}
		reserved[p.ID] += it.Quantity
		lines = append(lines, OrderedProduct{
			ProductID: p.ID,
			Price:     p.Price,
			Quantity:  it.Quantity,
		})
	}

	updates := make([]product.QuantityUpdate, 0, len(touched))
	for _, id := range touched {
		updates = append(updates, product.QuantityUpdate{
			ID:       id,
			Quantity: snapshot[id].Quantity - reserved[id],
		})
	}
	return lines, updates, nil
}
