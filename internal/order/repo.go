package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/ordenes-core/internal/database"
)

var (
	ErrNotFound = errors.New("order not found")
)

type Repository interface {
	OrderCreate
	GetByID(ctx context.Context, id string) (*Order, error)
	ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]Order, error)
	GetProducts(ctx context.Context, orderID string) ([]OrderedProduct, error)
}

type PGRepo struct{ db *database.DB }

func NewPGRepo(db *database.DB) *PGRepo { return &PGRepo{db: db} }

// Create inserts the order and its line items. It joins the caller's
// transaction when there is one.
func (r *PGRepo) Create(ctx context.Context, o *Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	o.CreatedAt, o.UpdatedAt = now, now
	for i := range o.Products {
		if o.Products[i].ID == "" {
			o.Products[i].ID = uuid.NewString()
		}
		o.Products[i].OrderID = o.ID
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.db.InTx(ctx, func(ctx context.Context) error {
		q := r.db.Conn(ctx)
		if _, err := q.Exec(ctx, `
      INSERT INTO orders (id, customer_id, created_at, updated_at)
      VALUES ($1,$2,$3,$3)
    `, o.ID, o.CustomerID, now); err != nil {
			return err
		}

		for i, it := range o.Products {
			if _, err := q.Exec(ctx, `
        INSERT INTO orders_products (id, order_id, product_id, position, price, quantity, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$7)
      `, it.ID, o.ID, it.ProductID, i, it.Price.StringFixed(2), it.Quantity, now); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var o Order
	err := r.db.Conn(ctx).QueryRow(ctx, `
    SELECT id, customer_id, created_at, updated_at
    FROM orders WHERE id=$1
  `, id).Scan(&o.ID, &o.CustomerID, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.itemsOf(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Products = items[o.ID]
	return &o, nil
}

func (r *PGRepo) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	if _, err := uuid.Parse(customerID); err != nil {
		return []Order{}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Conn(ctx).Query(ctx, `
    SELECT id, customer_id, created_at, updated_at
    FROM orders WHERE customer_id=$1
    ORDER BY created_at DESC LIMIT $2 OFFSET $3
  `, customerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Order{}
	var ids []string
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return out, nil
	}

	items, err := r.itemsOf(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Products = items[out[i].ID]
	}
	return out, nil
}

func (r *PGRepo) GetProducts(ctx context.Context, orderID string) ([]OrderedProduct, error) {
	o, err := r.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return o.Products, nil
}

func (r *PGRepo) itemsOf(ctx context.Context, orderIDs []string) (map[string][]OrderedProduct, error) {
	rows, err := r.db.Conn(ctx).Query(ctx, `
    SELECT id, order_id, product_id, price::text, quantity
    FROM orders_products
    WHERE order_id = ANY($1::uuid[])
    ORDER BY order_id, position
  `, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]OrderedProduct, len(orderIDs))
	for rows.Next() {
		var (
			it    OrderedProduct
			price string
		)
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &price, &it.Quantity); err != nil {
			return nil, err
		}
		d, err := decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("scan price %q: %w", price, err)
		}
		it.Price = d
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	return out, rows.Err()
}
