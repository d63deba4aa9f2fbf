// Package product provides the repository interface and PostgreSQL implementation for managing products.
package product

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/ordenes-core/internal/database"
)

var (
	ErrNotFound     = errors.New("product not found")
	ErrAlreadyExist = errors.New("product already exists")
)

type Query struct {
	Q      string
	Limit  int
	Offset int
}

type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, q Query) ([]Product, error)
	Update(ctx context.Context, id string, ch Changes) (*Product, error)
	Delete(ctx context.Context, id string) (bool, error)
	// FindAllByID returns the subset of ids that exist, in no particular order.
	FindAllByID(ctx context.Context, ids []string) ([]Product, error)
	UpdateQuantities(ctx context.Context, updates []QuantityUpdate) error
}

type PGRepo struct{ db *database.DB }

func NewPGRepo(db *database.DB) *PGRepo { return &PGRepo{db: db} }

const selectColumns = `id, name, price::text, quantity, created_at, updated_at`

func scanProduct(row pgx.Row) (*Product, error) {
	var (
		p     Product
		price string
	)
	if err := row.Scan(&p.ID, &p.Name, &price, &p.Quantity, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("scan price %q: %w", price, err)
	}
	p.Price = d
	return &p, nil
}

func (r *PGRepo) Create(ctx context.Context, p *Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	err := r.db.Conn(ctx).QueryRow(ctx, `
		INSERT INTO products (id, name, price, quantity, created_at, updated_at)
		VALUES ($1,$2,$3,$4,NOW(),NOW())
		RETURNING created_at, updated_at
	`, p.ID, p.Name, p.Price.StringFixed(2), p.Quantity).Scan(&p.CreatedAt, &p.UpdatedAt)
	switch {
	case database.IsUniqueViolation(err):
		return ErrAlreadyExist
	case database.IsCheckViolation(err):
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p, err := scanProduct(r.db.Conn(ctx).QueryRow(ctx, `
		SELECT `+selectColumns+`
		FROM products WHERE id=$1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *PGRepo) List(ctx context.Context, q Query) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	search := strings.TrimSpace(q.Q)

	rows, err := r.db.Conn(ctx).Query(ctx, `
		SELECT `+selectColumns+`
		FROM products
		WHERE ($1 = '' OR name ILIKE '%'||$1||'%')
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, search, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, id string, ch Changes) (*Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var name, price *string
	if ch.Name != nil {
		n := strings.TrimSpace(*ch.Name)
		name = &n
	}
	if ch.Price != nil {
		s := ch.Price.StringFixed(2)
		price = &s
	}

	p, err := scanProduct(r.db.Conn(ctx).QueryRow(ctx, `
		UPDATE products
		SET name = COALESCE($2, name),
		    price = COALESCE($3::numeric, price),
		    quantity = COALESCE($4::integer, quantity),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING `+selectColumns, id, name, price, ch.Quantity))
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil, ErrNotFound
	case database.IsUniqueViolation(err):
		return nil, ErrAlreadyExist
	case database.IsCheckViolation(err):
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return p, err
}

func (r *PGRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Conn(ctx).Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *PGRepo) FindAllByID(ctx context.Context, ids []string) ([]Product, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Conn(ctx).Query(ctx, `
		SELECT `+selectColumns+`
		FROM products WHERE id = ANY($1::uuid[])
	`, valid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// UpdateQuantities sends every update in one batch. A missing product or a
// negative quantity fails the whole call; run it inside database.InTx to
// discard the updates that already applied.
func (r *PGRepo) UpdateQuantities(ctx context.Context, updates []QuantityUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	for _, u := range updates {
		if u.Quantity < 0 {
			return fmt.Errorf("%w: quantity of %s would be %d", ErrInvalid, u.ID, u.Quantity)
		}
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	b := &pgx.Batch{}
	for _, u := range updates {
		b.Queue(`UPDATE products SET quantity = $2, updated_at = NOW() WHERE id = $1`, u.ID, u.Quantity)
	}
	br := r.db.Conn(ctx).SendBatch(ctx, b)
	defer br.Close()

	for _, u := range updates {
		tag, err := br.Exec()
		if err != nil {
			return fmt.Errorf("update quantity of %s: %w", u.ID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("update quantity of %s: %w", u.ID, ErrNotFound)
		}
	}
	return br.Close()
}
