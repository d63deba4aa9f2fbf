package product

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalid = errors.New("invalid product")

type Product struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// NUMERIC(10,2) in Postgres
	Price     decimal.Decimal `json:"price" swaggertype:"string" example:"10.00"`
	Quantity  int             `json:"quantity"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// QuantityUpdate sets the stored stock of one product.
type QuantityUpdate struct {
	ID       string
	Quantity int
}

// Changes is a partial update; nil fields are left untouched.
type Changes struct {
	Name     *string
	Price    *decimal.Decimal
	Quantity *int
}

var maxPrice = decimal.New(1, 8) // DECIMAL(10,2)

// ValidPrice reports whether d fits DECIMAL(10,2) and is not negative.
func ValidPrice(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThan(maxPrice) && d.Equal(d.Round(2))
}

func (p *Product) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalid)
	case !ValidPrice(p.Price):
		return fmt.Errorf("%w: price must be non-negative with at most 2 decimals", ErrInvalid)
	case p.Quantity < 0:
		return fmt.Errorf("%w: quantity must be non-negative", ErrInvalid)
	}
	return nil
}

func (c Changes) Validate() error {
	if c.Name != nil && strings.TrimSpace(*c.Name) == "" {
		return fmt.Errorf("%w: name cannot be blank", ErrInvalid)
	}
	if c.Price != nil && !ValidPrice(*c.Price) {
		return fmt.Errorf("%w: price must be non-negative with at most 2 decimals", ErrInvalid)
	}
	if c.Quantity != nil && *c.Quantity < 0 {
		return fmt.Errorf("%w: quantity must be non-negative", ErrInvalid)
	}
	return nil
}

// CreateProductRequest payload of creation.
// swagger:model CreateProductRequest
type CreateProductRequest struct {
	Name     string          `json:"name"     example:"Mechanical Keyboard"`
	Price    decimal.Decimal `json:"price"    swaggertype:"string" example:"199.90"`
	Quantity int             `json:"quantity" example:"10"`
}

// UpdateProductRequest payload of partial update. Omitted fields are kept.
// swagger:model UpdateProductRequest
type UpdateProductRequest struct {
	Name     *string          `json:"name,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty" swaggertype:"string"`
	Quantity *int             `json:"quantity,omitempty"`
}

func (r UpdateProductRequest) Changes() Changes {
	return Changes{Name: r.Name, Price: r.Price, Quantity: r.Quantity}
}

// ListResponse represents the paginated response of products.
// swagger:model
type ListResponse struct {
	// search query applied
	Q string `json:"q,omitempty"`
	// limit applied
	Limit int `json:"limit"`
	// offset applied
	Offset int `json:"offset"`
	Items  []Product `json:"items"`
}
