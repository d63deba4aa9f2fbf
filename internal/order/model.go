package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	// Products keeps the order of the placement request.
	Products  []OrderedProduct `json:"products"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// OrderedProduct is a line item. Price is copied from the product when the
// order is placed and never re-read.
type OrderedProduct struct {
	ID        string          `json:"id"`
	OrderID   string          `json:"order_id"`
	ProductID string          `json:"product_id"`
	Price     decimal.Decimal `json:"price" swaggertype:"string" example:"10.00"`
	Quantity  int             `json:"quantity"`
}

func (p OrderedProduct) Subtotal() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, p := range o.Products {
		total = total.Add(p.Subtotal())
	}
	return total
}
