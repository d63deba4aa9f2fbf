package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestedItem payload de ítem.
// swagger:model RequestedItem
type RequestedItem struct {
	ProductID string `json:"product_id" example:"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"`
	Quantity  int    `json:"quantity"   example:"2"`
}

// PlaceOrderRequest payload de creación de orden.
// swagger:model PlaceOrderRequest
type PlaceOrderRequest struct {
	CustomerID string          `json:"customer_id" example:"b2f5ff47-2b1e-4f22-8a96-5f3c1f2f2e7b"`
	Items      []RequestedItem `json:"items"`
}

// OrderResponse is an order as returned by the HTTP API.
// swagger:model OrderResponse
type OrderResponse struct {
	ID         string           `json:"id"`
	CustomerID string           `json:"customer_id"`
	Products   []OrderedProduct `json:"products"`
	Total      decimal.Decimal  `json:"total" swaggertype:"string" example:"20.00"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

func NewOrderResponse(o *Order) OrderResponse {
	products := o.Products
	if products == nil {
		products = []OrderedProduct{}
	}
	return OrderResponse{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		Products:   products,
		Total:      o.Total(),
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}
