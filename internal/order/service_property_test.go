package order_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"pgregory.net/rapid"

	"github.com/MikeMC777/ordenes-core/internal/customer"
	"github.com/MikeMC777/ordenes-core/internal/memstore"
	"github.com/MikeMC777/ordenes-core/internal/order"
	"github.com/MikeMC777/ordenes-core/internal/product"
)

// For any stock levels and request, placement succeeds exactly when every
// product's summed request fits, and stock either drops by that sum or stays.
func TestPlaceOrder_StockProperty(t *testing.T) {
	rapid.Check(t, stockProperty(rapid.IntRange(1, 6)))
}

// Same property with quantities drawn from the whole positive int range, so
// sums that would overflow int are exercised.
func TestPlaceOrder_StockProperty_FullIntRange(t *testing.T) {
	qty := rapid.OneOf(rapid.IntRange(1, 6), rapid.IntRange(1, math.MaxInt), rapid.Just(math.MaxInt))
	rapid.Check(t, stockProperty(qty))
}

// expectedDemand sums the request per product with math/big so the oracle
// itself cannot overflow.
func expectedDemand(items []order.RequestedItem, stock map[string]int) (map[string]int, bool) {
	sums := make(map[string]*big.Int)
	for _, it := range items {
		if sums[it.ProductID] == nil {
			sums[it.ProductID] = new(big.Int)
		}
		sums[it.ProductID].Add(sums[it.ProductID], big.NewInt(int64(it.Quantity)))
	}
	want := make(map[string]int, len(sums))
	fits := true
	for id, sum := range sums {
		if sum.Cmp(big.NewInt(int64(stock[id]))) > 0 {
			fits = false
			continue
		}
		want[id] = int(sum.Int64())
	}
	return want, fits
}

func stockProperty(qty *rapid.Generator[int]) func(*rapid.T) {
	return func(t *rapid.T) {
		ctx := context.Background()
		s := memstore.New()
		c := &customer.Customer{Name: "prop", Email: "prop@example.com"}
		if err := s.Customers().Create(ctx, c); err != nil {
			t.Fatalf("seed customer: %v", err)
		}

		n := rapid.IntRange(1, 4).Draw(t, "products")
		stock := make(map[string]int, n)
		ids := make([]string, 0, n)
		for i := 0; i < n; i++ {
			p := &product.Product{
				Name:     fmt.Sprintf("p%d", i),
				Price:    decimal.New(rapid.Int64Range(0, 100000).Draw(t, "cents"), -2),
				Quantity: rapid.IntRange(0, 10).Draw(t, "stock"),
			}
			if err := s.Products().Create(ctx, p); err != nil {
				t.Fatalf("seed product: %v", err)
			}
			stock[p.ID] = p.Quantity
			ids = append(ids, p.ID)
		}

		items := rapid.SliceOfN(rapid.Custom(func(t *rapid.T) order.RequestedItem {
			return order.RequestedItem{
				ProductID: rapid.SampledFrom(ids).Draw(t, "id"),
				Quantity:  qty.Draw(t, "qty"),
			}
		}), 1, 6).Draw(t, "items")

		want, fits := expectedDemand(items, stock)

		svc := order.NewService(order.Deps{
			Customers: s.Customers(),
			Products:  s.Products(),
			Stock:     s.Products(),
			Orders:    s.Orders(),
			Tx:        s,
		})
		o, err := svc.PlaceOrder(ctx, order.PlaceOrderRequest{CustomerID: c.ID, Items: items})
		if fits != (err == nil) {
			t.Fatalf("fits=%v err=%v", fits, err)
		}
		if err != nil && !errors.Is(err, order.ErrInsufficientStock) {
			t.Fatalf("unexpected error kind: %v", err)
		}
		if err == nil && len(o.Products) != len(items) {
			t.Fatalf("line items=%d, requested=%d", len(o.Products), len(items))
		}

		for _, id := range ids {
			p, err2 := s.Products().GetByID(ctx, id)
			if err2 != nil {
				t.Fatalf("get %s: %v", id, err2)
			}
			if p.Quantity < 0 {
				t.Fatalf("negative stock for %s: %d", id, p.Quantity)
			}
			expected := stock[id]
			if err == nil {
				expected -= want[id]
			}
			if p.Quantity != expected {
				t.Fatalf("stock of %s = %d, want %d", id, p.Quantity, expected)
			}
		}
	}
}
