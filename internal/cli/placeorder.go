package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MikeMC777/ordenes-core/internal/config"
	"github.com/MikeMC777/ordenes-core/internal/customer"
	"github.com/MikeMC777/ordenes-core/internal/order"
	"github.com/MikeMC777/ordenes-core/internal/product"
)

// parseItem reads PRODUCT_ID:QTY.
func parseItem(s string) (order.RequestedItem, error) {
	id, qty, ok := strings.Cut(s, ":")
	id = strings.TrimSpace(id)
	if !ok || id == "" {
		return order.RequestedItem{}, fmt.Errorf("item %q: expected PRODUCT_ID:QTY", s)
	}
	n, err := strconv.Atoi(strings.TrimSpace(qty))
	if err != nil {
		return order.RequestedItem{}, fmt.Errorf("item %q: invalid quantity", s)
	}
	return order.RequestedItem{ProductID: id, Quantity: n}, nil
}

func newPlaceOrderCmd(dial connectFunc) *cobra.Command {
	var (
		customerID string
		rawItems   []string
	)
	cmd := &cobra.Command{
		Use:   "place-order",
		Short: "Place an order for a customer",
		Long: `Runs the order placement workflow against Postgres: the customer and
every product are checked, then the order is stored and stock decremented in
one transaction. The created order is printed as JSON.`,
		Example: "  ecomctl place-order --customer 0d3c... --item 4e7d...:2 --item 91ab...:1",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := order.PlaceOrderRequest{CustomerID: customerID}
			for _, raw := range rawItems {
				it, err := parseItem(raw)
				if err != nil {
					return err
				}
				req.Items = append(req.Items, it)
			}

			ctx := cmd.Context()
			db, err := dial(ctx, config.Load())
			if err != nil {
				return err
			}
			defer db.Close()

			products := product.NewPGRepo(db)
			svc := order.NewService(order.Deps{
				Customers: customer.NewPGRepo(db),
				Products:  products,
				Stock:     products,
				Orders:    order.NewPGRepo(db),
				Tx:        db,
			})
			o, err := svc.PlaceOrder(ctx, req)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(order.NewOrderResponse(o))
		},
	}
	cmd.Flags().StringVar(&customerID, "customer", "", "customer id")
	cmd.Flags().StringArrayVar(&rawItems, "item", nil, "PRODUCT_ID:QTY, repeatable")
	_ = cmd.MarkFlagRequired("customer")
	_ = cmd.MarkFlagRequired("item")
	return cmd
}
