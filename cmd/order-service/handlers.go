package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/ordenes-core/internal/httpx"
	ord "github.com/MikeMC777/ordenes-core/internal/order"
)

type placer interface {
	PlaceOrder(ctx context.Context, req ord.PlaceOrderRequest) (*ord.Order, error)
}

type reader interface {
	GetByID(ctx context.Context, id string) (*ord.Order, error)
	ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]ord.Order, error)
	GetProducts(ctx context.Context, orderID string) ([]ord.OrderedProduct, error)
}

func registerRoutes(r gin.IRouter, svc placer, repo reader) {
	r.POST("/orders", createOrderHandler(svc))
	r.GET("/orders/:id", getOrderHandler(repo))
	r.GET("/orders/:id/products", getOrderProductsHandler(repo))
	r.GET("/orders/customer/:customer_id", listOrdersByCustomerHandler(repo))
}

// createOrderHandler godoc
// @Summary      Place an order
// @Description  Validates the customer and stock, stores the order and decrements stock atomically.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  ord.PlaceOrderRequest  true  "order"
// @Success      201  {object}  ord.OrderResponse
// @Failure      400  {object}  httpx.HTTPError
// @Failure      404  {object}  httpx.HTTPError  "customer or product not found"
// @Failure      409  {object}  httpx.HTTPError  "insufficient stock"
// @Router       /orders [post]
func createOrderHandler(svc placer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in ord.PlaceOrderRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.Error(c, http.StatusBadRequest, "invalid json")
			return
		}
		o, err := svc.PlaceOrder(c.Request.Context(), in)
		if err != nil {
			code := placementStatus(c, err)
			msg := err.Error()
			if code == http.StatusInternalServerError {
				msg = "could not place order"
			}
			httpx.Error(c, code, msg)
			return
		}
		c.JSON(http.StatusCreated, ord.NewOrderResponse(o))
	}
}

func placementStatus(c *gin.Context, err error) int {
	switch {
	case errors.Is(err, ord.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, ord.ErrCustomerNotFound), errors.Is(err, ord.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, ord.ErrInsufficientStock):
		return http.StatusConflict
	}
	_ = c.Error(err)
	return http.StatusInternalServerError
}

// getOrderHandler godoc
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Param        id   path  string  true  "order id"
// @Success      200  {object}  ord.OrderResponse
// @Failure      404  {object}  httpx.HTTPError
// @Router       /orders/{id} [get]
func getOrderHandler(repo reader) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeReadError(c, err)
			return
		}
		c.JSON(http.StatusOK, ord.NewOrderResponse(o))
	}
}

// getOrderProductsHandler godoc
// @Summary      Line items of an order
// @Tags         orders
// @Produce      json
// @Param        id   path  string  true  "order id"
// @Success      200  {array}   ord.OrderedProduct
// @Failure      404  {object}  httpx.HTTPError
// @Router       /orders/{id}/products [get]
func getOrderProductsHandler(repo reader) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := repo.GetProducts(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeReadError(c, err)
			return
		}
		if items == nil {
			items = []ord.OrderedProduct{}
		}
		c.JSON(http.StatusOK, items)
	}
}

// listOrdersByCustomerHandler godoc
// @Summary      Orders of a customer, newest first
// @Tags         orders
// @Produce      json
// @Param        customer_id  path   string  true   "customer id"
// @Param        limit        query  int     false  "page size (1..100)"  default(20)
// @Param        offset       query  int     false  "offset"              default(0)
// @Success      200  {array}  ord.OrderResponse
// @Router       /orders/customer/{customer_id} [get]
func listOrdersByCustomerHandler(repo reader) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := httpx.Page(c)
		orders, err := repo.ListByCustomer(c.Request.Context(), c.Param("customer_id"), limit, offset)
		if err != nil {
			writeReadError(c, err)
			return
		}
		out := make([]ord.OrderResponse, 0, len(orders))
		for i := range orders {
			out = append(out, ord.NewOrderResponse(&orders[i]))
		}
		c.JSON(http.StatusOK, out)
	}
}

func writeReadError(c *gin.Context, err error) {
	if errors.Is(err, ord.ErrNotFound) {
		httpx.Error(c, http.StatusNotFound, "not found")
		return
	}
	_ = c.Error(err)
	httpx.Error(c, http.StatusInternalServerError, "internal error")
}
