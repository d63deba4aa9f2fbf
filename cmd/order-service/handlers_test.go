package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/ordenes-core/internal/customer"
	"github.com/MikeMC777/ordenes-core/internal/memstore"
	ord "github.com/MikeMC777/ordenes-core/internal/order"
	prod "github.com/MikeMC777/ordenes-core/internal/product"
)

//
// ---------- ENTORNO EN MEMORIA ----------
//

type env struct {
	store    *memstore.Store
	router   *gin.Engine
	customer *customer.Customer
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memstore.New()
	c := &customer.Customer{Name: "Ana", Email: "ana@example.com"}
	if err := store.Customers().Create(context.Background(), c); err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	svc := ord.NewService(ord.Deps{
		Customers: store.Customers(),
		Products:  store.Products(),
		Stock:     store.Products(),
		Orders:    store.Orders(),
		Tx:        store,
	})
	r := gin.New()
	registerRoutes(r, svc, store.Orders())
	return &env{store: store, router: r, customer: c}
}

func (e *env) addProduct(t *testing.T, name, price string, qty int) *prod.Product {
	t.Helper()
	p := &prod.Product{Name: name, Price: decimal.RequireFromString(price), Quantity: qty}
	if err := e.store.Products().Create(context.Background(), p); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func (e *env) quantity(t *testing.T, id string) int {
	t.Helper()
	p, err := e.store.Products().GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	return p.Quantity
}

func (e *env) do(method, target, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, target, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func orderBody(customerID string, items ...ord.RequestedItem) string {
	b, _ := json.Marshal(ord.PlaceOrderRequest{CustomerID: customerID, Items: items})
	return string(b)
}

func init() {
	gin.SetMode(gin.TestMode)
	log.SetOutput(io.Discard)
}

//
// ---------- TESTS ----------
//

func TestCreateOrder_HappyPath(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	p := e.addProduct(t, "Teclado", "15.00", 5)

	// 2 unidades ⇒ descuenta stock
	w := e.do(http.MethodPost, "/orders", orderBody(e.customer.ID, ord.RequestedItem{ProductID: p.ID, Quantity: 2}))
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got ord.OrderResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("json inválido: %v", err)
	}
	if got.ID == "" || got.CustomerID != e.customer.ID || len(got.Products) != 1 {
		t.Fatalf("orden inesperada: %+v", got)
	}
	if got.Products[0].Price.StringFixed(2) != "15.00" || got.Total.StringFixed(2) != "30.00" {
		t.Fatalf("precio/total inesperado: %+v", got)
	}
	if q := e.quantity(t, p.ID); q != 3 {
		t.Fatalf("stock esperado=3, real=%d", q)
	}
}

func TestCreateOrder_ErrorStatuses(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	p := e.addProduct(t, "Mouse", "10.00", 1)

	cases := []struct {
		name string
		body string
		want int
	}{
		{"json roto", `{"customer_id":`, http.StatusBadRequest},
		{"sin items", orderBody(e.customer.ID), http.StatusBadRequest},
		{"cantidad cero", orderBody(e.customer.ID, ord.RequestedItem{ProductID: p.ID, Quantity: 0}), http.StatusBadRequest},
		{"cliente inexistente", orderBody(uuid.NewString(), ord.RequestedItem{ProductID: p.ID, Quantity: 1}), http.StatusNotFound},
		{"producto inexistente", orderBody(e.customer.ID, ord.RequestedItem{ProductID: uuid.NewString(), Quantity: 1}), http.StatusNotFound},
		{"stock insuficiente", orderBody(e.customer.ID, ord.RequestedItem{ProductID: p.ID, Quantity: 2}), http.StatusConflict},
	}
	for _, tc := range cases {
		w := e.do(http.MethodPost, "/orders", tc.body)
		if w.Code != tc.want {
			t.Fatalf("%s: status=%d body=%s (esperaba %d)", tc.name, w.Code, w.Body.String(), tc.want)
		}
	}
	// ninguna falla toca el stock
	if q := e.quantity(t, p.ID); q != 1 {
		t.Fatalf("stock modificado por pedidos fallidos: %d", q)
	}
}

type brokenPlacer struct{}

func (brokenPlacer) PlaceOrder(context.Context, ord.PlaceOrderRequest) (*ord.Order, error) {
	return nil, errors.New("connection refused")
}

func TestCreateOrder_StorageErrorIs500WithoutDetails(t *testing.T) {
	t.Parallel()
	r := gin.New()
	r.POST("/orders", createOrderHandler(brokenPlacer{}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(orderBody("c", ord.RequestedItem{ProductID: "p", Quantity: 1})))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if bytes.Contains(w.Body.Bytes(), []byte("refused")) {
		t.Fatalf("el error interno no debe exponerse: %s", w.Body.String())
	}
}

// ===== GET /orders/:id =====
func TestGetOrder_OK_And_NotFound(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	p := e.addProduct(t, "Monitor", "100.00", 4)
	created := e.do(http.MethodPost, "/orders", orderBody(e.customer.ID, ord.RequestedItem{ProductID: p.ID, Quantity: 1}))
	var o ord.OrderResponse
	_ = json.Unmarshal(created.Body.Bytes(), &o)

	w := e.do(http.MethodGet, "/orders/"+o.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got ord.OrderResponse
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got.ID != o.ID || got.Total.StringFixed(2) != "100.00" {
		t.Fatalf("orden inesperada: %+v", got)
	}

	if w := e.do(http.MethodGet, "/orders/"+uuid.NewString(), ""); w.Code != http.StatusNotFound {
		t.Fatalf("status=%d body=%s (esperaba 404)", w.Code, w.Body.String())
	}
}

// ===== GET /orders/:id/products =====
func TestGetOrderProducts_KeepsRequestOrder(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	a := e.addProduct(t, "A", "1.00", 10)
	b := e.addProduct(t, "B", "2.00", 10)
	created := e.do(http.MethodPost, "/orders", orderBody(e.customer.ID,
		ord.RequestedItem{ProductID: b.ID, Quantity: 1},
		ord.RequestedItem{ProductID: a.ID, Quantity: 3},
	))
	var o ord.OrderResponse
	_ = json.Unmarshal(created.Body.Bytes(), &o)

	w := e.do(http.MethodGet, "/orders/"+o.ID+"/products", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s (esperaba 200)", w.Code, w.Body.String())
	}
	var items []ord.OrderedProduct
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("json inválido: %v", err)
	}
	if len(items) != 2 || items[0].ProductID != b.ID || items[1].ProductID != a.ID || items[1].Quantity != 3 {
		t.Fatalf("items inesperados: %+v", items)
	}

	if w := e.do(http.MethodGet, "/orders/"+uuid.NewString()+"/products", ""); w.Code != http.StatusNotFound {
		t.Fatalf("status=%d (esperaba 404)", w.Code)
	}
}

// ===== GET /orders/customer/:customer_id =====
func TestListOrdersByCustomer_NewestFirstAndPaged(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	p := e.addProduct(t, "Cable", "3.00", 10)
	var ids []string
	for i := 1; i <= 3; i++ {
		w := e.do(http.MethodPost, "/orders", orderBody(e.customer.ID, ord.RequestedItem{ProductID: p.ID, Quantity: i}))
		var o ord.OrderResponse
		_ = json.Unmarshal(w.Body.Bytes(), &o)
		ids = append(ids, o.ID)
	}

	w := e.do(http.MethodGet, fmt.Sprintf("/orders/customer/%s?limit=2&offset=0", e.customer.ID), "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s (esperaba 200)", w.Code, w.Body.String())
	}
	var got []ord.OrderResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("json inválido: %v", err)
	}
	if len(got) != 2 || got[0].ID != ids[2] || got[1].ID != ids[1] {
		t.Fatalf("orden/paginación inesperada: %+v", got)
	}

	// cliente sin órdenes ⇒ lista vacía, no null
	w = e.do(http.MethodGet, "/orders/customer/"+uuid.NewString(), "")
	if w.Code != http.StatusOK || w.Body.String() != "[]" {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}
