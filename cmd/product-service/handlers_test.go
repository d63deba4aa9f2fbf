package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/ordenes-core/internal/memstore"
	prod "github.com/MikeMC777/ordenes-core/internal/product"
)

//
// ===== REPO EN MEMORIA que recuerda la última consulta =====
//

type spyRepo struct {
	*memstore.Products
	lastQuery prod.Query
}

func newSpyRepo() *spyRepo {
	return &spyRepo{Products: memstore.New().Products()}
}

func (s *spyRepo) List(ctx context.Context, q prod.Query) ([]prod.Product, error) {
	s.lastQuery = q
	return s.Products.List(ctx, q)
}

func (s *spyRepo) seed(t *testing.T, id, name, price string, qty int) {
	t.Helper()
	p := &prod.Product{ID: id, Name: name, Price: decimal.RequireFromString(price), Quantity: qty}
	if err := s.Create(context.Background(), p); err != nil {
		t.Fatalf("seed %s: %v", id, err)
	}
}

func newRouter(repo prod.Repository) *gin.Engine {
	r := gin.New()
	registerRoutes(r, repo)
	return r
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func init() {
	gin.SetMode(gin.TestMode)
	log.SetOutput(io.Discard)
}

//
// ===== TESTS =====
//

// /products → paginación SOLAMENTE (no debe mandar Q al repo)
func TestListProducts_PaginationOnly_NoSearch(t *testing.T) {
	repo := newSpyRepo()
	for i := 1; i <= 3; i++ {
		repo.seed(t, fmt.Sprintf("%d", i), fmt.Sprintf("Prod %d", i), "10.00", 5)
	}
	r := newRouter(repo)

	w := do(r, http.MethodGet, "/products?limit=2&offset=1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got prod.ListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("json inválido: %v", err)
	}
	if len(got.Items) != 2 || got.Limit != 2 || got.Offset != 1 {
		t.Fatalf("respuesta inesperada: %+v", got)
	}
	if repo.lastQuery.Q != "" {
		t.Fatalf("listOnlyHandler no debe aplicar búsqueda; Q=%q", repo.lastQuery.Q)
	}
}

// /products/search → exige q (≥2); devuelve filtrado + paginado
func TestSearchProducts_RequiresQAndFilters(t *testing.T) {
	repo := newSpyRepo()
	repo.seed(t, "a", "Mouse Pro", "99.90", 5)
	repo.seed(t, "b", "Teclado", "149.90", 3)
	r := newRouter(repo)

	// falta q ⇒ 400
	if w := do(r, http.MethodGet, "/products/search?limit=10&offset=0", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("esperaba 400 por q faltante, got %d", w.Code)
	}
	// q demasiado corta ⇒ 400
	if w := do(r, http.MethodGet, "/products/search?q=m", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("esperaba 400 por q corta, got %d", w.Code)
	}

	// q válida ⇒ 200 + 1 resultado (Mouse Pro), sin importar mayúsculas
	w := do(r, http.MethodGet, "/products/search?q=MO&limit=10&offset=0", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got prod.ListResponse
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got.Q != "MO" || len(got.Items) != 1 || got.Items[0].ID != "a" {
		t.Fatalf("resultado inesperado: q=%q items=%+v", got.Q, got.Items)
	}
	if repo.lastQuery.Q == "" {
		t.Fatalf("debió enviarse Q al repo en search")
	}
}

// /products/:id
func TestGetProduct_OK_And_NotFound(t *testing.T) {
	repo := newSpyRepo()
	repo.seed(t, "x", "Headset", "149.90", 7)
	r := newRouter(repo)

	w := do(r, http.MethodGet, "/products/x", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var p prod.Product
	_ = json.Unmarshal(w.Body.Bytes(), &p)
	if !p.Price.Equal(decimal.RequireFromString("149.90")) || p.Quantity != 7 {
		t.Fatalf("producto inesperado: %+v", p)
	}

	if w := do(r, http.MethodGet, "/products/nope", ""); w.Code != http.StatusNotFound {
		t.Fatalf("esperaba 404, got %d body=%s", w.Code, w.Body.String())
	}
}

// POST /products
func TestCreateProduct_Valid_And_Invalid(t *testing.T) {
	repo := newSpyRepo()
	r := newRouter(repo)

	// válido (price como string o número)
	for _, body := range []string{
		`{"name":"Starter Kit","price":"49.90","quantity":10}`,
		`{"name":"Starter Kit 2","price":49.9,"quantity":0}`,
	} {
		if w := do(r, http.MethodPost, "/products", body); w.Code != http.StatusCreated {
			t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
		}
	}

	cases := map[string]string{
		"falta name":        `{"price":"1.00","quantity":1}`,
		"quantity negativa": `{"name":"Bad","price":"1.00","quantity":-1}`,
		"precio negativo":   `{"name":"Bad","price":"-1.00","quantity":1}`,
		"tres decimales":    `{"name":"Bad","price":"1.005","quantity":1}`,
		"json roto":         `{"name":`,
	}
	for name, body := range cases {
		if w := do(r, http.MethodPost, "/products", body); w.Code != http.StatusBadRequest {
			t.Fatalf("%s: esperaba 400, got %d body=%s", name, w.Code, w.Body.String())
		}
	}

	// nombre duplicado (sin importar mayúsculas) ⇒ 409
	if w := do(r, http.MethodPost, "/products", `{"name":"starter kit","price":"1.00","quantity":1}`); w.Code != http.StatusConflict {
		t.Fatalf("esperaba 409, got %d body=%s", w.Code, w.Body.String())
	}
}

// PUT /products/:id (parcial). Si no se envía price, NO se modifica.
func TestUpdateProduct_Partial_WithAndWithoutPrice(t *testing.T) {
	repo := newSpyRepo()
	repo.seed(t, "p", "Mouse", "10.00", 5)
	r := newRouter(repo)

	// sin price ni quantity
	if w := do(r, http.MethodPut, "/products/p", `{"name":"Mouse 2"}`); w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	got, _ := repo.GetByID(context.Background(), "p")
	if got.Name != "Mouse 2" || got.Price.StringFixed(2) != "10.00" || got.Quantity != 5 {
		t.Fatalf("update parcial no respetado: %+v", got)
	}

	// con price; quantity 0 explícito sí se aplica
	if w := do(r, http.MethodPut, "/products/p", `{"price":"12.50","quantity":0}`); w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	got, _ = repo.GetByID(context.Background(), "p")
	if got.Price.StringFixed(2) != "12.50" || got.Quantity != 0 {
		t.Fatalf("update con price no aplicado: %+v", got)
	}

	// inválido: quantity negativa ⇒ 400
	if w := do(r, http.MethodPut, "/products/p", `{"quantity":-3}`); w.Code != http.StatusBadRequest {
		t.Fatalf("esperaba 400 por quantity negativa, got %d body=%s", w.Code, w.Body.String())
	}
	// inexistente ⇒ 404
	if w := do(r, http.MethodPut, "/products/nope", `{"name":"X"}`); w.Code != http.StatusNotFound {
		t.Fatalf("esperaba 404, got %d body=%s", w.Code, w.Body.String())
	}
}

// DELETE /products/:id
func TestDeleteProduct_OK_And_NotFound(t *testing.T) {
	repo := newSpyRepo()
	repo.seed(t, "del", "X", "1.00", 1)
	r := newRouter(repo)

	if w := do(r, http.MethodDelete, "/products/del", ""); w.Code != http.StatusNoContent {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if w := do(r, http.MethodDelete, "/products/del", ""); w.Code != http.StatusNotFound {
		t.Fatalf("esperaba 404, got %d body=%s", w.Code, w.Body.String())
	}
}
