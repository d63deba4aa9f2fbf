package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/ordenes-core/internal/httpx"
	prod "github.com/MikeMC777/ordenes-core/internal/product"
)

func registerRoutes(r gin.IRouter, repo prod.Repository) {
	r.GET("/products", listOnlyHandler(repo))
	r.GET("/products/search", searchHandler(repo))
	r.GET("/products/:id", getProductHandler(repo))
	r.POST("/products", createProductHandler(repo))
	r.PUT("/products/:id", updateProductHandler(repo))
	r.DELETE("/products/:id", deleteProductHandler(repo))
}

// listOnlyHandler godoc
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        limit   query  int  false  "page size (1..100)"  default(20)
// @Param        offset  query  int  false  "offset"              default(0)
// @Success      200  {object}  prod.ListResponse
// @Failure      500  {object}  httpx.HTTPError
// @Router       /products [get]
func listOnlyHandler(repo prod.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := httpx.Page(c)
		items, err := repo.List(c.Request.Context(), prod.Query{Limit: limit, Offset: offset})
		if err != nil {
			_ = c.Error(err)
			httpx.Error(c, http.StatusInternalServerError, "could not list products")
			return
		}
		c.JSON(http.StatusOK, prod.ListResponse{Limit: limit, Offset: offset, Items: items})
	}
}

// searchHandler godoc
// @Summary      Search products by name
// @Tags         products
// @Produce      json
// @Param        q       query  string  true   "name fragment, at least 2 characters"
// @Param        limit   query  int     false  "page size (1..100)"  default(20)
// @Param        offset  query  int     false  "offset"              default(0)
// @Success      200  {object}  prod.ListResponse
// @Failure      400  {object}  httpx.HTTPError
// @Router       /products/search [get]
func searchHandler(repo prod.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := strings.TrimSpace(c.Query("q"))
		if len([]rune(q)) < 2 {
			httpx.Error(c, http.StatusBadRequest, "q must have at least 2 characters")
			return
		}
		limit, offset := httpx.Page(c)
		items, err := repo.List(c.Request.Context(), prod.Query{Q: q, Limit: limit, Offset: offset})
		if err != nil {
			_ = c.Error(err)
			httpx.Error(c, http.StatusInternalServerError, "could not search products")
			return
		}
		c.JSON(http.StatusOK, prod.ListResponse{Q: q, Limit: limit, Offset: offset, Items: items})
	}
}

// getProductHandler godoc
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "product id"
// @Success      200  {object}  prod.Product
// @Failure      404  {object}  httpx.HTTPError
// @Router       /products/{id} [get]
func getProductHandler(repo prod.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeRepoError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// createProductHandler godoc
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  prod.CreateProductRequest  true  "product"
// @Success      201  {object}  prod.Product
// @Failure      400  {object}  httpx.HTTPError
// @Failure      409  {object}  httpx.HTTPError
// @Router       /products [post]
func createProductHandler(repo prod.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in prod.CreateProductRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.Error(c, http.StatusBadRequest, "invalid json")
			return
		}
		p := &prod.Product{Name: in.Name, Price: in.Price, Quantity: in.Quantity}
		if err := p.Validate(); err != nil {
			httpx.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		if err := repo.Create(c.Request.Context(), p); err != nil {
			writeRepoError(c, err)
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

// updateProductHandler godoc
// @Summary      Update a product
// @Description  Partial update. Omitted fields keep their value.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "product id"
// @Param        body  body  prod.UpdateProductRequest  true  "changes"
// @Success      200  {object}  prod.Product
// @Failure      400  {object}  httpx.HTTPError
// @Failure      404  {object}  httpx.HTTPError
// @Failure      409  {object}  httpx.HTTPError
// @Router       /products/{id} [put]
func updateProductHandler(repo prod.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in prod.UpdateProductRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			httpx.Error(c, http.StatusBadRequest, "invalid json")
			return
		}
		ch := in.Changes()
		if err := ch.Validate(); err != nil {
			httpx.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		p, err := repo.Update(c.Request.Context(), c.Param("id"), ch)
		if err != nil {
			writeRepoError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// deleteProductHandler godoc
// @Summary      Delete a product
// @Tags         products
// @Param        id   path  string  true  "product id"
// @Success      204
// @Failure      404  {object}  httpx.HTTPError
// @Router       /products/{id} [delete]
func deleteProductHandler(repo prod.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := repo.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			_ = c.Error(err)
			httpx.Error(c, http.StatusInternalServerError, "could not delete product")
			return
		}
		if !ok {
			httpx.Error(c, http.StatusNotFound, "not found")
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func writeRepoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, prod.ErrNotFound):
		httpx.Error(c, http.StatusNotFound, "not found")
	case errors.Is(err, prod.ErrAlreadyExist):
		httpx.Error(c, http.StatusConflict, "a product with that name already exists")
	case errors.Is(err, prod.ErrInvalid):
		httpx.Error(c, http.StatusBadRequest, err.Error())
	default:
		_ = c.Error(err)
		httpx.Error(c, http.StatusInternalServerError, "internal error")
	}
}
