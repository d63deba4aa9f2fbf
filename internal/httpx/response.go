package httpx

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// HTTPError represents a standard error in JSON.
// swagger:model
type HTTPError struct {
	// Error message
	// example: not found
	Error string `json:"error"`
}

func Error(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, HTTPError{Error: msg})
}

// Page reads limit/offset query params, clamped to 1..100 and >= 0.
func Page(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func Healthz(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// NewRouter returns a gin engine with the shared middleware and /healthz.
func NewRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), Logger())
	r.GET("/healthz", Healthz)
	return r
}
