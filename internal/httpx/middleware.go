package httpx

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderRequestID = "X-Request-ID"
	ctxRequestID    = "rid"
)

// RequestID reuses the caller's X-Request-ID or assigns a new one, and echoes
// it in the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(ctxRequestID, rid)
		c.Header(HeaderRequestID, rid)
		c.Next()
	}
}

func RequestIDFrom(c *gin.Context) string {
	return c.GetString(ctxRequestID)
}

// Logger writes one line per request. Errors attached with c.Error are
// appended so 5xx responses keep their cause in the log.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		line := "[http] rid=%s %s %s status=%d bytes=%d dur=%s"
		args := []any{RequestIDFrom(c), c.Request.Method, c.FullPath(), c.Writer.Status(), c.Writer.Size(), time.Since(start)}
		if errs := c.Errors.String(); errs != "" {
			line += " err=%q"
			args = append(args, errs)
		}
		log.Printf(line, args...)
	}
}
