package server

import (
	"net/http"
	"time"

	"auction-engine/internal/auctionerrors"
	"auction-engine/utils"

	"github.com/gin-gonic/gin"
)

// CallerIDHeader is set by the external gateway after it has verified the
// caller's token. Auth mechanics live outside this service; we only consume
// the resulting identity.
const CallerIDHeader = "X-Caller-Id"

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	})
}

// CallerIdentityMiddleware requires the gateway-supplied caller identity and
// stashes it in the request context for handlers.
func CallerIdentityMiddleware(c *gin.Context) {
	callerID := c.GetHeader(CallerIDHeader)
	if callerID == "" {
		utils.JSONError(c, http.StatusUnauthorized, auctionerrors.ErrInvalidRequest, "missing caller identity")
		c.Abort()
		return
	}
	c.Set("callerID", callerID)
	c.Next()
}
