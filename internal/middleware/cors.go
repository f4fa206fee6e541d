package middleware

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// CORSMiddleware sets the CORS headers expected by the web front-end variants
// and short-circuits preflight requests
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")                                       // Allow any origin
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-User-ID") // Headers used by the clients
		c.Header("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")            // Allowed verbs
		// Answer preflight requests without hitting the handlers
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next() // Proceed to the next handler
	}
}
