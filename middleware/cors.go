package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/connosssss/trackr/pkg/appenv"

	"github.com/gin-gonic/gin"
)

// CORS sets cross-origin headers for the dashboard frontend.
// Outside production any origin is allowed. In production (APP_ENV=production
// or Gin release mode) the incoming Origin is reflected only when it appears
// in the comma-separated ALLOWED_ORIGINS env var; ALLOW_CREDENTIALS=true adds
// the credentials header.
func CORS() gin.HandlerFunc {
	isProd := appenv.IsProduction() || gin.Mode() == gin.ReleaseMode

	allowed := make(map[string]struct{})
	for _, o := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if origin := strings.TrimSpace(o); origin != "" {
			allowed[origin] = struct{}{}
		}
	}
	allowCredentials := strings.EqualFold(os.Getenv("ALLOW_CREDENTIALS"), "true")

	const (
		methods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
		headers = "Origin, Content-Type, Authorization"
	)

	return func(c *gin.Context) {
		c.Header("Vary", "Origin")

		if !isProd {
			c.Header("Access-Control-Allow-Origin", "*")
			c.Header("Access-Control-Allow-Methods", methods)
			c.Header("Access-Control-Allow-Headers", headers)
			if c.Request.Method == http.MethodOptions {
				c.AbortWithStatus(http.StatusNoContent)
				return
			}
			c.Next()
			return
		}

		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			if _, ok := allowed[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Access-Control-Allow-Methods", methods)
				c.Header("Access-Control-Allow-Headers", headers)
				if allowCredentials {
					c.Header("Access-Control-Allow-Credentials", "true")
				}
			}
		}

		if c.Request.Method == http.MethodOptions {
			// Preflight from a disallowed origin gets 204 without the allow
			// headers; the browser blocks the actual request.
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
