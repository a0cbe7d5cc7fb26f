package middleware

import (
	"github.com/gin-gonic/gin"
)

// apiSecurityHeaders are set on every response. The service only returns
// JSON, so nothing may be framed, sniffed or cached.
var apiSecurityHeaders = map[string]string{
	"Content-Security-Policy":           "default-src 'none'; frame-ancestors 'none'",
	"X-Frame-Options":                   "DENY",
	"X-Content-Type-Options":            "nosniff",
	"Referrer-Policy":                   "no-referrer",
	"Permissions-Policy":                "camera=(), microphone=(), geolocation=(), interest-cohort=()",
	"X-Permitted-Cross-Domain-Policies": "none",
	"Cache-Control":                     "no-store, no-cache, must-revalidate, private",
	"Pragma":                            "no-cache",
}

// SecurityHeadersMiddleware adds security headers to all HTTP responses
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		for name, value := range apiSecurityHeaders {
			c.Header(name, value)
		}
		c.Next()
	}
}
