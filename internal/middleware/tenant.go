package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/vitality/web/internal/branding"
	"github.com/pageza/vitality/web/internal/tenant"
)

// Tenant stores the basename and the resolved branding of the request.
// Branding never fails: unknown tenants get the fallback theme.
func Tenant(resolver *branding.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(basenameKey, tenant.Basename(c.Request.URL.Path))
		c.Set(themeKey, resolver.Resolve(c.Request.Context(), c.Request.URL.Path, c.Request.URL.Query()))
		c.Next()
	}
}
