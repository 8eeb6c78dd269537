package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/vitality/web/internal/middleware"
	"github.com/pageza/vitality/web/internal/tenant"
)

// HomeHandler serves the root of every basename
type HomeHandler struct {
	render      *Responder
	defaultSlug string
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(render *Responder, defaultSlug string) *HomeHandler {
	return &HomeHandler{render: render, defaultSlug: defaultSlug}
}

// Root moves "/" into the default tenant once, then shows the public
// landing page. A tenant root goes to the tenant's login.
func (h *HomeHandler) Root(c *gin.Context) {
	basename := middleware.GetBasename(c)
	if basename != tenant.GlobalBasename {
		c.Redirect(http.StatusFound, tenant.LoginPath(basename))
		return
	}

	if target, ok := tenant.RootRedirect(c.Request.URL.Path, c.Request.URL.Query(), h.defaultSlug); ok {
		c.Redirect(http.StatusFound, target)
		return
	}
	h.render.Page(c, "landing", gin.H{"defaultTenant": tenant.Join("/org/"+h.defaultSlug, "/login")})
}

// NotFound sends unknown paths to the login page of their basename
func (h *HomeHandler) NotFound(c *gin.Context) {
	target := tenant.LoginPath(tenant.Basename(c.Request.URL.Path))
	if middleware.WantsJSON(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Página no encontrada", "redirect": target})
		return
	}
	c.Redirect(http.StatusFound, target)
}
