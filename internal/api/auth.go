package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/vitality/web/internal/apiclient"
	"github.com/pageza/vitality/web/internal/middleware"
	"github.com/pageza/vitality/web/internal/service"
	"github.com/pageza/vitality/web/internal/tenant"
	"github.com/pageza/vitality/web/internal/types"
)

// AuthHandler serves login and logout
type AuthHandler struct {
	auth        service.IAuthService
	loader      *middleware.SessionLoader
	limiter     *middleware.RateLimiter
	render      *Responder
	defaultSlug string
}

// NewAuthHandler creates a new AuthHandler. A nil limiter disables login
// rate limiting.
func NewAuthHandler(auth service.IAuthService, loader *middleware.SessionLoader, limiter *middleware.RateLimiter, render *Responder, defaultSlug string) *AuthHandler {
	return &AuthHandler{auth: auth, loader: loader, limiter: limiter, render: render, defaultSlug: defaultSlug}
}

// RegisterRoutes mounts the login routes on a basename group
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	login := []gin.HandlerFunc{h.Login}
	if h.limiter != nil {
		login = append([]gin.HandlerFunc{h.limiter.Middleware()}, login...)
	}

	rg.GET("/login", h.LoginPage)
	rg.POST("/login", login...)
	rg.POST("/logout", h.Logout)
}

type loginView struct {
	OrgSlug string `json:"orgSlug,omitempty"`
	From    string `json:"from,omitempty"`
}

// LoginPage renders the sign-in form. Signed-in users go to their landing
// page; the tenant-less login moves once into the default tenant.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	basename := middleware.GetBasename(c)
	if basename == tenant.GlobalBasename {
		if target, ok := tenant.RootRedirect(c.Request.URL.Path, c.Request.URL.Query(), h.defaultSlug); ok {
			c.Redirect(http.StatusFound, target)
			return
		}
	}

	if user := middleware.GetUser(c); user != nil {
		c.Redirect(http.StatusFound, tenant.LandingPath(basename, user.Role))
		return
	}

	h.render.Page(c, "login", loginView{
		OrgSlug: tenant.Slug(basename),
		From:    c.Query("from"),
	})
}

type loginResult struct {
	Redirect string     `json:"redirect"`
	User     types.User `json:"user"`
}

// Login signs in against the backend and starts a session
func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.render.Invalid(c, err, "/login")
		return
	}

	basename := middleware.GetBasename(c)
	resp, err := h.auth.Login(c.Request.Context(), req.Email, req.Password, tenant.Slug(basename))
	if err != nil {
		h.loginFailed(c, err)
		return
	}

	sess, err := h.loader.Manager().Login(c.Request.Context(), resp.Token, resp.User)
	if err != nil {
		h.render.Fail(c, err, "No se pudo iniciar la sesión", "/login")
		return
	}
	if err := h.loader.Establish(c, sess); err != nil {
		h.render.Fail(c, err, "No se pudo iniciar la sesión", "/login")
		return
	}

	landing := tenant.LandingPath(basename, sess.User.Role)
	if middleware.WantsJSON(c) {
		c.JSON(http.StatusOK, loginResult{Redirect: landing, User: *sess.User})
		return
	}
	c.Redirect(http.StatusSeeOther, landing)
}

// loginFailed reports bad credentials without touching any session
func (h *AuthHandler) loginFailed(c *gin.Context, err error) {
	msg := apiclient.UserMessage(err, "Credenciales inválidas")
	status := http.StatusUnauthorized
	if !apiclient.IsUnauthorized(err) && !apiclient.IsKind(err, apiclient.KindValidation) {
		msg = apiclient.UserMessage(err, "No se pudo conectar con el servidor")
		status = statusFor(err)
	}

	if middleware.WantsJSON(c) {
		c.JSON(status, middleware.ErrorResponse{Error: msg})
		return
	}
	p := h.render.page(c, "login", loginView{OrgSlug: tenant.Slug(middleware.GetBasename(c))})
	p.Error = msg
	h.render.render(c, status, p)
}

// Logout ends the session and returns to the tenant's login page
func (h *AuthHandler) Logout(c *gin.Context) {
	if sess := middleware.GetSession(c); sess != nil {
		if err := h.loader.Manager().Logout(c.Request.Context(), sess.ID); err != nil {
			h.render.logger.WithError(err).Warn("failed to delete session")
		}
	}
	h.loader.Clear(c)

	target := tenant.LoginPath(middleware.GetBasename(c))
	if middleware.WantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"redirect": target})
		return
	}
	c.Redirect(http.StatusSeeOther, target)
}
