package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/vitality/web/internal/api"
	"github.com/pageza/vitality/web/internal/branding"
	"github.com/pageza/vitality/web/internal/logging"
	"github.com/pageza/vitality/web/internal/middleware"
)

// Handlers are the page handlers mounted by SetupRouter
type Handlers struct {
	Health        *api.HealthHandler
	Home          *api.HomeHandler
	Auth          *api.AuthHandler
	Member        *api.MemberHandler
	Notifications *api.NotificationHandler
	Trainer       *api.TrainerHandler
	Admin         *api.AdminHandler
	SuperAdmin    *api.SuperAdminHandler
}

// Options configures the middleware chain
type Options struct {
	Loader         *middleware.SessionLoader
	Resolver       *branding.Resolver
	CORSOrigins    []string
	TrustedProxies []string
	Logger         logrus.FieldLogger
}

// SetupRouter configures the application routes. Every tenant page exists
// twice: under the global basename and under /org/:slug.
func SetupRouter(h Handlers, opts Options) *gin.Engine {
	router := gin.New()
	if err := router.SetTrustedProxies(opts.TrustedProxies); err != nil {
		// gin trusts no proxy after a failed update
		opts.Logger.WithError(err).Error("invalid trusted proxies")
	}

	router.Use(logging.Middleware(opts.Logger))
	router.Use(middleware.ErrorHandler(opts.Logger))
	router.Use(middleware.CORS(opts.CORSOrigins))

	// Health is served before session and branding resolution
	if h.Health != nil {
		router.GET("/health", h.Health.HealthCheck)
	}

	router.Use(opts.Loader.Middleware())
	router.Use(middleware.Tenant(opts.Resolver))

	global := router.Group("/")
	org := router.Group("/org/:slug")

	for _, rg := range []*gin.RouterGroup{global, org} {
		rg.GET("/", h.Home.Root)
		h.Auth.RegisterRoutes(rg)
		h.Member.RegisterRoutes(rg)
		h.Notifications.RegisterRoutes(rg)
		h.Trainer.RegisterRoutes(rg)
		h.Admin.RegisterRoutes(rg)
	}

	// The superadmin area never lives inside a tenant
	h.SuperAdmin.RegisterRoutes(global)

	router.NoRoute(h.Home.NotFound)

	return router
}
