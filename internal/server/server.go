package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
	"github.com/sirupsen/logrus"

	"github.com/pageza/vitality/web/config"
	"github.com/pageza/vitality/web/internal/session"
)

// CSRFHeader carries the token for JSON clients
const CSRFHeader = "X-CSRF-Token"

// Server represents the HTTP server
type Server struct {
	router  *gin.Engine
	handler http.Handler
	http    *http.Server
	logger  logrus.FieldLogger
}

// New wraps router with CSRF protection and prepares the HTTP server.
// secure requires HTTPS for the CSRF cookie and Referer checks.
func New(cfg *config.Config, router *gin.Engine, logger logrus.FieldLogger, secure bool) (*Server, error) {
	key, err := session.DeriveKey(cfg.SessionSecret, "csrf")
	if err != nil {
		return nil, err
	}

	protect := csrf.Protect(key,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.CookieName("vitality_csrf"),
		csrf.FieldName("csrf_token"),
		csrf.RequestHeader(CSRFHeader),
		csrf.TrustedOrigins(trustedHosts(cfg.CORSOrigins)),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.WithError(csrf.FailureReason(r)).WithField("path", r.URL.Path).Warn("CSRF check failed")
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":"Solicitud no válida. Recarga la página e inténtalo de nuevo."}`))
		})),
	)

	handler := protect(router)
	if !secure {
		handler = plaintext(handler)
	}

	s := &Server{
		router:  router,
		handler: handler,
		logger:  logger,
	}
	s.http = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	s.logger.WithField("addr", s.http.Addr).Info("starting web server")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// plaintext tells the CSRF check the request arrived over HTTP, so the
// HTTPS-only Referer check is skipped during development.
func plaintext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
	})
}

func trustedHosts(origins []string) []string {
	var hosts []string
	for _, origin := range origins {
		u, err := url.Parse(origin)
		if err != nil || u.Host == "" {
			continue
		}
		hosts = append(hosts, u.Host)
	}
	return hosts
}
