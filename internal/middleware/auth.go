package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/vitality/web/internal/session"
	"github.com/pageza/vitality/web/internal/tenant"
	"github.com/pageza/vitality/web/internal/types"
)

// SessionCookieName is the cookie carrying the signed session id
const SessionCookieName = "vitality_session"

// State is the sign-in state of a request as seen by the role gate
type State int

const (
	// StateLoading means the session store could not be read
	StateLoading State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Decision is the outcome of the role gate. Exactly one of Allow, Redirect
// or Status is set.
type Decision struct {
	Allow    bool
	Redirect string
	Status   int
}

// Gate decides whether the user may see the page at path. An empty
// allowed list admits every signed-in user.
func Gate(state State, user *types.User, allowed []types.Role, path string) Decision {
	basename := tenant.Basename(path)

	switch state {
	case StateLoading:
		return Decision{Status: http.StatusServiceUnavailable}
	case StateUnauthenticated:
		return Decision{Redirect: tenant.LoginRedirect(basename, path)}
	}
	if user == nil {
		return Decision{Redirect: tenant.LoginRedirect(basename, path)}
	}

	role := types.NormalizeRole(user.Role)
	if len(allowed) == 0 {
		return Decision{Allow: true}
	}
	for _, r := range allowed {
		if r == role {
			return Decision{Allow: true}
		}
	}
	return Decision{Redirect: tenant.ForbiddenPath(basename, role)}
}

// SessionLoader binds the session cookie to the stored session
type SessionLoader struct {
	manager *session.Manager
	codec   *session.CookieCodec
	logger  logrus.FieldLogger
	secure  bool
}

// NewSessionLoader creates a loader. secure marks the cookie HTTPS-only.
func NewSessionLoader(manager *session.Manager, codec *session.CookieCodec, logger logrus.FieldLogger, secure bool) *SessionLoader {
	return &SessionLoader{manager: manager, codec: codec, logger: logger, secure: secure}
}

// Manager returns the session manager the loader reads through
func (l *SessionLoader) Manager() *session.Manager {
	return l.manager
}

// Middleware resolves the session of every request into the context
func (l *SessionLoader) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(stateKey, StateUnauthenticated)

		raw, err := c.Cookie(SessionCookieName)
		if err != nil || raw == "" {
			c.Next()
			return
		}

		id, err := l.codec.Decode(raw)
		if err != nil {
			l.Clear(c)
			c.Next()
			return
		}

		sess, err := l.manager.Load(c.Request.Context(), id)
		switch {
		case errors.Is(err, session.ErrNotFound):
			l.Clear(c)
		case err != nil:
			l.logger.WithError(err).Error("failed to load session")
			c.Set(stateKey, StateLoading)
		default:
			c.Set(sessionKey, sess)
			if sess.IsAuthenticated() {
				c.Set(stateKey, StateAuthenticated)
			}
		}
		c.Next()
	}
}

// Establish writes the cookie for a freshly created session
func (l *SessionLoader) Establish(c *gin.Context, sess *session.Session) error {
	ttl := l.manager.TokenTTL(sess.Token)
	value, err := l.codec.Encode(sess.ID, ttl)
	if err != nil {
		return err
	}
	l.setCookie(c, value, int(ttl/time.Second))
	c.Set(sessionKey, sess)
	c.Set(stateKey, StateAuthenticated)
	return nil
}

// Clear removes the session cookie
func (l *SessionLoader) Clear(c *gin.Context) {
	l.setCookie(c, "", -1)
}

func (l *SessionLoader) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, value, maxAge, "/", "", l.secure, true)
}

// RequireRoles applies the role gate. Browsers are redirected; JSON clients
// get the status with the redirect target in the body.
func RequireRoles(roles ...types.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		d := Gate(GetState(c), GetUser(c), roles, c.Request.URL.Path)
		if d.Allow {
			c.Next()
			return
		}

		if d.Status == http.StatusServiceUnavailable {
			c.Header("Retry-After", "1")
			if WantsJSON(c) {
				c.AbortWithStatusJSON(d.Status, gin.H{"error": "Cargando sesión"})
				return
			}
			c.Data(d.Status, "text/html; charset=utf-8", []byte(loadingPage))
			c.Abort()
			return
		}

		if WantsJSON(c) {
			status := http.StatusForbidden
			if GetUser(c) == nil {
				status = http.StatusUnauthorized
			}
			c.AbortWithStatusJSON(status, gin.H{"error": http.StatusText(status), "redirect": d.Redirect})
			return
		}
		c.Redirect(http.StatusFound, d.Redirect)
		c.Abort()
	}
}

const loadingPage = `<!doctype html><html><head><meta charset="utf-8"><meta http-equiv="refresh" content="1"><title>Cargando</title></head><body><p>Cargando…</p></body></html>`
