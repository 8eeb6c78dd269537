package api

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
	"github.com/sirupsen/logrus"

	"github.com/pageza/vitality/web/internal/apiclient"
	"github.com/pageza/vitality/web/internal/branding"
	"github.com/pageza/vitality/web/internal/middleware"
	"github.com/pageza/vitality/web/internal/screen"
	"github.com/pageza/vitality/web/internal/service"
	"github.com/pageza/vitality/web/internal/session"
	"github.com/pageza/vitality/web/internal/tenant"
	"github.com/pageza/vitality/web/internal/types"
)

//go:embed templates/shell.html
var templateFS embed.FS

var shellTemplate = template.Must(template.ParseFS(templateFS, "templates/shell.html"))

// Page is the model of every rendered page. HTML clients get it embedded in
// the themed shell; JSON clients get it as the response body.
type Page struct {
	Name      string           `json:"page"`
	Basename  string           `json:"basename"`
	Theme     branding.Theme   `json:"theme"`
	Route     string           `json:"route"`
	User      *types.User      `json:"user,omitempty"`
	IsAdmin   bool             `json:"isAdmin"`
	Nav       []tenant.NavItem `json:"nav,omitempty"`
	Flashes   []session.Flash  `json:"flashes,omitempty"`
	CSRFToken string           `json:"csrfToken,omitempty"`
	Error     string           `json:"error,omitempty"`
	Data      interface{}      `json:"data,omitempty"`
}

// RootStyle sets the tenant palette as CSS custom properties. Theme colors
// are validated hex values, so the result is safe CSS.
func (p Page) RootStyle() template.CSS {
	return template.CSS(fmt.Sprintf(
		":root{--primary:%s;--primary-hex:%s;--primary-hover:%s;--primary-foreground:%s;--secondary:%s}",
		p.Theme.PrimaryHSL, p.Theme.PrimaryColor, p.Theme.PrimaryHover, p.Theme.PrimaryForeground, p.Theme.SecondaryColor,
	))
}

// Responder renders pages and reports the outcome of mutations
type Responder struct {
	sessions *session.Manager
	logger   logrus.FieldLogger
}

// NewResponder creates a responder that pops flashes from sessions
func NewResponder(sessions *session.Manager, logger logrus.FieldLogger) *Responder {
	return &Responder{sessions: sessions, logger: logger}
}

// Creds binds the request's session to backend calls
func (r *Responder) Creds(c *gin.Context) apiclient.Credentials {
	return r.sessions.Credentials(middleware.GetSession(c))
}

func (r *Responder) page(c *gin.Context, name string, data interface{}) Page {
	basename := middleware.GetBasename(c)
	p := Page{
		Name:      name,
		Basename:  basename,
		Route:     tenant.Relative(basename, c.Request.URL.Path),
		Theme:     middleware.GetTheme(c),
		CSRFToken: csrf.Token(c.Request),
		Data:      data,
	}
	sess := middleware.GetSession(c)
	if user := middleware.GetUser(c); user != nil {
		p.User = user
		p.IsAdmin = sess.IsAdmin()
		p.Nav = tenant.Navigation(basename, sess.Role())
	}
	if sess != nil {
		flashes, err := r.sessions.PopFlashes(c.Request.Context(), sess)
		if err != nil {
			r.logger.WithError(err).Warn("failed to clear flashes")
		}
		p.Flashes = flashes
	}
	return p
}

// Page renders a page with status 200
func (r *Responder) Page(c *gin.Context, name string, data interface{}) {
	r.render(c, http.StatusOK, r.page(c, name, data))
}

func (r *Responder) render(c *gin.Context, status int, p Page) {
	if middleware.WantsJSON(c) {
		c.JSON(status, p)
		return
	}

	var buf bytes.Buffer
	if err := shellTemplate.Execute(&buf, p); err != nil {
		r.logger.WithError(err).WithField("page", p.Name).Error("failed to render page")
		c.JSON(http.StatusInternalServerError, middleware.ErrorResponse{Error: "Internal Server Error"})
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

// PageError renders a page whose data could not be loaded
func (r *Responder) PageError(c *gin.Context, name string, err error, fallback string) {
	if r.redirectIfSignedOut(c, err) {
		return
	}
	msg := apiclient.UserMessage(err, fallback)
	r.logger.WithError(err).WithField("page", name).Warn("page data unavailable")

	status := statusFor(err)
	if middleware.WantsJSON(c) {
		c.JSON(status, middleware.ErrorResponse{Error: msg})
		return
	}
	p := r.page(c, name, nil)
	p.Error = msg
	r.render(c, status, p)
}

// Done reports a successful mutation. JSON clients get payload; browsers get
// a success flash and a redirect to back.
func (r *Responder) Done(c *gin.Context, status int, message, back string, payload interface{}) {
	if middleware.WantsJSON(c) {
		c.JSON(status, payload)
		return
	}
	r.flash(c, session.FlashSuccess, message)
	c.Redirect(http.StatusSeeOther, tenant.Join(middleware.GetBasename(c), back))
}

// Fail reports a failed mutation with the server message or fallback.
// JSON clients get {"error": msg}; browsers get an error flash and a
// redirect to back.
func (r *Responder) Fail(c *gin.Context, err error, fallback, back string) {
	r.FailWith(c, err, fallback, back, nil)
}

// FailWith is Fail with the reconciled screen state attached for JSON
// clients under "state".
func (r *Responder) FailWith(c *gin.Context, err error, fallback, back string, state interface{}) {
	if r.redirectIfSignedOut(c, err) {
		return
	}
	msg := apiclient.UserMessage(err, fallback)
	r.logger.WithError(err).WithField("path", c.Request.URL.Path).Warn("mutation failed")

	if middleware.WantsJSON(c) {
		if state != nil {
			c.JSON(statusFor(err), gin.H{"error": msg, "state": state})
			return
		}
		c.JSON(statusFor(err), middleware.ErrorResponse{Error: msg})
		return
	}
	r.flash(c, session.FlashError, msg)
	c.Redirect(http.StatusSeeOther, tenant.Join(middleware.GetBasename(c), back))
}

// Invalid reports a request that failed binding
func (r *Responder) Invalid(c *gin.Context, err error, back string) {
	if middleware.WantsJSON(c) {
		c.JSON(http.StatusBadRequest, middleware.ErrorResponse{Error: "Datos inválidos: " + err.Error()})
		return
	}
	r.flash(c, session.FlashError, "Datos inválidos. Revisa el formulario.")
	c.Redirect(http.StatusSeeOther, tenant.Join(middleware.GetBasename(c), back))
}

func (r *Responder) flash(c *gin.Context, kind session.FlashKind, message string) {
	if err := r.sessions.AddFlash(c.Request.Context(), middleware.GetSession(c), kind, message); err != nil {
		r.logger.WithError(err).Warn("failed to store flash")
	}
}

// redirectIfSignedOut sends browsers to login after the backend rejected
// the token. The API client has already cleared the session.
func (r *Responder) redirectIfSignedOut(c *gin.Context, err error) bool {
	if !apiclient.IsUnauthorized(err) {
		return false
	}
	if middleware.WantsJSON(c) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":    apiclient.UserMessage(err, "Tu sesión ha expirado"),
			"redirect": tenant.LoginPath(middleware.GetBasename(c)),
		})
		return true
	}
	r.flash(c, session.FlashInfo, "Tu sesión ha expirado. Inicia sesión de nuevo.")
	c.Redirect(http.StatusSeeOther, tenant.LoginRedirect(middleware.GetBasename(c), c.Request.URL.Path))
	return true
}

var errUserNotAssigned = errors.New("user is not assigned to this trainer")

func statusFor(err error) int {
	if errors.Is(err, errUserNotAssigned) || errors.Is(err, errOrganizationNotFound) || errors.Is(err, screen.ErrUserNotListed) {
		return http.StatusNotFound
	}
	if errors.Is(err, service.ErrUnsupportedImage) {
		return http.StatusBadRequest
	}

	var apiErr *apiclient.Error
	if !errors.As(err, &apiErr) {
		return http.StatusInternalServerError
	}
	switch apiErr.Kind {
	case apiclient.KindValidation:
		return apiErr.Status
	case apiclient.KindNotFound:
		return http.StatusNotFound
	case apiclient.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusBadGateway
	}
}
