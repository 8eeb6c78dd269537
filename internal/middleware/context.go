package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/vitality/web/internal/branding"
	"github.com/pageza/vitality/web/internal/session"
	"github.com/pageza/vitality/web/internal/tenant"
	"github.com/pageza/vitality/web/internal/types"
)

const (
	sessionKey  = "session"
	stateKey    = "session_state"
	basenameKey = "basename"
	themeKey    = "theme"
)

// GetSession returns the request's session, or nil for anonymous requests
func GetSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(sessionKey); ok {
		if sess, ok := v.(*session.Session); ok {
			return sess
		}
	}
	return nil
}

// GetUser returns the signed-in user, or nil
func GetUser(c *gin.Context) *types.User {
	sess := GetSession(c)
	if !sess.IsAuthenticated() {
		return nil
	}
	return sess.User
}

// GetState returns the session state resolved for the request
func GetState(c *gin.Context) State {
	if v, ok := c.Get(stateKey); ok {
		if state, ok := v.(State); ok {
			return state
		}
	}
	return StateUnauthenticated
}

// GetBasename returns the tenant basename of the request
func GetBasename(c *gin.Context) string {
	if v := c.GetString(basenameKey); v != "" {
		return v
	}
	return tenant.Basename(c.Request.URL.Path)
}

// GetTheme returns the resolved branding, or the fallback theme
func GetTheme(c *gin.Context) branding.Theme {
	if v, ok := c.Get(themeKey); ok {
		if theme, ok := v.(branding.Theme); ok {
			return theme
		}
	}
	return branding.FallbackTheme()
}

// WantsJSON reports whether the client negotiated JSON over HTML
func WantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}
