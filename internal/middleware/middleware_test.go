package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/vitality/web/internal/session"
	"github.com/pageza/vitality/web/internal/testhelpers"
	"github.com/pageza/vitality/web/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func user(role types.Role) *types.User {
	return &types.User{ID: "u1", Name: "Ana", Role: role}
}

func TestGate(t *testing.T) {
	member := []types.Role{types.RoleMember}
	admin := []types.Role{types.RoleAdmin}

	tests := []struct {
		name    string
		state   State
		user    *types.User
		allowed []types.Role
		path    string
		want    Decision
	}{
		{"loading blocks", StateLoading, nil, member, "/org/fitba/dashboard", Decision{Status: http.StatusServiceUnavailable}},
		{"anonymous goes to tenant login", StateUnauthenticated, nil, member, "/org/fitba/dashboard",
			Decision{Redirect: "/org/fitba/login?from=%2Forg%2Ffitba%2Fdashboard"}},
		{"anonymous on global basename", StateUnauthenticated, nil, member, "/dashboard",
			Decision{Redirect: "/login?from=%2Fdashboard"}},
		{"allowed role", StateAuthenticated, user(types.RoleMember), member, "/org/fitba/dashboard", Decision{Allow: true}},
		{"role compared case-insensitively", StateAuthenticated, user("usuario"), member, "/dashboard", Decision{Allow: true}},
		{"member on admin page", StateAuthenticated, user(types.RoleMember), admin, "/org/fitba/admin/users",
			Decision{Redirect: "/org/fitba/dashboard"}},
		{"superadmin on tenant page leaves the tenant", StateAuthenticated, user(types.RoleSuperAdmin), admin, "/org/fitba/admin/users",
			Decision{Redirect: "/superadmin"}},
		{"empty allowed list admits any role", StateAuthenticated, user(types.RoleTrainer), nil, "/profile", Decision{Allow: true}},
		{"authenticated without user", StateAuthenticated, nil, member, "/org/x/diet",
			Decision{Redirect: "/org/x/login?from=%2Forg%2Fx%2Fdiet"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Gate(tt.state, tt.user, tt.allowed, tt.path))
		})
	}
}

type brokenStore struct{}

func (brokenStore) Get(ctx context.Context, id string) (*session.Session, error) {
	return nil, errors.New("connection refused")
}
func (brokenStore) Save(ctx context.Context, s *session.Session, ttl time.Duration) error {
	return errors.New("connection refused")
}
func (brokenStore) Delete(ctx context.Context, id string) error { return nil }
func (brokenStore) Ping(ctx context.Context) error              { return errors.New("connection refused") }

func setupLoader(t *testing.T, store session.Store) (*SessionLoader, *session.CookieCodec) {
	t.Helper()
	codec, err := session.NewCookieCodec("test-secret")
	require.NoError(t, err)
	logger, _ := test.NewNullLogger()
	return NewSessionLoader(session.NewManager(store, time.Hour), codec, logger, false), codec
}

func gatedRouter(loader *SessionLoader, roles ...types.Role) *gin.Engine {
	r := gin.New()
	r.Use(loader.Middleware())
	handler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": GetUser(c).Name, "state": GetState(c).String()})
	}
	r.GET("/dashboard", RequireRoles(roles...), handler)
	r.GET("/org/:slug/dashboard", RequireRoles(roles...), handler)
	return r
}

func TestRequireRolesRedirectsAnonymousBrowser(t *testing.T) {
	loader, _ := setupLoader(t, session.NewMemoryStore())
	r := gatedRouter(loader, types.RoleMember)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/org/fitba/dashboard", nil)
	req.Header.Set("Accept", "text/html")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/org/fitba/login?from=%2Forg%2Ffitba%2Fdashboard", w.Header().Get("Location"))
}

func TestRequireRolesAnonymousJSON(t *testing.T) {
	loader, _ := setupLoader(t, session.NewMemoryStore())
	r := gatedRouter(loader, types.RoleMember)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Accept", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "/login?from=%2Fdashboard", body["redirect"])
}

func TestSessionLoaderAuthenticated(t *testing.T) {
	store := session.NewMemoryStore()
	loader, codec := setupLoader(t, store)
	sess, err := loader.Manager().Login(context.Background(), "backend-token", *user("entrenador"))
	require.NoError(t, err)
	cookie, err := codec.Encode(sess.ID, time.Hour)
	require.NoError(t, err)

	r := gatedRouter(loader, types.RoleTrainer)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Accept", "application/json")
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: cookie})
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"Ana","state":"authenticated"}`, w.Body.String())
}

func TestSessionLoaderForbiddenRole(t *testing.T) {
	store := session.NewMemoryStore()
	loader, codec := setupLoader(t, store)
	sess, err := loader.Manager().Login(context.Background(), "backend-token", *user(types.RoleMember))
	require.NoError(t, err)
	cookie, _ := codec.Encode(sess.ID, time.Hour)

	r := gatedRouter(loader, types.RoleAdmin)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/org/fitba/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: cookie})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/org/fitba/dashboard", w.Header().Get("Location"))
}

func TestSessionLoaderTamperedCookieIsCleared(t *testing.T) {
	loader, _ := setupLoader(t, session.NewMemoryStore())
	r := gatedRouter(loader, types.RoleMember)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "not-a-token"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.True(t, cookies[0].MaxAge < 0)
}

func TestSessionLoaderStoreDownIsLoading(t *testing.T) {
	loader, codec := setupLoader(t, brokenStore{})
	cookie, err := codec.Encode("some-id", time.Hour)
	require.NoError(t, err)

	r := gatedRouter(loader, types.RoleMember)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: cookie})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "Cargando")
}

func TestSessionLoaderInvalidatedSessionIsAnonymous(t *testing.T) {
	store := session.NewMemoryStore()
	loader, codec := setupLoader(t, store)
	ctx := context.Background()
	sess, err := loader.Manager().Login(ctx, "backend-token", *user(types.RoleMember))
	require.NoError(t, err)
	require.NoError(t, loader.Manager().Invalidate(ctx, sess))
	cookie, _ := codec.Encode(sess.ID, time.Hour)

	r := gatedRouter(loader, types.RoleMember)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: cookie})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?from=%2Fdashboard", w.Header().Get("Location"))
}

func TestEstablishSetsCookie(t *testing.T) {
	loader, codec := setupLoader(t, session.NewMemoryStore())
	sess, err := loader.Manager().Login(context.Background(), "backend-token", *user(types.RoleMember))
	require.NoError(t, err)

	r := gin.New()
	r.POST("/login", func(c *gin.Context) {
		require.NoError(t, loader.Establish(c, sess))
		c.Status(http.StatusNoContent)
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	id, err := codec.Decode(cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, id)
}

func TestRateLimiter(t *testing.T) {
	counter := NewMemoryCounter()
	rl := NewLoginRateLimiter(counter, 2)
	fixed := time.Date(2026, 3, 1, 10, 0, 30, 0, time.UTC)
	rl.now = func() time.Time { return fixed }
	counter.now = rl.now

	r := gin.New()
	r.POST("/login", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
		if i == 2 {
			assert.Equal(t, "30", w.Header().Get("Retry-After"))
		}
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, "limits are per client IP")
}

func TestMemoryCounterExpires(t *testing.T) {
	counter := NewMemoryCounter()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	counter.now = func() time.Time { return now }

	n, _ := counter.Incr(context.Background(), "k", time.Minute)
	assert.Equal(t, int64(1), n)
	n, _ = counter.Incr(context.Background(), "k", time.Minute)
	assert.Equal(t, int64(2), n)

	now = now.Add(time.Minute)
	n, _ = counter.Incr(context.Background(), "k", time.Minute)
	assert.Equal(t, int64(1), n)
}

func TestErrorHandlerRecoversPanic(t *testing.T) {
	logger, hook := test.NewNullLogger()
	r := gin.New()
	r.Use(ErrorHandler(logger))
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, w.Body.String())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestErrorHandlerFillsBareStatus(t *testing.T) {
	logger, _ := test.NewNullLogger()
	r := gin.New()
	r.Use(ErrorHandler(logger))
	r.GET("/bad", func(c *gin.Context) {
		_ = c.Error(errors.New("missing field"))
		c.Status(http.StatusBadRequest)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bad", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"missing field"}`, w.Body.String())
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173"}))
	r.GET("/dashboard", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/dashboard", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "GET")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSWithoutOrigins(t *testing.T) {
	r := gin.New()
	require.NotPanics(t, func() { r.Use(CORS(nil)) })
	r.GET("/dashboard", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoginRateLimiterDisabledAtZero(t *testing.T) {
	assert.Nil(t, NewLoginRateLimiter(NewMemoryCounter(), 0))
	assert.Nil(t, NewLoginRateLimiter(NewMemoryCounter(), -1))
	assert.NotNil(t, NewLoginRateLimiter(NewMemoryCounter(), 1))
}

func TestRateLimiterIgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	counter := NewMemoryCounter()
	rl := NewLoginRateLimiter(counter, 2)
	fixed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return fixed }
	counter.now = rl.now

	r := gin.New()
	require.NoError(t, r.SetTrustedProxies(nil))
	r.POST("/login", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	limited := 0
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i))
		r.ServeHTTP(w, req)
		if w.Code == http.StatusTooManyRequests {
			limited++
		}
	}
	assert.Equal(t, 3, limited)
}

func TestRedisCounter(t *testing.T) {
	client := testhelpers.SetupTestRedis(t)
	counter := NewRedisCounter(client)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		n, err := counter.Incr(ctx, "rate_limit:test:1", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}

	ttl, err := client.TTL(ctx, "rate_limit:test:1").Result()
	require.NoError(t, err)
	assert.True(t, ttl > 0 && ttl <= time.Minute)
}
