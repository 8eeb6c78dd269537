package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pageza/vitality/web/internal/types"
)

// Manager implements login, logout and flash handling on top of a Store
type Manager struct {
	store      Store
	defaultTTL time.Duration
	now        func() time.Time
}

// NewManager creates a session manager. defaultTTL applies when the backend
// token carries no expiry.
func NewManager(store Store, defaultTTL time.Duration) *Manager {
	return &Manager{store: store, defaultTTL: defaultTTL, now: time.Now}
}

// Store returns the underlying session store
func (m *Manager) Store() Store {
	return m.store
}

// Login persists the token and user under a fresh session id. The role is
// upper-cased so later comparisons are case-insensitive.
func (m *Manager) Login(ctx context.Context, token string, user types.User) (*Session, error) {
	if token == "" {
		return nil, errors.New("login requires a token")
	}
	user.Role = types.NormalizeRole(user.Role)

	sess := &Session{
		ID:        uuid.New().String(),
		Token:     token,
		User:      &user,
		CreatedAt: m.now(),
	}
	if err := m.store.Save(ctx, sess, m.TokenTTL(token)); err != nil {
		return nil, err
	}
	return sess, nil
}

// Logout removes the session entirely
func (m *Manager) Logout(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return m.store.Delete(ctx, id)
}

// Load fetches a session and normalizes its role
func (m *Manager) Load(ctx context.Context, id string) (*Session, error) {
	sess, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.User != nil {
		sess.User.Role = types.NormalizeRole(sess.User.Role)
	}
	return sess, nil
}

// Invalidate clears the token and user of a session while keeping pending
// flashes, so the next gated page redirects to login.
func (m *Manager) Invalidate(ctx context.Context, sess *Session) error {
	if sess == nil {
		return nil
	}
	sess.clearAuth()
	if sess.ID == "" {
		return nil
	}
	err := m.store.Save(ctx, sess, 0)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

// UpdateUser refreshes the stored user record after a profile edit. The id
// and role issued at sign-in are kept.
func (m *Manager) UpdateUser(ctx context.Context, sess *Session, user types.User) error {
	if sess.User != nil {
		user.ID = sess.User.ID
		user.Role = sess.User.Role
	}
	user.Role = types.NormalizeRole(user.Role)
	sess.User = &user
	return m.store.Save(ctx, sess, 0)
}

// AddFlash queues a notification for the next rendered page
func (m *Manager) AddFlash(ctx context.Context, sess *Session, kind FlashKind, message string) error {
	if sess == nil || sess.ID == "" {
		return nil
	}
	sess.Flashes = append(sess.Flashes, Flash{Kind: kind, Message: message})
	if err := m.store.Save(ctx, sess, 0); err != nil {
		return fmt.Errorf("failed to store flash: %w", err)
	}
	return nil
}

// PopFlashes returns and clears the queued notifications
func (m *Manager) PopFlashes(ctx context.Context, sess *Session) ([]Flash, error) {
	if sess == nil || len(sess.Flashes) == 0 {
		return nil, nil
	}
	flashes := sess.Flashes
	sess.Flashes = nil
	if err := m.store.Save(ctx, sess, 0); err != nil {
		return flashes, fmt.Errorf("failed to clear flashes: %w", err)
	}
	return flashes, nil
}

// TokenTTL returns how long a session for token should live: until the
// token's exp claim when it is a JWT with a future expiry, else the default.
func (m *Manager) TokenTTL(token string) time.Duration {
	claims := &types.BackendClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return m.defaultTTL
	}
	if claims.ExpiresAt == nil {
		return m.defaultTTL
	}
	ttl := claims.ExpiresAt.Sub(m.now())
	if ttl <= 0 {
		return m.defaultTTL
	}
	return ttl
}

// Credentials binds a session to backend calls: its token authenticates
// requests and a rejected token clears the session.
func (m *Manager) Credentials(sess *Session) *Bound {
	return &Bound{manager: m, session: sess}
}

// Bound is a session acting as API credentials
type Bound struct {
	manager *Manager
	session *Session
}

func (b *Bound) Token() string {
	if b.session == nil {
		return ""
	}
	return b.session.Token
}

func (b *Bound) Invalidate(ctx context.Context) error {
	return b.manager.Invalidate(ctx, b.session)
}
