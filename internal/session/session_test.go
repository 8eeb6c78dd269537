package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/vitality/web/internal/testhelpers"
	"github.com/pageza/vitality/web/internal/types"
)

func TestLoginNormalizesRole(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), time.Hour)

	sess, err := m.Login(ctx, "opaque-token", types.User{ID: "u1", Role: "administrador"})
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.True(t, sess.IsAuthenticated())
	assert.True(t, sess.IsAdmin())

	loaded, err := m.Load(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, types.RoleAdmin, loaded.User.Role)
	assert.Equal(t, "opaque-token", loaded.Token)
}

func TestUpdateUserKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), time.Hour)

	sess, err := m.Login(ctx, "tok", types.User{ID: "u1", Name: "Ana", Role: types.RoleTrainer})
	require.NoError(t, err)
	require.NoError(t, m.UpdateUser(ctx, sess, types.User{Name: "Ana María", Email: "ana@example.com"}))

	loaded, err := m.Load(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "u1", loaded.User.ID)
	assert.Equal(t, types.RoleTrainer, loaded.User.Role)
	assert.Equal(t, "Ana María", loaded.User.Name)
	assert.Equal(t, "ana@example.com", loaded.User.Email)
}

func TestMemoryStoreSaveAfterExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	sess := &Session{ID: "s1"}
	require.NoError(t, store.Save(ctx, sess, time.Minute))
	now = now.Add(2 * time.Minute)

	assert.ErrorIs(t, store.Save(ctx, sess, 0), ErrNotFound)
	_, err := store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoginRequiresToken(t *testing.T) {
	m := NewManager(NewMemoryStore(), time.Hour)
	_, err := m.Login(context.Background(), "", types.User{ID: "u1"})
	assert.Error(t, err)
}

func TestLogoutClearsSession(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), time.Hour)

	sess, err := m.Login(ctx, "tok", types.User{ID: "u1", Role: types.RoleMember})
	require.NoError(t, err)
	require.NoError(t, m.Logout(ctx, sess.ID))

	_, err = m.Load(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInvalidateKeepsFlashes(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), time.Hour)

	sess, err := m.Login(ctx, "tok", types.User{ID: "u1", Role: types.RoleTrainer})
	require.NoError(t, err)
	require.NoError(t, m.AddFlash(ctx, sess, FlashError, "Sesión expirada"))

	creds := m.Credentials(sess)
	assert.Equal(t, "tok", creds.Token())
	require.NoError(t, creds.Invalidate(ctx))

	loaded, err := m.Load(ctx, sess.ID)
	require.NoError(t, err)
	assert.False(t, loaded.IsAuthenticated())
	assert.Nil(t, loaded.User)
	assert.Len(t, loaded.Flashes, 1)
}

func TestInvalidateUnknownSession(t *testing.T) {
	m := NewManager(NewMemoryStore(), time.Hour)
	sess := &Session{ID: "missing", Token: "tok"}

	assert.NoError(t, m.Invalidate(context.Background(), sess))
	assert.False(t, sess.IsAuthenticated())
}

func TestPopFlashes(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), time.Hour)

	sess, err := m.Login(ctx, "tok", types.User{ID: "u1", Role: types.RoleMember})
	require.NoError(t, err)
	require.NoError(t, m.AddFlash(ctx, sess, FlashSuccess, "Guardado"))
	require.NoError(t, m.AddFlash(ctx, sess, FlashError, "Falló"))

	flashes, err := m.PopFlashes(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, []Flash{{FlashSuccess, "Guardado"}, {FlashError, "Falló"}}, flashes)

	loaded, err := m.Load(ctx, sess.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Flashes)
}

func TestTokenTTL(t *testing.T) {
	m := NewManager(NewMemoryStore(), 24*time.Hour)

	assert.Equal(t, 24*time.Hour, m.TokenTTL("not-a-jwt"))

	token := testhelpers.BackendToken(t, "u1", types.RoleMember, 2*time.Hour)
	ttl := m.TokenTTL(token)
	assert.InDelta(t, (2 * time.Hour).Seconds(), ttl.Seconds(), 5)

	expired := testhelpers.BackendToken(t, "u1", types.RoleMember, -time.Hour)
	assert.Equal(t, 24*time.Hour, m.TokenTTL(expired))
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, &Session{ID: "s1", Token: "tok"}, time.Minute))

	// A zero ttl keeps the original expiry.
	now = now.Add(30 * time.Second)
	require.NoError(t, store.Save(ctx, &Session{ID: "s1", Token: "tok2"}, 0))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "tok2", got.Token)

	now = now.Add(31 * time.Second)
	_, err = store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCookieCodec(t *testing.T) {
	codec, err := NewCookieCodec("a-session-secret-that-is-long-enough")
	require.NoError(t, err)

	value, err := codec.Encode("sid-123", time.Hour)
	require.NoError(t, err)

	id, err := codec.Decode(value)
	require.NoError(t, err)
	assert.Equal(t, "sid-123", id)

	other, err := NewCookieCodec("another-secret-entirely-different")
	require.NoError(t, err)
	_, err = other.Decode(value)
	assert.Error(t, err)

	_, err = codec.Decode(value + "x")
	assert.Error(t, err)
}

func TestCookieCodecExpiry(t *testing.T) {
	codec, err := NewCookieCodec("secret")
	require.NoError(t, err)

	now := time.Now()
	codec.now = func() time.Time { return now }
	value, err := codec.Encode("sid", time.Minute)
	require.NoError(t, err)

	codec.now = func() time.Time { return now.Add(2 * time.Minute) }
	_, err = codec.Decode(value)
	assert.Error(t, err)
}

func TestDeriveKeyIsPurposeBound(t *testing.T) {
	a, err := DeriveKey("secret", "cookie")
	require.NoError(t, err)
	b, err := DeriveKey("secret", "csrf")
	require.NoError(t, err)

	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}

func TestRedisStore(t *testing.T) {
	client := testhelpers.SetupTestRedis(t)
	ctx := context.Background()
	store := NewRedisStore(client)

	require.NoError(t, store.Ping(ctx))

	m := NewManager(store, time.Hour)
	sess, err := m.Login(ctx, "tok", types.User{ID: "u1", Role: "entrenador"})
	require.NoError(t, err)

	ttl, err := client.TTL(ctx, "session:"+sess.ID).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 59*time.Minute)

	require.NoError(t, m.AddFlash(ctx, sess, FlashInfo, "hola"))
	ttl, err = client.TTL(ctx, "session:"+sess.ID).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	loaded, err := m.Load(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, types.RoleTrainer, loaded.User.Role)

	require.NoError(t, m.Logout(ctx, sess.ID))
	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Keeping the TTL never recreates a session that is gone
	assert.ErrorIs(t, store.Save(ctx, sess, 0), ErrNotFound)
	exists, err := client.Exists(ctx, "session:"+sess.ID).Result()
	require.NoError(t, err)
	assert.Zero(t, exists)
}
