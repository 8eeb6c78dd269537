package tenant

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pageza/vitality/web/internal/types"
)

func TestBasename(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/superadmin", "/"},
		{"/superadmin/organizations", "/"},
		{"/org/acme/dashboard", "/org/acme"},
		{"/org/acme", "/org/acme"},
		{"/org/acme/", "/org/acme"},
		{"/org/", "/"},
		{"/dashboard", "/"},
		{"/", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Basename(tt.path))
		})
	}
}

func TestJoinAndRelative(t *testing.T) {
	assert.Equal(t, "/login", Join("/", "/login"))
	assert.Equal(t, "/org/acme/login", Join("/org/acme", "login"))
	assert.Equal(t, "/org/acme/", Join("/org/acme", "/"))

	assert.Equal(t, "/diet", Relative("/org/acme", "/org/acme/diet"))
	assert.Equal(t, "/", Relative("/org/acme", "/org/acme"))
	assert.Equal(t, "/superadmin", Relative("/", "/superadmin"))
	assert.Equal(t, "acme", Slug("/org/acme"))
	assert.Equal(t, "", Slug("/"))
}

func TestRootRedirect(t *testing.T) {
	target, ok := RootRedirect("/", url.Values{}, "vitality")
	assert.True(t, ok)
	assert.Equal(t, "/org/vitality/?redirect_loop=1", target)

	target, ok = RootRedirect("/login", url.Values{}, "vitality")
	assert.True(t, ok)
	assert.Equal(t, "/org/vitality/?redirect_loop=1", target)

	// The marker the redirect stamps short-circuits the next one.
	_, ok = RootRedirect("/", url.Values{"redirect_loop": {"1"}}, "vitality")
	assert.False(t, ok)

	_, ok = RootRedirect("/org/vitality/", url.Values{}, "vitality")
	assert.False(t, ok)

	_, ok = RootRedirect("/dashboard", url.Values{}, "vitality")
	assert.False(t, ok)
}

func TestLoginRedirect(t *testing.T) {
	assert.Equal(t, "/org/acme/login?from=%2Forg%2Facme%2Fdiet", LoginRedirect("/org/acme", "/org/acme/diet"))
	assert.Equal(t, "/login", LoginPath("/"))
}

func TestLandingPath(t *testing.T) {
	assert.Equal(t, "/org/acme/admin/users", LandingPath("/org/acme", types.RoleAdmin))
	assert.Equal(t, "/superadmin", LandingPath("/org/acme", types.RoleSuperAdmin))
	assert.Equal(t, "/org/acme/dashboard", LandingPath("/org/acme", types.RoleTrainer))
	assert.Equal(t, "/dashboard", LandingPath("/", types.RoleMember))
}

func TestNavigation(t *testing.T) {
	member := Navigation("/org/acme", types.RoleMember)
	assert.Len(t, member, 5)
	assert.Equal(t, NavItem{Label: "Resumen", Path: "/org/acme/dashboard"}, member[0])

	trainer := Navigation("/org/acme", types.RoleTrainer)
	assert.Len(t, trainer, 6)
	assert.Equal(t, "/org/acme/trainer/users", trainer[1].Path)

	admin := Navigation("/org/acme", types.RoleAdmin)
	assert.Equal(t, "/org/acme/admin/profile", admin[3].Path)

	super := Navigation("/", types.RoleSuperAdmin)
	assert.Equal(t, "/superadmin", super[0].Path)
}
