// Package tenant computes the path prefix ("basename") that scopes every
// page to an organization, and the role-dependent paths inside it.
package tenant

import (
	"net/url"
	"regexp"
	"strings"
)

// LoopGuardParam marks a request that was produced by the root redirect
const LoopGuardParam = "redirect_loop"

// GlobalBasename is the tenant-less area (landing page, superadmin)
const GlobalBasename = "/"

// SuperAdminPath is the global superadmin area
const SuperAdminPath = "/superadmin"

var orgPattern = regexp.MustCompile(`^/org/([^/]+)`)

// Basename returns "/" for the superadmin area, "/org/<slug>" for tenant
// paths, and "/" for everything else.
func Basename(path string) string {
	if strings.HasPrefix(path, SuperAdminPath) {
		return GlobalBasename
	}
	if m := orgPattern.FindStringSubmatch(path); m != nil {
		return "/org/" + m[1]
	}
	return GlobalBasename
}

// Slug returns the organization slug of a tenant basename, or ""
func Slug(basename string) string {
	if m := orgPattern.FindStringSubmatch(basename); m != nil {
		return m[1]
	}
	return ""
}

// Join prefixes path with basename
func Join(basename, path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if basename == "" || basename == GlobalBasename {
		return path
	}
	return strings.TrimSuffix(basename, "/") + path
}

// Relative strips basename from path, returning the in-tenant route
func Relative(basename, path string) string {
	if basename == GlobalBasename {
		return path
	}
	rel := strings.TrimPrefix(path, basename)
	if rel == "" {
		return "/"
	}
	return rel
}

// RootRedirect decides whether a tenant-less "/" or "/login" must move into
// the default tenant. The target carries the loop guard marker, and a
// request that already carries it is never redirected again.
func RootRedirect(path string, query url.Values, defaultSlug string) (string, bool) {
	if path != "/" && path != "/login" {
		return "", false
	}
	if query.Has(LoopGuardParam) {
		return "", false
	}
	return "/org/" + defaultSlug + "/?" + LoopGuardParam + "=1", true
}

// LoginPath returns the login page of a basename
func LoginPath(basename string) string {
	return Join(basename, "/login")
}

// LoginRedirect returns the login page recording the attempted location
func LoginRedirect(basename, from string) string {
	return LoginPath(basename) + "?" + url.Values{"from": {from}}.Encode()
}
