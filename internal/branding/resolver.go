package branding

import (
	"context"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pageza/vitality/web/internal/types"
)

// ConfigFetcher loads the public configuration of an organization by slug
type ConfigFetcher interface {
	GetConfig(ctx context.Context, slug string) (*types.Organization, error)
}

// Resolver turns a request URL into the tenant's theme
type Resolver struct {
	fetcher     ConfigFetcher
	defaultSlug string
	logger      logrus.FieldLogger
}

// NewResolver creates a resolver that falls back to defaultSlug
func NewResolver(fetcher ConfigFetcher, defaultSlug string, logger logrus.FieldLogger) *Resolver {
	return &Resolver{fetcher: fetcher, defaultSlug: defaultSlug, logger: logger}
}

// SlugFromURL picks the tenant slug: the path segment after "org", then the
// "org" query parameter, then defaultSlug. The reserved slugs "superadmin"
// and "landing" map to defaultSlug.
func SlugFromURL(path string, query url.Values, defaultSlug string) string {
	slug := ""

	parts := strings.Split(path, "/")
	for i, part := range parts {
		if part == "org" && i+1 < len(parts) && parts[i+1] != "" {
			slug = parts[i+1]
			break
		}
	}

	if slug == "" {
		slug = query.Get("org")
	}

	switch slug {
	case "", "/", "superadmin", "landing":
		return defaultSlug
	}
	return slug
}

// Resolve fetches the organization config for the request URL. Any failure
// yields the fallback theme; Resolve never fails.
func (r *Resolver) Resolve(ctx context.Context, path string, query url.Values) Theme {
	slug := SlugFromURL(path, query, r.defaultSlug)

	org, err := r.fetcher.GetConfig(ctx, slug)
	if err != nil || org == nil {
		r.logger.WithField("slug", slug).WithError(err).Warn("organization config fetch failed, using default branding")
		return FallbackTheme()
	}
	return ThemeFor(org)
}
