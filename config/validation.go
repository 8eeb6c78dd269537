package config

import (
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every violation found in one pass
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, v := range e {
		msgs = append(msgs, v.Error())
	}
	return strings.Join(msgs, "\n")
}

// minSecretLength applies outside development, where the default secret is not allowed.
const minSecretLength = 32

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()
	var errs ValidationErrors

	if cfg.ServerPort == "" {
		errs = append(errs, ValidationError{"SERVER_PORT", "is required"})
	}

	if cfg.APIBaseURL == "" {
		errs = append(errs, ValidationError{"API_BASE_URL", "is required"})
	} else if u, err := url.Parse(cfg.APIBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, ValidationError{"API_BASE_URL", "must be an absolute URL"})
	}

	if !slugPattern.MatchString(cfg.DefaultTenant) {
		errs = append(errs, ValidationError{"DEFAULT_TENANT", "must be a lowercase organization slug"})
	}

	switch cfg.SessionBackend {
	case SessionBackendMemory:
		if env == Production {
			errs = append(errs, ValidationError{"SESSION_BACKEND", "memory sessions are not allowed in production"})
		}
	case SessionBackendRedis:
		if cfg.RedisURL == "" && (cfg.RedisHost == "" || cfg.RedisPort == "") {
			errs = append(errs, ValidationError{"REDIS_URL", "REDIS_URL or REDIS_HOST/REDIS_PORT is required for redis sessions"})
		}
	default:
		errs = append(errs, ValidationError{"SESSION_BACKEND", fmt.Sprintf("unknown backend %q", cfg.SessionBackend)})
	}

	if cfg.SessionSecret == "" {
		errs = append(errs, ValidationError{"SESSION_SECRET", "is required"})
	} else if (env == Production || env == CI) && len(cfg.SessionSecret) < minSecretLength {
		errs = append(errs, ValidationError{"SESSION_SECRET", fmt.Sprintf("must be at least %d characters", minSecretLength)})
	}

	if cfg.SessionTTL <= 0 {
		errs = append(errs, ValidationError{"SESSION_TTL", "must be positive"})
	}
	if cfg.LoginRateLimit < 0 {
		errs = append(errs, ValidationError{"LOGIN_RATE_LIMIT", "must not be negative"})
	}

	for _, proxy := range cfg.TrustedProxies {
		if _, _, err := net.ParseCIDR(proxy); err != nil && net.ParseIP(proxy) == nil {
			errs = append(errs, ValidationError{"TRUSTED_PROXIES", fmt.Sprintf("%q is not an IP or CIDR", proxy)})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
