package database

import (
	"context"
	"fmt"
	"time"
)

// Pinger is a dependency whose reachability is reported by the health endpoint
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthChecker pings every registered dependency
type HealthChecker struct {
	timeout time.Duration
	names   []string
	checks  map[string]Pinger
}

// NewHealthChecker creates a checker whose pings share the given timeout
func NewHealthChecker(timeout time.Duration) *HealthChecker {
	return &HealthChecker{timeout: timeout, checks: make(map[string]Pinger)}
}

// Register adds a named dependency
func (h *HealthChecker) Register(name string, p Pinger) {
	if _, ok := h.checks[name]; !ok {
		h.names = append(h.names, name)
	}
	h.checks[name] = p
}

// HealthCheck returns "ok" or the error text for every dependency, and an
// error when any of them failed.
func (h *HealthChecker) HealthCheck(ctx context.Context) (map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	status := make(map[string]string, len(h.names))
	var failed []string
	for _, name := range h.names {
		if err := h.checks[name].Ping(ctx); err != nil {
			status[name] = err.Error()
			failed = append(failed, name)
			continue
		}
		status[name] = "ok"
	}

	if len(failed) > 0 {
		return status, fmt.Errorf("unhealthy dependencies: %v", failed)
	}
	return status, nil
}
