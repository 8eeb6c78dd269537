package session

import (
	"errors"
	"time"

	"github.com/pageza/vitality/web/internal/types"
)

// ErrNotFound is returned when a session id has no stored session
var ErrNotFound = errors.New("session not found")

// FlashKind is the style of a transient notification
type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
	FlashInfo    FlashKind = "info"
)

// Flash is a one-shot notification shown on the next rendered page
type Flash struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
}

// Session is the persisted sign-in state of one browser
type Session struct {
	ID        string      `json:"id"`
	Token     string      `json:"token,omitempty"`
	User      *types.User `json:"user,omitempty"`
	Flashes   []Flash     `json:"flashes,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

// IsAuthenticated reports whether the session holds a backend token
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.Token != ""
}

// IsAdmin reports whether the signed-in user is an organization admin
func (s *Session) IsAdmin() bool {
	return s.IsAuthenticated() && s.User != nil && s.User.Role == types.RoleAdmin
}

// Role returns the signed-in user's role, or "" for anonymous sessions
func (s *Session) Role() types.Role {
	if s == nil || s.User == nil {
		return ""
	}
	return s.User.Role
}

func (s *Session) clearAuth() {
	s.Token = ""
	s.User = nil
}
