package service

import (
	"context"
	"errors"
	"strings"

	"github.com/pageza/vitality/web/internal/apiclient"
	"github.com/pageza/vitality/web/internal/types"
)

// ErrEmptyToken is returned when the backend accepts a login without a token
var ErrEmptyToken = errors.New("backend returned no token")

// AuthService handles sign-in
type AuthService struct {
	api *apiclient.Client
}

// NewAuthService creates a new AuthService instance
func NewAuthService(api *apiclient.Client) *AuthService {
	return &AuthService{api: api}
}

// Login exchanges credentials for a backend token. orgSlug scopes the login
// to a tenant; an empty slug is sent as null.
func (s *AuthService) Login(ctx context.Context, email, password, orgSlug string) (*types.LoginResponse, error) {
	req := types.LoginRequest{
		Email:    strings.TrimSpace(email),
		Password: password,
	}
	if orgSlug != "" {
		req.OrgSlug = &orgSlug
	}

	var resp types.LoginResponse
	if err := s.api.Post(ctx, apiclient.Anonymous, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, ErrEmptyToken
	}
	resp.User.Role = types.NormalizeRole(resp.User.Role)
	return &resp, nil
}
