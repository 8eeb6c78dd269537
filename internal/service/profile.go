package service

import (
	"context"

	"github.com/pageza/vitality/web/internal/apiclient"
	"github.com/pageza/vitality/web/internal/types"
)

// ProfileService handles the signed-in user's own record
type ProfileService struct {
	api *apiclient.Client
}

// NewProfileService creates a new ProfileService instance
func NewProfileService(api *apiclient.Client) *ProfileService {
	return &ProfileService{api: api}
}

// GetProfile returns the caller's user record
func (s *ProfileService) GetProfile(ctx context.Context, creds apiclient.Credentials) (*types.User, error) {
	var user types.User
	if err := s.api.Get(ctx, creds, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile patches the caller's user and profile fields
func (s *ProfileService) UpdateProfile(ctx context.Context, creds apiclient.Credentials, req *types.UpdateUserRequest) (*types.User, error) {
	var user types.User
	if err := s.api.Patch(ctx, creds, "/auth/me", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
