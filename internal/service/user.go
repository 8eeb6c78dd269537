package service

import (
	"context"
	"net/url"

	"github.com/pageza/vitality/web/internal/apiclient"
	"github.com/pageza/vitality/web/internal/types"
)

// UserService handles admin user management
type UserService struct {
	api *apiclient.Client
}

// NewUserService creates a new UserService instance
func NewUserService(api *apiclient.Client) *UserService {
	return &UserService{api: api}
}

func userPath(id string) string {
	return "/admin/users/" + url.PathEscape(id)
}

// ListUsers returns every user of the admin's organization
func (s *UserService) ListUsers(ctx context.Context, creds apiclient.Credentials) ([]types.User, error) {
	var users []types.User
	if err := s.api.Get(ctx, creds, "/admin/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListTrainers returns the trainers available for assignment
func (s *UserService) ListTrainers(ctx context.Context, creds apiclient.Credentials) ([]types.User, error) {
	var trainers []types.User
	if err := s.api.Get(ctx, creds, "/admin/trainers", nil, &trainers); err != nil {
		return nil, err
	}
	return trainers, nil
}

// GetUser returns one user
func (s *UserService) GetUser(ctx context.Context, creds apiclient.Credentials, id string) (*types.User, error) {
	var user types.User
	if err := s.api.Get(ctx, creds, userPath(id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser creates a user in the admin's organization
func (s *UserService) CreateUser(ctx context.Context, creds apiclient.Credentials, req *types.CreateUserRequest) (*types.User, error) {
	req.Role = types.NormalizeRole(req.Role)
	var user types.User
	if err := s.api.Post(ctx, creds, "/admin/users", req, &user); err != nil {
		return nil, err
	}
	return entityOrNil(&user, user.ID), nil
}

// UpdateUser replaces editable fields of a user
func (s *UserService) UpdateUser(ctx context.Context, creds apiclient.Credentials, id string, req *types.UpdateUserRequest) (*types.User, error) {
	if req.Role != nil {
		role := types.NormalizeRole(*req.Role)
		req.Role = &role
	}
	var user types.User
	if err := s.api.Put(ctx, creds, userPath(id), req, &user); err != nil {
		return nil, err
	}
	return entityOrNil(&user, user.ID), nil
}

// SetStatus activates or deactivates a user
func (s *UserService) SetStatus(ctx context.Context, creds apiclient.Credentials, id string, active bool) error {
	return s.api.Patch(ctx, creds, userPath(id)+"/status", types.UserStatusRequest{IsActive: active}, nil)
}

// DeleteUser deactivates the user. The backend keeps the record.
func (s *UserService) DeleteUser(ctx context.Context, creds apiclient.Credentials, id string) error {
	return s.SetStatus(ctx, creds, id, false)
}

// AssignTrainer sets or, with a nil trainerID, clears a user's trainer
func (s *UserService) AssignTrainer(ctx context.Context, creds apiclient.Credentials, userID string, trainerID *string) error {
	return s.api.Post(ctx, creds, "/admin/assign-trainer", types.AssignTrainerRequest{UserID: userID, TrainerID: trainerID}, nil)
}

// entityOrNil drops an empty decode so callers refetch instead of applying it
func entityOrNil[T any](entity *T, id string) *T {
	if id == "" {
		return nil
	}
	return entity
}
