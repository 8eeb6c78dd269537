package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/vitality/web/internal/apiclient"
	"github.com/pageza/vitality/web/internal/types"
)

// MockUserService is a mock implementation of the UserService interface
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) ListUsers(ctx context.Context, creds apiclient.Credentials) ([]types.User, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.User), args.Error(1)
}

func (m *MockUserService) ListTrainers(ctx context.Context, creds apiclient.Credentials) ([]types.User, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.User), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, creds apiclient.Credentials, id string) (*types.User, error) {
	args := m.Called(ctx, creds, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.User), args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, creds apiclient.Credentials, req *types.CreateUserRequest) (*types.User, error) {
	args := m.Called(ctx, creds, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, creds apiclient.Credentials, id string, req *types.UpdateUserRequest) (*types.User, error) {
	args := m.Called(ctx, creds, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.User), args.Error(1)
}

func (m *MockUserService) SetStatus(ctx context.Context, creds apiclient.Credentials, id string, active bool) error {
	args := m.Called(ctx, creds, id, active)
	return args.Error(0)
}

func (m *MockUserService) DeleteUser(ctx context.Context, creds apiclient.Credentials, id string) error {
	args := m.Called(ctx, creds, id)
	return args.Error(0)
}

func (m *MockUserService) AssignTrainer(ctx context.Context, creds apiclient.Credentials, userID string, trainerID *string) error {
	args := m.Called(ctx, creds, userID, trainerID)
	return args.Error(0)
}
