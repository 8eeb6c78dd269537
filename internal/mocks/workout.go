package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/vitality/web/internal/apiclient"
	"github.com/pageza/vitality/web/internal/types"
)

// MockWorkoutService is a mock implementation of the WorkoutService interface
type MockWorkoutService struct {
	mock.Mock
}

func (m *MockWorkoutService) MyPlans(ctx context.Context, creds apiclient.Credentials) ([]types.WorkoutPlan, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.WorkoutPlan), args.Error(1)
}

func (m *MockWorkoutService) AssignedUsers(ctx context.Context, creds apiclient.Credentials) ([]types.AssignedUser, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.AssignedUser), args.Error(1)
}

func (m *MockWorkoutService) UserPlan(ctx context.Context, creds apiclient.Credentials, userID string) (*types.WorkoutPlan, error) {
	args := m.Called(ctx, creds, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.WorkoutPlan), args.Error(1)
}

func (m *MockWorkoutService) UpsertPlan(ctx context.Context, creds apiclient.Credentials, req *types.UpsertWorkoutPlanRequest) (*types.WorkoutPlan, error) {
	args := m.Called(ctx, creds, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.WorkoutPlan), args.Error(1)
}
