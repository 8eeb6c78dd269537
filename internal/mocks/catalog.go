package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/vitality/web/internal/apiclient"
	"github.com/pageza/vitality/web/internal/types"
)

// MockFoodService is a mock implementation of the FoodService interface
type MockFoodService struct {
	mock.Mock
}

func (m *MockFoodService) ListFoods(ctx context.Context, creds apiclient.Credentials) ([]types.Food, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Food), args.Error(1)
}

func (m *MockFoodService) CreateFood(ctx context.Context, creds apiclient.Credentials, req *types.FoodRequest) (*types.Food, error) {
	args := m.Called(ctx, creds, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Food), args.Error(1)
}

func (m *MockFoodService) UpdateFood(ctx context.Context, creds apiclient.Credentials, id string, req *types.FoodRequest) (*types.Food, error) {
	args := m.Called(ctx, creds, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Food), args.Error(1)
}

func (m *MockFoodService) DeleteFood(ctx context.Context, creds apiclient.Credentials, id string) error {
	args := m.Called(ctx, creds, id)
	return args.Error(0)
}

// MockExerciseService is a mock implementation of the ExerciseService interface
type MockExerciseService struct {
	mock.Mock
}

func (m *MockExerciseService) ListExercises(ctx context.Context, creds apiclient.Credentials) ([]types.Exercise, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Exercise), args.Error(1)
}

func (m *MockExerciseService) CreateExercise(ctx context.Context, creds apiclient.Credentials, req *types.ExerciseRequest) (*types.Exercise, error) {
	args := m.Called(ctx, creds, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Exercise), args.Error(1)
}

func (m *MockExerciseService) UpdateExercise(ctx context.Context, creds apiclient.Credentials, id string, req *types.ExerciseRequest) (*types.Exercise, error) {
	args := m.Called(ctx, creds, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Exercise), args.Error(1)
}

func (m *MockExerciseService) DeleteExercise(ctx context.Context, creds apiclient.Credentials, id string) error {
	args := m.Called(ctx, creds, id)
	return args.Error(0)
}
