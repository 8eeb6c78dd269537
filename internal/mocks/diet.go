package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/vitality/web/internal/apiclient"
	"github.com/pageza/vitality/web/internal/types"
)

// MockDietService is a mock implementation of the DietService interface
type MockDietService struct {
	mock.Mock
}

func (m *MockDietService) MyPlan(ctx context.Context, creds apiclient.Credentials) (*types.DietPlan, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.DietPlan), args.Error(1)
}

func (m *MockDietService) UserPlan(ctx context.Context, creds apiclient.Credentials, userID string) (*types.DietPlan, error) {
	args := m.Called(ctx, creds, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.DietPlan), args.Error(1)
}

func (m *MockDietService) Generate(ctx context.Context, creds apiclient.Credentials, userID string) (*types.GenerateDietResponse, error) {
	args := m.Called(ctx, creds, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.GenerateDietResponse), args.Error(1)
}

func (m *MockDietService) AddFood(ctx context.Context, creds apiclient.Credentials, mealID string, req *types.AddDietFoodRequest) error {
	args := m.Called(ctx, creds, mealID, req)
	return args.Error(0)
}

func (m *MockDietService) RemoveFood(ctx context.Context, creds apiclient.Credentials, dietFoodID string) error {
	args := m.Called(ctx, creds, dietFoodID)
	return args.Error(0)
}
