package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/vitality/web/internal/apiclient"
	"github.com/pageza/vitality/web/internal/types"
)

// MockMeasurementService is a mock implementation of the MeasurementService interface
type MockMeasurementService struct {
	mock.Mock
}

func (m *MockMeasurementService) MyHistory(ctx context.Context, creds apiclient.Credentials) ([]types.Measurement, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Measurement), args.Error(1)
}

func (m *MockMeasurementService) UserHistory(ctx context.Context, creds apiclient.Credentials, userID string) ([]types.Measurement, error) {
	args := m.Called(ctx, creds, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Measurement), args.Error(1)
}

func (m *MockMeasurementService) MonthlyProgress(ctx context.Context, creds apiclient.Credentials) ([]types.MonthlyStats, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.MonthlyStats), args.Error(1)
}

func (m *MockMeasurementService) Create(ctx context.Context, creds apiclient.Credentials, req *types.MeasurementRequest) (*types.Measurement, error) {
	args := m.Called(ctx, creds, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Measurement), args.Error(1)
}
