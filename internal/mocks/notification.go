package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/vitality/web/internal/apiclient"
	"github.com/pageza/vitality/web/internal/types"
)

// MockNotificationService is a mock implementation of the NotificationService interface
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) List(ctx context.Context, creds apiclient.Credentials) ([]types.Notification, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Notification), args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, creds apiclient.Credentials, id string) (*types.Notification, error) {
	args := m.Called(ctx, creds, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Notification), args.Error(1)
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, creds apiclient.Credentials) error {
	args := m.Called(ctx, creds)
	return args.Error(0)
}
