package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/vitality/web/internal/types"
)

// MockAuthService is a mock implementation of the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password, orgSlug string) (*types.LoginResponse, error) {
	args := m.Called(ctx, email, password, orgSlug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.LoginResponse), args.Error(1)
}
