package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/vitality/web/internal/apiclient"
	"github.com/pageza/vitality/web/internal/types"
)

// MockOrganizationService is a mock implementation of the OrganizationService interface
type MockOrganizationService struct {
	mock.Mock
}

func (m *MockOrganizationService) GetConfig(ctx context.Context, slug string) (*types.Organization, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Organization), args.Error(1)
}

func (m *MockOrganizationService) ListOrganizations(ctx context.Context, creds apiclient.Credentials) ([]types.Organization, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Organization), args.Error(1)
}

func (m *MockOrganizationService) CreateOrganization(ctx context.Context, creds apiclient.Credentials, req *types.OrganizationRequest) (*types.Organization, error) {
	args := m.Called(ctx, creds, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Organization), args.Error(1)
}

func (m *MockOrganizationService) UpdateOrganization(ctx context.Context, creds apiclient.Credentials, id string, req *types.OrganizationRequest) (*types.Organization, error) {
	args := m.Called(ctx, creds, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Organization), args.Error(1)
}

// MockLogoService is a mock implementation of the LogoService interface
type MockLogoService struct {
	mock.Mock
}

func (m *MockLogoService) UploadLogo(ctx context.Context, orgID, filename, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, orgID, filename, contentType, body)
	return args.String(0), args.Error(1)
}
