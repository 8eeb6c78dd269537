package service

import (
	"context"
	"net/url"

	"github.com/pageza/vitality/web/internal/apiclient"
	"github.com/pageza/vitality/web/internal/types"
)

// OrganizationService handles tenants
type OrganizationService struct {
	api *apiclient.Client
}

// NewOrganizationService creates a new OrganizationService instance
func NewOrganizationService(api *apiclient.Client) *OrganizationService {
	return &OrganizationService{api: api}
}

// GetConfig returns the public branding of the organization with slug.
// It needs no credentials.
func (s *OrganizationService) GetConfig(ctx context.Context, slug string) (*types.Organization, error) {
	var org types.Organization
	if err := s.api.Get(ctx, apiclient.Anonymous, "/organization/config", url.Values{"slug": {slug}}, &org); err != nil {
		return nil, err
	}
	return &org, nil
}

func (s *OrganizationService) ListOrganizations(ctx context.Context, creds apiclient.Credentials) ([]types.Organization, error) {
	var orgs []types.Organization
	if err := s.api.Get(ctx, creds, "/organization", nil, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

func (s *OrganizationService) CreateOrganization(ctx context.Context, creds apiclient.Credentials, req *types.OrganizationRequest) (*types.Organization, error) {
	var org types.Organization
	if err := s.api.Post(ctx, creds, "/organization", req, &org); err != nil {
		return nil, err
	}
	return entityOrNil(&org, org.ID), nil
}

func (s *OrganizationService) UpdateOrganization(ctx context.Context, creds apiclient.Credentials, id string, req *types.OrganizationRequest) (*types.Organization, error) {
	var org types.Organization
	if err := s.api.Put(ctx, creds, "/organization/"+url.PathEscape(id), req, &org); err != nil {
		return nil, err
	}
	return entityOrNil(&org, org.ID), nil
}
