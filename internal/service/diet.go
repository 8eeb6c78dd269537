package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/pageza/vitality/web/internal/apiclient"
	"github.com/pageza/vitality/web/internal/types"
)

// DietService handles diet plans
type DietService struct {
	api *apiclient.Client
}

// NewDietService creates a new DietService instance
func NewDietService(api *apiclient.Client) *DietService {
	return &DietService{api: api}
}

// MyPlan returns the caller's plan, or nil when none has been generated
func (s *DietService) MyPlan(ctx context.Context, creds apiclient.Credentials) (*types.DietPlan, error) {
	return s.fetch(ctx, creds, nil)
}

// UserPlan returns the plan of another user, or nil when they have none
func (s *DietService) UserPlan(ctx context.Context, creds apiclient.Credentials, userID string) (*types.DietPlan, error) {
	return s.fetch(ctx, creds, url.Values{"userId": {userID}})
}

func (s *DietService) fetch(ctx context.Context, creds apiclient.Credentials, query url.Values) (*types.DietPlan, error) {
	var plan *types.DietPlan
	if err := s.api.Get(ctx, creds, "/diet", query, &plan); err != nil {
		if apiclient.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if plan == nil || plan.ID == "" {
		return nil, nil
	}
	return plan, nil
}

// Generate asks the backend to build a plan from the user's latest
// measurement. An empty userID targets the caller. The backend answers
// either with the plan itself or with a {message, plan} envelope.
func (s *DietService) Generate(ctx context.Context, creds apiclient.Credentials, userID string) (*types.GenerateDietResponse, error) {
	var raw json.RawMessage
	if err := s.api.Post(ctx, creds, "/diet", types.GenerateDietRequest{UserID: userID}, &raw); err != nil {
		return nil, err
	}
	return decodeGenerated(raw)
}

func decodeGenerated(raw json.RawMessage) (*types.GenerateDietResponse, error) {
	if len(raw) == 0 {
		return &types.GenerateDietResponse{}, nil
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("failed to decode diet response: %w", err)
	}

	if _, wrapped := probe["plan"]; wrapped {
		var resp types.GenerateDietResponse
		if err := json.Unmarshal(raw, &resp); err != nil {
			return nil, fmt.Errorf("failed to decode diet response: %w", err)
		}
		return &resp, nil
	}

	var plan types.DietPlan
	if err := json.Unmarshal(raw, &plan); err != nil {
		return nil, fmt.Errorf("failed to decode diet plan: %w", err)
	}
	return &types.GenerateDietResponse{Plan: entityOrNil(&plan, plan.ID)}, nil
}

// AddFood appends a portion of a catalog food to a meal
func (s *DietService) AddFood(ctx context.Context, creds apiclient.Credentials, mealID string, req *types.AddDietFoodRequest) error {
	return s.api.Post(ctx, creds, "/diet/"+url.PathEscape(mealID)+"/food", req, nil)
}

// RemoveFood deletes a portion from its meal
func (s *DietService) RemoveFood(ctx context.Context, creds apiclient.Credentials, dietFoodID string) error {
	return s.api.Delete(ctx, creds, "/diet/food/"+url.PathEscape(dietFoodID))
}
