package service

import (
	"context"
	"net/url"

	"github.com/pageza/vitality/web/internal/apiclient"
	"github.com/pageza/vitality/web/internal/types"
)

// WorkoutService handles workout plans for members and their trainers
type WorkoutService struct {
	api *apiclient.Client
}

// NewWorkoutService creates a new WorkoutService instance
func NewWorkoutService(api *apiclient.Client) *WorkoutService {
	return &WorkoutService{api: api}
}

// MyPlans returns every plan written for the caller
func (s *WorkoutService) MyPlans(ctx context.Context, creds apiclient.Credentials) ([]types.WorkoutPlan, error) {
	var plans []types.WorkoutPlan
	if err := s.api.Get(ctx, creds, "/workout", nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// AssignedUsers returns the trainer's members with their measurements
func (s *WorkoutService) AssignedUsers(ctx context.Context, creds apiclient.Credentials) ([]types.AssignedUser, error) {
	var users []types.AssignedUser
	if err := s.api.Get(ctx, creds, "/trainer/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UserPlan returns the plan of an assigned member, or nil when there is none
func (s *WorkoutService) UserPlan(ctx context.Context, creds apiclient.Credentials, userID string) (*types.WorkoutPlan, error) {
	var plan *types.WorkoutPlan
	if err := s.api.Get(ctx, creds, "/trainer/workout-plan/"+url.PathEscape(userID), nil, &plan); err != nil {
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

// UpsertPlan creates or replaces a member's plan
func (s *WorkoutService) UpsertPlan(ctx context.Context, creds apiclient.Credentials, req *types.UpsertWorkoutPlanRequest) (*types.WorkoutPlan, error) {
	var plan types.WorkoutPlan
	if err := s.api.Post(ctx, creds, "/trainer/workout-plan", req, &plan); err != nil {
		return nil, err
	}
	return entityOrNil(&plan, plan.ID), nil
}
