package service

import (
	"context"
	"net/url"

	"github.com/pageza/vitality/web/internal/apiclient"
	"github.com/pageza/vitality/web/internal/types"
)

// FoodService handles the food catalog
type FoodService struct {
	api *apiclient.Client
}

// NewFoodService creates a new FoodService instance
func NewFoodService(api *apiclient.Client) *FoodService {
	return &FoodService{api: api}
}

func (s *FoodService) ListFoods(ctx context.Context, creds apiclient.Credentials) ([]types.Food, error) {
	var foods []types.Food
	if err := s.api.Get(ctx, creds, "/foods", nil, &foods); err != nil {
		return nil, err
	}
	return foods, nil
}

func (s *FoodService) CreateFood(ctx context.Context, creds apiclient.Credentials, req *types.FoodRequest) (*types.Food, error) {
	var food types.Food
	if err := s.api.Post(ctx, creds, "/foods", req, &food); err != nil {
		return nil, err
	}
	return entityOrNil(&food, food.ID), nil
}

func (s *FoodService) UpdateFood(ctx context.Context, creds apiclient.Credentials, id string, req *types.FoodRequest) (*types.Food, error) {
	var food types.Food
	if err := s.api.Put(ctx, creds, "/foods/"+url.PathEscape(id), req, &food); err != nil {
		return nil, err
	}
	return entityOrNil(&food, food.ID), nil
}

func (s *FoodService) DeleteFood(ctx context.Context, creds apiclient.Credentials, id string) error {
	return s.api.Delete(ctx, creds, "/foods/"+url.PathEscape(id))
}

// ExerciseService handles the exercise catalog
type ExerciseService struct {
	api *apiclient.Client
}

// NewExerciseService creates a new ExerciseService instance
func NewExerciseService(api *apiclient.Client) *ExerciseService {
	return &ExerciseService{api: api}
}

func (s *ExerciseService) ListExercises(ctx context.Context, creds apiclient.Credentials) ([]types.Exercise, error) {
	var exercises []types.Exercise
	if err := s.api.Get(ctx, creds, "/exercises", nil, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

func (s *ExerciseService) CreateExercise(ctx context.Context, creds apiclient.Credentials, req *types.ExerciseRequest) (*types.Exercise, error) {
	var exercise types.Exercise
	if err := s.api.Post(ctx, creds, "/exercises", req, &exercise); err != nil {
		return nil, err
	}
	return entityOrNil(&exercise, exercise.ID), nil
}

func (s *ExerciseService) UpdateExercise(ctx context.Context, creds apiclient.Credentials, id string, req *types.ExerciseRequest) (*types.Exercise, error) {
	var exercise types.Exercise
	if err := s.api.Put(ctx, creds, "/exercises/"+url.PathEscape(id), req, &exercise); err != nil {
		return nil, err
	}
	return entityOrNil(&exercise, exercise.ID), nil
}

func (s *ExerciseService) DeleteExercise(ctx context.Context, creds apiclient.Credentials, id string) error {
	return s.api.Delete(ctx, creds, "/exercises/"+url.PathEscape(id))
}
