package service

import (
	"context"
	"io"

	"github.com/pageza/vitality/web/internal/apiclient"
	"github.com/pageza/vitality/web/internal/types"
)

// IAuthService signs users in against the backend
type IAuthService interface {
	Login(ctx context.Context, email, password, orgSlug string) (*types.LoginResponse, error)
}

// IProfileService reads and edits the signed-in user's own record
type IProfileService interface {
	GetProfile(ctx context.Context, creds apiclient.Credentials) (*types.User, error)
	UpdateProfile(ctx context.Context, creds apiclient.Credentials, req *types.UpdateUserRequest) (*types.User, error)
}

// IUserService is the admin user management API
type IUserService interface {
	ListUsers(ctx context.Context, creds apiclient.Credentials) ([]types.User, error)
	ListTrainers(ctx context.Context, creds apiclient.Credentials) ([]types.User, error)
	GetUser(ctx context.Context, creds apiclient.Credentials, id string) (*types.User, error)
	CreateUser(ctx context.Context, creds apiclient.Credentials, req *types.CreateUserRequest) (*types.User, error)
	UpdateUser(ctx context.Context, creds apiclient.Credentials, id string, req *types.UpdateUserRequest) (*types.User, error)
	SetStatus(ctx context.Context, creds apiclient.Credentials, id string, active bool) error
	DeleteUser(ctx context.Context, creds apiclient.Credentials, id string) error
	AssignTrainer(ctx context.Context, creds apiclient.Credentials, userID string, trainerID *string) error
}

// IFoodService is the food catalog API
type IFoodService interface {
	ListFoods(ctx context.Context, creds apiclient.Credentials) ([]types.Food, error)
	CreateFood(ctx context.Context, creds apiclient.Credentials, req *types.FoodRequest) (*types.Food, error)
	UpdateFood(ctx context.Context, creds apiclient.Credentials, id string, req *types.FoodRequest) (*types.Food, error)
	DeleteFood(ctx context.Context, creds apiclient.Credentials, id string) error
}

// IExerciseService is the exercise catalog API
type IExerciseService interface {
	ListExercises(ctx context.Context, creds apiclient.Credentials) ([]types.Exercise, error)
	CreateExercise(ctx context.Context, creds apiclient.Credentials, req *types.ExerciseRequest) (*types.Exercise, error)
	UpdateExercise(ctx context.Context, creds apiclient.Credentials, id string, req *types.ExerciseRequest) (*types.Exercise, error)
	DeleteExercise(ctx context.Context, creds apiclient.Credentials, id string) error
}

// IMeasurementService is the body measurement API
type IMeasurementService interface {
	MyHistory(ctx context.Context, creds apiclient.Credentials) ([]types.Measurement, error)
	UserHistory(ctx context.Context, creds apiclient.Credentials, userID string) ([]types.Measurement, error)
	MonthlyProgress(ctx context.Context, creds apiclient.Credentials) ([]types.MonthlyStats, error)
	Create(ctx context.Context, creds apiclient.Credentials, req *types.MeasurementRequest) (*types.Measurement, error)
}

// IDietService is the diet plan API. A nil plan with a nil error means the
// user has no plan yet.
type IDietService interface {
	MyPlan(ctx context.Context, creds apiclient.Credentials) (*types.DietPlan, error)
	UserPlan(ctx context.Context, creds apiclient.Credentials, userID string) (*types.DietPlan, error)
	Generate(ctx context.Context, creds apiclient.Credentials, userID string) (*types.GenerateDietResponse, error)
	AddFood(ctx context.Context, creds apiclient.Credentials, mealID string, req *types.AddDietFoodRequest) error
	RemoveFood(ctx context.Context, creds apiclient.Credentials, dietFoodID string) error
}

// IWorkoutService is the workout plan API for members and trainers
type IWorkoutService interface {
	MyPlans(ctx context.Context, creds apiclient.Credentials) ([]types.WorkoutPlan, error)
	AssignedUsers(ctx context.Context, creds apiclient.Credentials) ([]types.AssignedUser, error)
	UserPlan(ctx context.Context, creds apiclient.Credentials, userID string) (*types.WorkoutPlan, error)
	UpsertPlan(ctx context.Context, creds apiclient.Credentials, req *types.UpsertWorkoutPlanRequest) (*types.WorkoutPlan, error)
}

// IOrganizationService is the tenant API
type IOrganizationService interface {
	GetConfig(ctx context.Context, slug string) (*types.Organization, error)
	ListOrganizations(ctx context.Context, creds apiclient.Credentials) ([]types.Organization, error)
	CreateOrganization(ctx context.Context, creds apiclient.Credentials, req *types.OrganizationRequest) (*types.Organization, error)
	UpdateOrganization(ctx context.Context, creds apiclient.Credentials, id string, req *types.OrganizationRequest) (*types.Organization, error)
}

// ILogoService stores organization logos and returns their public URL
type ILogoService interface {
	UploadLogo(ctx context.Context, orgID, filename, contentType string, body io.Reader) (string, error)
}

// INotificationService is the in-app notification API
type INotificationService interface {
	List(ctx context.Context, creds apiclient.Credentials) ([]types.Notification, error)
	MarkRead(ctx context.Context, creds apiclient.Credentials, id string) (*types.Notification, error)
	MarkAllRead(ctx context.Context, creds apiclient.Credentials) error
}
