package mocks

import "github.com/pageza/vitality/web/internal/service"

var (
	_ service.IAuthService         = (*MockAuthService)(nil)
	_ service.IProfileService      = (*MockProfileService)(nil)
	_ service.IUserService         = (*MockUserService)(nil)
	_ service.IFoodService         = (*MockFoodService)(nil)
	_ service.IExerciseService     = (*MockExerciseService)(nil)
	_ service.IMeasurementService  = (*MockMeasurementService)(nil)
	_ service.IDietService         = (*MockDietService)(nil)
	_ service.IWorkoutService      = (*MockWorkoutService)(nil)
	_ service.IOrganizationService = (*MockOrganizationService)(nil)
	_ service.ILogoService         = (*MockLogoService)(nil)
	_ service.INotificationService = (*MockNotificationService)(nil)
)
