package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/vitality/web/internal/database"
	"github.com/pageza/vitality/web/internal/service"
	"github.com/pageza/vitality/web/internal/types"
)

// Services are the backend operations the page handlers call
type Services struct {
	Auth          service.IAuthService
	Profile       service.IProfileService
	Users         service.IUserService
	Foods         service.IFoodService
	Exercises     service.IExerciseService
	Measurements  service.IMeasurementService
	Diets         service.IDietService
	Workouts      service.IWorkoutService
	Organizations service.IOrganizationService
	Logos         service.ILogoService
	Notifications service.INotificationService
}

// HealthHandler reports the reachability of the process's dependencies
type HealthHandler struct {
	checker *database.HealthChecker
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(checker *database.HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// HealthCheck returns the health status of the web client
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	status, err := h.checker.HealthCheck(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":       "unhealthy",
			"dependencies": status,
			"time":         time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"dependencies": status,
		"time":         time.Now().UTC().Format(time.RFC3339),
	})
}

// signedInRoles may see the shared member pages
var signedInRoles = types.AllRoles
