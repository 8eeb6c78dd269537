package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/vitality/web/internal/middleware"
	"github.com/pageza/vitality/web/internal/types"
	"github.com/pageza/vitality/web/internal/viewmodel"
)

// TrainerHandler serves a trainer's view of their assigned members
type TrainerHandler struct {
	svc    Services
	render *Responder
}

// NewTrainerHandler creates a new TrainerHandler
func NewTrainerHandler(svc Services, render *Responder) *TrainerHandler {
	return &TrainerHandler{svc: svc, render: render}
}

// RegisterRoutes mounts the trainer routes on a basename group
func (h *TrainerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	trainer := rg.Group("/trainer")
	trainer.Use(middleware.RequireRoles(types.RoleTrainer))
	{
		trainer.GET("/users", h.Users)
		trainer.GET("/users/:userId", h.UserPlan)
		trainer.POST("/users/:userId", h.SavePlan)
		trainer.GET("/users/:userId/diet", h.UserDiet)
	}
}

// Users lists the members assigned to the trainer
func (h *TrainerHandler) Users(c *gin.Context) {
	users, err := h.svc.Workouts.AssignedUsers(c.Request.Context(), h.render.Creds(c))
	if err != nil {
		h.render.PageError(c, "trainer-users", err, "No se pudieron cargar tus usuarios")
		return
	}
	if users == nil {
		users = []types.AssignedUser{}
	}
	for i := range users {
		users[i].Measurements = viewmodel.NewestFirst(users[i].Measurements)
	}
	h.render.Page(c, "trainer-users", users)
}

type trainerPlanView struct {
	User    types.User           `json:"user"`
	PlanID  string               `json:"planId,omitempty"`
	Days    []types.DailyWorkout `json:"days"`
	Catalog []types.Exercise     `json:"catalog"`
}

// UserPlan shows the editable workout plan of an assigned member
func (h *TrainerHandler) UserPlan(c *gin.Context) {
	ctx := c.Request.Context()
	creds := h.render.Creds(c)

	user, ok := h.assignedUser(c)
	if !ok {
		return
	}
	plan, err := h.svc.Workouts.UserPlan(ctx, creds, user.ID)
	if err != nil {
		h.render.PageError(c, "trainer-plan", err, "No se pudo cargar el plan de entrenamiento")
		return
	}
	catalog, err := h.svc.Exercises.ListExercises(ctx, creds)
	if err != nil {
		h.render.PageError(c, "trainer-plan", err, "No se pudo cargar el catálogo de ejercicios")
		return
	}

	trainingDays := 0
	if user.Profile != nil {
		trainingDays = int(user.Profile.TrainingDays)
	}
	view := trainerPlanView{User: user.User, Catalog: catalog}
	if plan != nil {
		view.PlanID = plan.ID
		view.Days = viewmodel.NormalizeWorkout(plan.Exercises, trainingDays, catalog)
	} else {
		view.Days = viewmodel.NormalizeWorkout(nil, trainingDays, catalog)
	}
	h.render.Page(c, "trainer-plan", view)
}

type savePlanRequest struct {
	Exercises []types.DailyWorkout `json:"exercises" binding:"required"`
}

// SavePlan creates or replaces the member's workout plan
func (h *TrainerHandler) SavePlan(c *gin.Context) {
	back := "/trainer/users/" + c.Param("userId")

	var req savePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.render.Invalid(c, err, back)
		return
	}

	plan, err := h.svc.Workouts.UpsertPlan(c.Request.Context(), h.render.Creds(c), &types.UpsertWorkoutPlanRequest{
		UserID:    c.Param("userId"),
		Exercises: req.Exercises,
	})
	if err != nil {
		h.render.Fail(c, err, "No se pudo guardar el plan de entrenamiento", back)
		return
	}
	h.render.Done(c, http.StatusOK, "Plan de entrenamiento guardado", back, gin.H{"plan": plan})
}

// UserDiet shows the diet plan of an assigned member
func (h *TrainerHandler) UserDiet(c *gin.Context) {
	user, ok := h.assignedUser(c)
	if !ok {
		return
	}
	plan, err := h.svc.Diets.UserPlan(c.Request.Context(), h.render.Creds(c), user.ID)
	if err != nil {
		h.render.PageError(c, "trainer-diet", err, "No se pudo cargar el plan de dieta")
		return
	}
	h.render.Page(c, "trainer-diet", gin.H{"user": user.User, "diet": newDietView(plan, c.Query("day"))})
}

// assignedUser finds the :userId member among the trainer's users and
// renders a not-found page when they are not assigned.
func (h *TrainerHandler) assignedUser(c *gin.Context) (*types.AssignedUser, bool) {
	users, err := h.svc.Workouts.AssignedUsers(c.Request.Context(), h.render.Creds(c))
	if err != nil {
		h.render.PageError(c, "trainer-users", err, "No se pudieron cargar tus usuarios")
		return nil, false
	}
	for i := range users {
		if users[i].ID == c.Param("userId") {
			return &users[i], true
		}
	}
	h.render.PageError(c, "trainer-users", errUserNotAssigned, "Usuario no asignado")
	return nil, false
}
