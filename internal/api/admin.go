package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/vitality/web/internal/middleware"
	"github.com/pageza/vitality/web/internal/screen"
	"github.com/pageza/vitality/web/internal/tenant"
	"github.com/pageza/vitality/web/internal/types"
)

// AdminHandler serves an organization admin's user management screens
type AdminHandler struct {
	svc     Services
	render  *Responder
	members *MemberHandler
}

// NewAdminHandler creates a new AdminHandler. members serves the admin's
// own profile page.
func NewAdminHandler(svc Services, render *Responder, members *MemberHandler) *AdminHandler {
	return &AdminHandler{svc: svc, render: render, members: members}
}

// RegisterRoutes mounts the admin routes on a basename group
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RequireRoles(types.RoleAdmin))
	{
		admin.GET("", h.Index)
		admin.GET("/profile", h.members.Profile)

		users := admin.Group("/users")
		users.GET("", h.Users)
		users.POST("", h.CreateUser)
		users.PUT("/:userId", h.UpdateUser)
		users.DELETE("/:userId", h.DeleteUser)
		users.PATCH("/:userId/status", h.SetStatus)
		users.POST("/:userId/trainer", h.AssignTrainer)
		users.GET("/:userId/history", h.History)
		users.POST("/:userId/history", h.CreateMeasurement)
		users.GET("/:userId/diet", h.Diet)
		users.POST("/:userId/diet", h.GenerateDiet)
		users.POST("/:userId/diet/meals/:mealId/foods", h.AddFood)
		users.DELETE("/:userId/diet/foods/:foodId", h.RemoveFood)

		catalog := NewCatalogHandler(h.svc, h.render)
		catalog.RegisterRoutes(admin)
	}
}

// Index sends the admin home to the user list
func (h *AdminHandler) Index(c *gin.Context) {
	c.Redirect(http.StatusFound, tenant.Join(middleware.GetBasename(c), "/admin/users"))
}

func (h *AdminHandler) users(c *gin.Context) *screen.Collection[types.User] {
	creds := h.render.Creds(c)
	return screen.NewCollection(func(ctx context.Context) ([]types.User, error) {
		return h.svc.Users.ListUsers(ctx, creds)
	}, func(u types.User) string { return u.ID })
}

type usersView struct {
	Users    []types.User `json:"users"`
	Trainers []types.User `json:"trainers"`
	Roles    []types.Role `json:"roles"`
}

// Users lists the organization's users with the trainers they can be
// assigned to.
func (h *AdminHandler) Users(c *gin.Context) {
	ctx := c.Request.Context()

	users, err := h.users(c).Load(ctx)
	if err != nil {
		h.render.PageError(c, "admin-users", err, "No se pudieron cargar los usuarios")
		return
	}
	trainers, err := h.svc.Users.ListTrainers(ctx, h.render.Creds(c))
	if err != nil {
		h.render.PageError(c, "admin-users", err, "No se pudieron cargar los entrenadores")
		return
	}
	if trainers == nil {
		trainers = []types.User{}
	}
	h.render.Page(c, "admin-users", usersView{
		Users:    users,
		Trainers: trainers,
		Roles:    []types.Role{types.RoleMember, types.RoleTrainer, types.RoleAdmin},
	})
}

// CreateUser adds a user to the organization
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req types.CreateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		h.render.Invalid(c, err, "/admin/users")
		return
	}

	creds := h.render.Creds(c)
	outcome, err := h.users(c).Apply(c.Request.Context(), func(ctx context.Context) (*types.User, error) {
		return h.svc.Users.CreateUser(ctx, creds, &req)
	})
	if err != nil {
		h.render.Fail(c, err, "No se pudo crear el usuario", "/admin/users")
		return
	}
	h.render.Done(c, http.StatusCreated, "Usuario creado", "/admin/users", outcome)
}

// UpdateUser edits a user's account and profile fields
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	var req types.UpdateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		h.render.Invalid(c, err, "/admin/users")
		return
	}

	creds := h.render.Creds(c)
	outcome, err := h.users(c).Apply(c.Request.Context(), func(ctx context.Context) (*types.User, error) {
		return h.svc.Users.UpdateUser(ctx, creds, c.Param("userId"), &req)
	})
	if err != nil {
		h.render.Fail(c, err, "No se pudo actualizar el usuario", "/admin/users")
		return
	}
	h.render.Done(c, http.StatusOK, "Usuario actualizado", "/admin/users", outcome)
}

// DeleteUser deactivates a user; the record is kept, so the list is
// refetched to show the new status.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	creds := h.render.Creds(c)
	outcome, err := h.users(c).Apply(c.Request.Context(), func(ctx context.Context) (*types.User, error) {
		return nil, h.svc.Users.DeleteUser(ctx, creds, c.Param("userId"))
	})
	if err != nil {
		h.render.Fail(c, err, "No se pudo desactivar el usuario", "/admin/users")
		return
	}
	h.render.Done(c, http.StatusOK, "Usuario desactivado", "/admin/users", outcome)
}

type statusRequest struct {
	IsActive *bool `json:"isActive" form:"isActive" binding:"required"`
}

// SetStatus activates or deactivates a user
func (h *AdminHandler) SetStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBind(&req); err != nil {
		h.render.Invalid(c, err, "/admin/users")
		return
	}

	creds := h.render.Creds(c)
	outcome, err := h.users(c).Apply(c.Request.Context(), func(ctx context.Context) (*types.User, error) {
		return nil, h.svc.Users.SetStatus(ctx, creds, c.Param("userId"), *req.IsActive)
	})
	if err != nil {
		h.render.Fail(c, err, "No se pudo cambiar el estado del usuario", "/admin/users")
		return
	}

	msg := "Usuario desactivado"
	if *req.IsActive {
		msg = "Usuario activado"
	}
	h.render.Done(c, http.StatusOK, msg, "/admin/users", outcome)
}

type assignRequest struct {
	TrainerID *string `json:"trainerId" form:"trainerId"`
}

// AssignTrainer sets or clears a user's trainer. The list reflects the new
// trainer at once and is rolled back when the backend refuses.
func (h *AdminHandler) AssignTrainer(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBind(&req); err != nil {
		h.render.Invalid(c, err, "/admin/users")
		return
	}
	if req.TrainerID != nil && *req.TrainerID == "" {
		req.TrainerID = nil
	}

	ctx := c.Request.Context()
	creds := h.render.Creds(c)
	coll := h.users(c)
	if _, err := coll.Load(ctx); err != nil {
		h.render.Fail(c, err, "No se pudieron cargar los usuarios", "/admin/users")
		return
	}

	err := screen.AssignTrainer(ctx, coll.Items, c.Param("userId"), req.TrainerID,
		func(ctx context.Context, userID string, trainerID *string) error {
			return h.svc.Users.AssignTrainer(ctx, creds, userID, trainerID)
		})
	if err != nil {
		h.render.FailWith(c, err, "No se pudo asignar el entrenador", "/admin/users", screen.Outcome[types.User]{Items: coll.Items})
		return
	}

	msg := "Entrenador asignado"
	if req.TrainerID == nil {
		msg = "Entrenador desasignado"
	}
	h.render.Done(c, http.StatusOK, msg, "/admin/users", screen.Outcome[types.User]{Items: coll.Items})
}

type historyView struct {
	User *types.User `json:"user"`
	trackingView
}

// History shows a user's measurement history
func (h *AdminHandler) History(c *gin.Context) {
	ctx := c.Request.Context()
	creds := h.render.Creds(c)

	user, err := h.svc.Users.GetUser(ctx, creds, c.Param("userId"))
	if err != nil {
		h.render.PageError(c, "admin-history", err, "No se pudo cargar el usuario")
		return
	}
	history, err := h.svc.Measurements.UserHistory(ctx, creds, user.ID)
	if err != nil {
		h.render.PageError(c, "admin-history", err, "No se pudieron cargar las mediciones")
		return
	}
	h.render.Page(c, "admin-history", historyView{User: user, trackingView: newTrackingView(history, h.members.now())})
}

// CreateMeasurement records a measurement on behalf of a user
func (h *AdminHandler) CreateMeasurement(c *gin.Context) {
	userID := c.Param("userId")
	back := "/admin/users/" + userID + "/history"

	var req types.MeasurementRequest
	if err := c.ShouldBind(&req); err != nil {
		h.render.Invalid(c, err, back)
		return
	}
	req.UserID = userID

	creds := h.render.Creds(c)
	coll := screen.NewCollection(func(ctx context.Context) ([]types.Measurement, error) {
		return h.svc.Measurements.UserHistory(ctx, creds, userID)
	}, measurementID)

	outcome, err := coll.Apply(c.Request.Context(), func(ctx context.Context) (*types.Measurement, error) {
		return h.svc.Measurements.Create(ctx, creds, &req)
	})
	if err != nil {
		h.render.Fail(c, err, "No se pudo guardar la medición", back)
		return
	}
	h.render.Done(c, http.StatusCreated, "Medición guardada", back, outcome)
}

type nutritionManagerView struct {
	User  *types.User  `json:"user"`
	Diet  dietView     `json:"diet"`
	Foods []types.Food `json:"foods"`
}

// Diet shows a user's diet plan with the food catalog for editing
func (h *AdminHandler) Diet(c *gin.Context) {
	ctx := c.Request.Context()
	creds := h.render.Creds(c)

	user, err := h.svc.Users.GetUser(ctx, creds, c.Param("userId"))
	if err != nil {
		h.render.PageError(c, "admin-diet", err, "No se pudo cargar el usuario")
		return
	}
	plan, err := h.svc.Diets.UserPlan(ctx, creds, user.ID)
	if err != nil {
		h.render.PageError(c, "admin-diet", err, "No se pudo cargar el plan de dieta")
		return
	}
	foods, err := h.svc.Foods.ListFoods(ctx, creds)
	if err != nil {
		h.render.PageError(c, "admin-diet", err, "No se pudieron cargar las comidas")
		return
	}
	if foods == nil {
		foods = []types.Food{}
	}
	h.render.Page(c, "admin-diet", nutritionManagerView{User: user, Diet: newDietView(plan, c.Query("day")), Foods: foods})
}

// GenerateDiet builds a user's plan from their latest measurement
func (h *AdminHandler) GenerateDiet(c *gin.Context) {
	ctx := c.Request.Context()
	creds := h.render.Creds(c)
	userID := c.Param("userId")
	back := "/admin/users/" + userID + "/diet"

	resp, err := h.svc.Diets.Generate(ctx, creds, userID)
	if err != nil {
		h.render.Fail(c, err, "No se pudo generar el plan de dieta", back)
		return
	}
	plan := resp.Plan
	if plan == nil {
		if plan, err = h.svc.Diets.UserPlan(ctx, creds, userID); err != nil {
			h.render.Fail(c, err, "El plan se generó pero no se pudo cargar", back)
			return
		}
	}

	msg := resp.Message
	if msg == "" {
		msg = "Plan de dieta generado"
	}
	h.render.Done(c, http.StatusCreated, msg, back, gin.H{"message": msg, "plan": plan})
}

// AddFood adds a portion of a catalog food to a meal
func (h *AdminHandler) AddFood(c *gin.Context) {
	userID := c.Param("userId")
	back := "/admin/users/" + userID + "/diet"

	var req types.AddDietFoodRequest
	if err := c.ShouldBind(&req); err != nil {
		h.render.Invalid(c, err, back)
		return
	}

	ctx := c.Request.Context()
	creds := h.render.Creds(c)
	if err := h.svc.Diets.AddFood(ctx, creds, c.Param("mealId"), &req); err != nil {
		h.render.Fail(c, err, "No se pudo agregar la comida", back)
		return
	}
	h.refreshedPlan(c, userID, "Comida agregada", back)
}

// RemoveFood removes a food portion from its meal
func (h *AdminHandler) RemoveFood(c *gin.Context) {
	userID := c.Param("userId")
	back := "/admin/users/" + userID + "/diet"

	if err := h.svc.Diets.RemoveFood(c.Request.Context(), h.render.Creds(c), c.Param("foodId")); err != nil {
		h.render.Fail(c, err, "No se pudo eliminar la comida", back)
		return
	}
	h.refreshedPlan(c, userID, "Comida eliminada", back)
}

func (h *AdminHandler) refreshedPlan(c *gin.Context, userID, msg, back string) {
	plan, err := h.svc.Diets.UserPlan(c.Request.Context(), h.render.Creds(c), userID)
	if err != nil {
		h.render.Fail(c, err, "No se pudo recargar el plan de dieta", back)
		return
	}
	h.render.Done(c, http.StatusOK, msg, back, gin.H{"plan": plan, "diet": newDietView(plan, c.Query("day"))})
}
