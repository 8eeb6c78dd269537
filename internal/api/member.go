package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/vitality/web/internal/middleware"
	"github.com/pageza/vitality/web/internal/screen"
	"github.com/pageza/vitality/web/internal/types"
	"github.com/pageza/vitality/web/internal/viewmodel"
)

// MemberHandler serves the pages every signed-in user has
type MemberHandler struct {
	svc    Services
	render *Responder
	now    func() time.Time
}

// NewMemberHandler creates a new MemberHandler
func NewMemberHandler(svc Services, render *Responder) *MemberHandler {
	return &MemberHandler{svc: svc, render: render, now: time.Now}
}

// RegisterRoutes mounts the member pages on a basename group
func (h *MemberHandler) RegisterRoutes(rg *gin.RouterGroup) {
	member := rg.Group("")
	member.Use(middleware.RequireRoles(signedInRoles...))
	{
		member.GET("/dashboard", h.Dashboard)
		member.POST("/dashboard/diet", h.GenerateDiet)
		member.GET("/tracking", h.Tracking)
		member.POST("/tracking", h.CreateMeasurement)
		member.GET("/diet", h.Diet)
		member.GET("/workout", h.Workout)
		member.GET("/profile", h.Profile)
		member.PATCH("/profile", h.UpdateProfile)
	}
}

type dashboardView struct {
	Stats           viewmodel.DashboardStats `json:"stats"`
	Latest          *types.Measurement       `json:"latest,omitempty"`
	History         []types.Measurement      `json:"history"`
	Progress        []types.MonthlyStats     `json:"progress"`
	HasProgress     bool                     `json:"hasProgress"`
	DietPlan        *types.DietPlan          `json:"dietPlan,omitempty"`
	CanGenerateDiet bool                     `json:"canGenerateDiet"`
}

// Dashboard shows the headline figures, recent measurements and progress
func (h *MemberHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	creds := h.render.Creds(c)

	history, err := h.svc.Measurements.MyHistory(ctx, creds)
	if err != nil {
		h.render.PageError(c, "dashboard", err, "No se pudieron cargar tus mediciones")
		return
	}
	plan, err := h.svc.Diets.MyPlan(ctx, creds)
	if err != nil {
		h.render.PageError(c, "dashboard", err, "No se pudo cargar tu plan de dieta")
		return
	}

	history = viewmodel.NewestFirst(history)
	view := dashboardView{
		History:  history,
		Progress: viewmodel.MonthlyProgress(history, h.now(), viewmodel.ProgressMonths),
		DietPlan: plan,
	}
	if len(history) > 0 {
		view.Latest = &history[0]
	}
	view.Stats = viewmodel.Stats(view.Latest, plan)
	view.HasProgress = viewmodel.AnyData(view.Progress)
	view.CanGenerateDiet = plan == nil && view.Latest != nil

	h.render.Page(c, "dashboard", view)
}

// GenerateDiet builds the caller's diet plan from their latest measurement
func (h *MemberHandler) GenerateDiet(c *gin.Context) {
	ctx := c.Request.Context()
	creds := h.render.Creds(c)

	resp, err := h.svc.Diets.Generate(ctx, creds, "")
	if err != nil {
		h.render.Fail(c, err, "No se pudo generar el plan de dieta", "/dashboard")
		return
	}
	plan := resp.Plan
	if plan == nil {
		if plan, err = h.svc.Diets.MyPlan(ctx, creds); err != nil {
			h.render.Fail(c, err, "El plan se generó pero no se pudo cargar", "/dashboard")
			return
		}
	}

	msg := resp.Message
	if msg == "" {
		msg = "Plan de dieta generado"
	}
	h.render.Done(c, http.StatusCreated, msg, "/dashboard", gin.H{"message": msg, "plan": plan})
}

type trackingView struct {
	History     []types.Measurement  `json:"history"`
	Progress    []types.MonthlyStats `json:"progress"`
	HasProgress bool                 `json:"hasProgress"`
	Goals       []goalOption         `json:"goals"`
}

type goalOption struct {
	Value types.Goal `json:"value"`
	Label string     `json:"label"`
}

var goalOptions = []goalOption{
	{types.GoalBulk, types.GoalBulk.Label()},
	{types.GoalCut, types.GoalCut.Label()},
	{types.GoalMaintain, types.GoalMaintain.Label()},
}

// Tracking shows the measurement history and the monthly progress chart
func (h *MemberHandler) Tracking(c *gin.Context) {
	history, err := h.svc.Measurements.MyHistory(c.Request.Context(), h.render.Creds(c))
	if err != nil {
		h.render.PageError(c, "tracking", err, "No se pudieron cargar tus mediciones")
		return
	}
	h.render.Page(c, "tracking", newTrackingView(history, h.now()))
}

func newTrackingView(history []types.Measurement, now time.Time) trackingView {
	history = viewmodel.NewestFirst(history)
	if history == nil {
		history = []types.Measurement{}
	}
	progress := viewmodel.MonthlyProgress(history, now, viewmodel.ProgressMonths)
	return trackingView{
		History:     history,
		Progress:    progress,
		HasProgress: viewmodel.AnyData(progress),
		Goals:       goalOptions,
	}
}

// CreateMeasurement records a measurement for the caller
func (h *MemberHandler) CreateMeasurement(c *gin.Context) {
	var req types.MeasurementRequest
	if err := c.ShouldBind(&req); err != nil {
		h.render.Invalid(c, err, "/tracking")
		return
	}
	req.UserID = ""

	creds := h.render.Creds(c)
	coll := screen.NewCollection(func(ctx context.Context) ([]types.Measurement, error) {
		return h.svc.Measurements.MyHistory(ctx, creds)
	}, measurementID)

	outcome, err := coll.Apply(c.Request.Context(), func(ctx context.Context) (*types.Measurement, error) {
		return h.svc.Measurements.Create(ctx, creds, &req)
	})
	if err != nil {
		h.render.Fail(c, err, "No se pudo guardar la medición", "/tracking")
		return
	}
	h.render.Done(c, http.StatusCreated, "Medición guardada", "/tracking", outcome)
}

type dietView struct {
	Summary *viewmodel.DaySummary `json:"summary,omitempty"`
	PlanID  string                `json:"planId,omitempty"`
	Day     int                   `json:"day"`
	Days    []int                 `json:"days"`
	Targets *types.DietPlan       `json:"targets,omitempty"`
	Empty   bool                  `json:"empty"`
}

// Diet shows one day of the caller's diet plan with derived macros
func (h *MemberHandler) Diet(c *gin.Context) {
	plan, err := h.svc.Diets.MyPlan(c.Request.Context(), h.render.Creds(c))
	if err != nil {
		h.render.PageError(c, "diet", err, "No se pudo cargar tu plan de dieta")
		return
	}
	h.render.Page(c, "diet", newDietView(plan, c.Query("day")))
}

func newDietView(plan *types.DietPlan, dayParam string) dietView {
	day, _ := strconv.Atoi(dayParam)
	day = viewmodel.ClampDay(day)

	view := dietView{Day: day, Days: viewmodel.PlanDays(), Empty: plan == nil}
	if plan == nil {
		return view
	}
	summary := viewmodel.SummarizeDay(plan, day)
	view.Summary = &summary
	view.PlanID = plan.ID
	view.Targets = &types.DietPlan{
		ID:                plan.ID,
		DailyCalories:     plan.DailyCalories,
		ProteinGrams:      plan.ProteinGrams,
		CarbohydrateGrams: plan.CarbohydrateGrams,
		FatGrams:          plan.FatGrams,
	}
	return view
}

type workoutView struct {
	PlanID string               `json:"planId,omitempty"`
	Days   []types.DailyWorkout `json:"days"`
	Empty  bool                 `json:"empty"`
}

// Workout shows the caller's latest workout plan, normalized by day
func (h *MemberHandler) Workout(c *gin.Context) {
	ctx := c.Request.Context()
	creds := h.render.Creds(c)

	plans, err := h.svc.Workouts.MyPlans(ctx, creds)
	if err != nil {
		h.render.PageError(c, "workout", err, "No se pudo cargar tu plan de entrenamiento")
		return
	}
	latest := viewmodel.LatestPlan(plans)
	if latest == nil {
		h.render.Page(c, "workout", workoutView{Days: []types.DailyWorkout{}, Empty: true})
		return
	}

	trainingDays := 0
	if user := middleware.GetUser(c); user != nil && user.Profile != nil {
		trainingDays = int(user.Profile.TrainingDays)
	}
	h.render.Page(c, "workout", workoutView{
		PlanID: latest.ID,
		Days:   viewmodel.NormalizeWorkout(latest.Exercises, trainingDays, h.catalog(c)),
	})
}

// catalog loads the exercise catalog used to complete legacy plans. It is
// optional: a failure leaves legacy entries with their defaults.
func (h *MemberHandler) catalog(c *gin.Context) []types.Exercise {
	exercises, err := h.svc.Exercises.ListExercises(c.Request.Context(), h.render.Creds(c))
	if err != nil {
		h.render.logger.WithError(err).Debug("exercise catalog unavailable")
		return nil
	}
	return exercises
}

// Profile shows the caller's account and physical profile
func (h *MemberHandler) Profile(c *gin.Context) {
	user, err := h.svc.Profile.GetProfile(c.Request.Context(), h.render.Creds(c))
	if err != nil {
		h.render.PageError(c, "profile", err, "No se pudo cargar tu perfil")
		return
	}
	h.syncSessionUser(c, user)
	h.render.Page(c, "profile", user)
}

// UpdateProfile saves the caller's edits and refreshes the session copy
func (h *MemberHandler) UpdateProfile(c *gin.Context) {
	var req types.UpdateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		h.render.Invalid(c, err, "/profile")
		return
	}
	// Role and status are not self-service.
	req.Role = nil
	req.IsActive = nil

	ctx := c.Request.Context()
	creds := h.render.Creds(c)
	user, err := h.svc.Profile.UpdateProfile(ctx, creds, &req)
	if err == nil && (user == nil || user.ID == "") {
		user, err = h.svc.Profile.GetProfile(ctx, creds)
	}
	if err != nil {
		h.render.Fail(c, err, "No se pudo actualizar el perfil", "/profile")
		return
	}
	h.syncSessionUser(c, user)
	h.render.Done(c, http.StatusOK, "Perfil actualizado", "/profile", user)
}

func (h *MemberHandler) syncSessionUser(c *gin.Context, user *types.User) {
	sess := middleware.GetSession(c)
	if sess == nil || user == nil {
		return
	}
	if err := h.render.sessions.UpdateUser(c.Request.Context(), sess, *user); err != nil {
		h.render.logger.WithError(err).Warn("failed to refresh session user")
	}
}

func measurementID(m types.Measurement) string { return m.ID }
