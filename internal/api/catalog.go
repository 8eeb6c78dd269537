package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/vitality/web/internal/screen"
	"github.com/pageza/vitality/web/internal/types"
)

// CatalogHandler serves the food and exercise catalog screens
type CatalogHandler struct {
	svc    Services
	render *Responder
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(svc Services, render *Responder) *CatalogHandler {
	return &CatalogHandler{svc: svc, render: render}
}

// RegisterRoutes mounts the catalog routes on an already gated group
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	foods := rg.Group("/foods")
	{
		foods.GET("", h.Foods)
		foods.POST("", h.CreateFood)
		foods.PUT("/:id", h.UpdateFood)
		foods.DELETE("/:id", h.DeleteFood)
	}

	exercises := rg.Group("/exercises")
	{
		exercises.GET("", h.Exercises)
		exercises.POST("", h.CreateExercise)
		exercises.PUT("/:id", h.UpdateExercise)
		exercises.DELETE("/:id", h.DeleteExercise)
	}
}

func (h *CatalogHandler) foods(c *gin.Context) *screen.Collection[types.Food] {
	creds := h.render.Creds(c)
	return screen.NewCollection(func(ctx context.Context) ([]types.Food, error) {
		return h.svc.Foods.ListFoods(ctx, creds)
	}, func(f types.Food) string { return f.ID })
}

func (h *CatalogHandler) exercises(c *gin.Context) *screen.Collection[types.Exercise] {
	creds := h.render.Creds(c)
	return screen.NewCollection(func(ctx context.Context) ([]types.Exercise, error) {
		return h.svc.Exercises.ListExercises(ctx, creds)
	}, func(e types.Exercise) string { return e.ID })
}

func (h *CatalogHandler) Foods(c *gin.Context) {
	items, err := h.foods(c).Load(c.Request.Context())
	if err != nil {
		h.render.PageError(c, "admin-foods", err, "No se pudieron cargar las comidas")
		return
	}
	h.render.Page(c, "admin-foods", items)
}

func (h *CatalogHandler) CreateFood(c *gin.Context) {
	var req types.FoodRequest
	if err := c.ShouldBind(&req); err != nil {
		h.render.Invalid(c, err, "/admin/foods")
		return
	}
	creds := h.render.Creds(c)
	outcome, err := h.foods(c).Apply(c.Request.Context(), func(ctx context.Context) (*types.Food, error) {
		return h.svc.Foods.CreateFood(ctx, creds, &req)
	})
	if err != nil {
		h.render.Fail(c, err, "No se pudo crear la comida", "/admin/foods")
		return
	}
	h.render.Done(c, http.StatusCreated, "Comida creada", "/admin/foods", outcome)
}

func (h *CatalogHandler) UpdateFood(c *gin.Context) {
	var req types.FoodRequest
	if err := c.ShouldBind(&req); err != nil {
		h.render.Invalid(c, err, "/admin/foods")
		return
	}
	creds := h.render.Creds(c)
	outcome, err := h.foods(c).Apply(c.Request.Context(), func(ctx context.Context) (*types.Food, error) {
		return h.svc.Foods.UpdateFood(ctx, creds, c.Param("id"), &req)
	})
	if err != nil {
		h.render.Fail(c, err, "No se pudo actualizar la comida", "/admin/foods")
		return
	}
	h.render.Done(c, http.StatusOK, "Comida actualizada", "/admin/foods", outcome)
}

func (h *CatalogHandler) DeleteFood(c *gin.Context) {
	creds := h.render.Creds(c)
	outcome, err := h.foods(c).Remove(c.Request.Context(), c.Param("id"), func(ctx context.Context, id string) error {
		return h.svc.Foods.DeleteFood(ctx, creds, id)
	})
	if err != nil {
		h.render.FailWith(c, err, "No se pudo eliminar la comida", "/admin/foods", outcome)
		return
	}
	h.render.Done(c, http.StatusOK, "Comida eliminada", "/admin/foods", outcome)
}

func (h *CatalogHandler) Exercises(c *gin.Context) {
	items, err := h.exercises(c).Load(c.Request.Context())
	if err != nil {
		h.render.PageError(c, "admin-exercises", err, "No se pudieron cargar los ejercicios")
		return
	}
	h.render.Page(c, "admin-exercises", items)
}

func (h *CatalogHandler) CreateExercise(c *gin.Context) {
	var req types.ExerciseRequest
	if err := c.ShouldBind(&req); err != nil {
		h.render.Invalid(c, err, "/admin/exercises")
		return
	}
	creds := h.render.Creds(c)
	outcome, err := h.exercises(c).Apply(c.Request.Context(), func(ctx context.Context) (*types.Exercise, error) {
		return h.svc.Exercises.CreateExercise(ctx, creds, &req)
	})
	if err != nil {
		h.render.Fail(c, err, "No se pudo crear el ejercicio", "/admin/exercises")
		return
	}
	h.render.Done(c, http.StatusCreated, "Ejercicio creado", "/admin/exercises", outcome)
}

func (h *CatalogHandler) UpdateExercise(c *gin.Context) {
	var req types.ExerciseRequest
	if err := c.ShouldBind(&req); err != nil {
		h.render.Invalid(c, err, "/admin/exercises")
		return
	}
	creds := h.render.Creds(c)
	outcome, err := h.exercises(c).Apply(c.Request.Context(), func(ctx context.Context) (*types.Exercise, error) {
		return h.svc.Exercises.UpdateExercise(ctx, creds, c.Param("id"), &req)
	})
	if err != nil {
		h.render.Fail(c, err, "No se pudo actualizar el ejercicio", "/admin/exercises")
		return
	}
	h.render.Done(c, http.StatusOK, "Ejercicio actualizado", "/admin/exercises", outcome)
}

func (h *CatalogHandler) DeleteExercise(c *gin.Context) {
	creds := h.render.Creds(c)
	outcome, err := h.exercises(c).Remove(c.Request.Context(), c.Param("id"), func(ctx context.Context, id string) error {
		return h.svc.Exercises.DeleteExercise(ctx, creds, id)
	})
	if err != nil {
		h.render.FailWith(c, err, "No se pudo eliminar el ejercicio", "/admin/exercises", outcome)
		return
	}
	h.render.Done(c, http.StatusOK, "Ejercicio eliminado", "/admin/exercises", outcome)
}
