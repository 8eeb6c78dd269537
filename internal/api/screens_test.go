package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/vitality/web/internal/apiclient"
	"github.com/pageza/vitality/web/internal/types"
)

var backendDown = &apiclient.Error{Kind: apiclient.KindServer, Status: http.StatusInternalServerError, Message: "Error interno"}

func TestProfileRefreshKeepsSessionRole(t *testing.T) {
	f := setupFixture(t)
	cookie := f.signIn(t, types.RoleMember)
	f.profile.On("GetProfile", mock.Anything, mock.Anything).
		Return(&types.User{Name: "Ana María", Email: "ana@example.com"}, nil)
	f.measurements.On("MyHistory", mock.Anything, mock.Anything).Return([]types.Measurement{}, nil)
	f.diets.On("MyPlan", mock.Anything, mock.Anything).Return(nil, nil)

	w := f.do(jsonRequest(http.MethodGet, "/org/fitba/profile", nil), cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = f.do(jsonRequest(http.MethodGet, "/org/fitba/dashboard", nil), cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	user := decode(t, w)["user"].(map[string]interface{})
	assert.Equal(t, "USUARIO", user["role"])
	assert.Equal(t, "u1", user["id"])
	assert.Equal(t, "Ana María", user["name"])
}

func TestPageCarriesRouteAndAdminFlag(t *testing.T) {
	f := setupFixture(t)
	cookie := f.signIn(t, types.RoleAdmin)
	f.users.On("ListUsers", mock.Anything, mock.Anything).Return([]types.User{}, nil)
	f.users.On("ListTrainers", mock.Anything, mock.Anything).Return([]types.User{}, nil)

	w := f.do(jsonRequest(http.MethodGet, "/org/fitba/admin/users", nil), cookie)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "/admin/users", body["route"])
	assert.Equal(t, true, body["isAdmin"])
	assert.Equal(t, "#e60000", body["theme"].(map[string]interface{})["primaryHover"])
}

func TestAdminHomeRedirectsToUsers(t *testing.T) {
	f := setupFixture(t)
	cookie := f.signIn(t, types.RoleAdmin)

	for _, path := range []string{"/org/fitba/admin", "/admin"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Accept", "text/html")
		w := f.do(req, cookie)

		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, path+"/users", w.Header().Get("Location"))
	}
}

func TestNotifications(t *testing.T) {
	f := setupFixture(t)
	cookie := f.signIn(t, types.RoleMember)
	now := time.Now()
	f.notifications.On("List", mock.Anything, mock.Anything).Return([]types.Notification{
		{ID: "n1", Title: "Nuevo plan", Read: false, CreatedAt: now},
		{ID: "n2", Title: "Medición", Read: true, CreatedAt: now},
	}, nil)
	f.notifications.On("MarkRead", mock.Anything, mock.Anything, "n1").
		Return(&types.Notification{ID: "n1", Read: true, CreatedAt: now}, nil)
	f.notifications.On("MarkRead", mock.Anything, mock.Anything, "n9").Return(nil, backendDown)
	f.notifications.On("MarkAllRead", mock.Anything, mock.Anything).Return(nil)

	t.Run("list counts unread", func(t *testing.T) {
		w := f.do(jsonRequest(http.MethodGet, "/org/fitba/notifications", nil), cookie)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		data := decode(t, w)["data"].(map[string]interface{})
		assert.Len(t, data["items"], 2)
		assert.EqualValues(t, 1, data["unread"])
	})

	t.Run("mark one read", func(t *testing.T) {
		w := f.do(jsonRequest(http.MethodPatch, "/org/fitba/notifications/n1/read", nil), cookie)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		body := decode(t, w)
		assert.Equal(t, "n1", body["id"])
		assert.Equal(t, true, body["item"].(map[string]interface{})["read"])
	})

	t.Run("mark all read", func(t *testing.T) {
		w := f.do(jsonRequest(http.MethodPatch, "/org/fitba/notifications/read-all", nil), cookie)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "ok", decode(t, w)["message"])
	})

	t.Run("failure flashes and returns to the list", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPatch, "/org/fitba/notifications/n9/read", nil)
		req.Header.Set("Accept", "text/html")
		w := f.do(req, cookie)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/org/fitba/notifications", w.Header().Get("Location"))
	})

	f.notifications.AssertExpectations(t)
}

func TestCatalogMutations(t *testing.T) {
	f := setupFixture(t)
	cookie := f.signIn(t, types.RoleAdmin)

	f.foods.On("CreateFood", mock.Anything, mock.Anything, mock.AnythingOfType("*types.FoodRequest")).
		Return(&types.Food{ID: "f1", Name: "Avena", Calories: 389}, nil)
	f.foods.On("UpdateFood", mock.Anything, mock.Anything, "f1", mock.AnythingOfType("*types.FoodRequest")).
		Return(&types.Food{ID: "f1", Name: "Avena integral", Calories: 370}, nil)
	f.foods.On("DeleteFood", mock.Anything, mock.Anything, "f1").Return(nil)
	f.foods.On("DeleteFood", mock.Anything, mock.Anything, "f2").Return(backendDown)
	f.foods.On("ListFoods", mock.Anything, mock.Anything).
		Return([]types.Food{{ID: "f2", Name: "Arroz"}}, nil)

	f.exercises.On("CreateExercise", mock.Anything, mock.Anything, mock.AnythingOfType("*types.ExerciseRequest")).
		Return(&types.Exercise{ID: "e1", Name: "Sentadilla"}, nil)
	f.exercises.On("UpdateExercise", mock.Anything, mock.Anything, "e1", mock.AnythingOfType("*types.ExerciseRequest")).
		Return(&types.Exercise{ID: "e1", Name: "Sentadilla frontal"}, nil)
	f.exercises.On("DeleteExercise", mock.Anything, mock.Anything, "e1").Return(nil)
	f.exercises.On("DeleteExercise", mock.Anything, mock.Anything, "e2").Return(backendDown)
	f.exercises.On("ListExercises", mock.Anything, mock.Anything).
		Return([]types.Exercise{{ID: "e2", Name: "Remo"}}, nil)

	food := gin.H{"name": "Avena", "calories": 389, "protein": 17, "carbs": 66, "fat": 7}
	exercise := gin.H{"name": "Sentadilla", "muscleGroup": "Piernas", "bodyPart": "Tren inferior"}

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
		check  func(t *testing.T, body map[string]interface{})
	}{
		{"create food", http.MethodPost, "/org/fitba/admin/foods", food, http.StatusCreated, func(t *testing.T, body map[string]interface{}) {
			assert.Equal(t, "f1", body["item"].(map[string]interface{})["id"])
		}},
		{"update food", http.MethodPut, "/org/fitba/admin/foods/f1", food, http.StatusOK, func(t *testing.T, body map[string]interface{}) {
			assert.Equal(t, "Avena integral", body["item"].(map[string]interface{})["name"])
		}},
		{"invalid food", http.MethodPost, "/org/fitba/admin/foods", gin.H{"calories": 10}, http.StatusBadRequest, nil},
		{"delete food", http.MethodDelete, "/org/fitba/admin/foods/f1", nil, http.StatusOK, func(t *testing.T, body map[string]interface{}) {
			assert.Equal(t, "f1", body["removedId"])
		}},
		{"delete food fails and refetches", http.MethodDelete, "/org/fitba/admin/foods/f2", nil, http.StatusBadGateway, func(t *testing.T, body map[string]interface{}) {
			assert.Equal(t, "Error interno", body["error"])
			state := body["state"].(map[string]interface{})
			assert.Equal(t, true, state["refetched"])
			assert.Len(t, state["items"], 1)
		}},
		{"create exercise", http.MethodPost, "/org/fitba/admin/exercises", exercise, http.StatusCreated, func(t *testing.T, body map[string]interface{}) {
			assert.Equal(t, "e1", body["item"].(map[string]interface{})["id"])
		}},
		{"update exercise", http.MethodPut, "/org/fitba/admin/exercises/e1", exercise, http.StatusOK, func(t *testing.T, body map[string]interface{}) {
			assert.Equal(t, "Sentadilla frontal", body["item"].(map[string]interface{})["name"])
		}},
		{"invalid exercise", http.MethodPost, "/org/fitba/admin/exercises", gin.H{"name": "Remo"}, http.StatusBadRequest, nil},
		{"delete exercise", http.MethodDelete, "/org/fitba/admin/exercises/e1", nil, http.StatusOK, func(t *testing.T, body map[string]interface{}) {
			assert.Equal(t, "e1", body["removedId"])
		}},
		{"delete exercise fails and refetches", http.MethodDelete, "/org/fitba/admin/exercises/e2", nil, http.StatusBadGateway, func(t *testing.T, body map[string]interface{}) {
			state := body["state"].(map[string]interface{})
			assert.Equal(t, true, state["refetched"])
			assert.Equal(t, "e2", state["items"].([]interface{})[0].(map[string]interface{})["id"])
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(jsonRequest(tt.method, tt.path, tt.body), cookie)
			require.Equal(t, tt.status, w.Code, w.Body.String())
			if tt.check != nil {
				tt.check(t, decode(t, w))
			}
		})
	}
}

func TestTrainerUserPlanNormalizesLegacyPlan(t *testing.T) {
	f := setupFixture(t)
	cookie := f.signIn(t, types.RoleTrainer)

	f.workouts.On("AssignedUsers", mock.Anything, mock.Anything).Return([]types.AssignedUser{
		{User: types.User{ID: "u3", Name: "Eva", Profile: &types.UserProfile{TrainingDays: 4}}},
	}, nil)
	f.workouts.On("UserPlan", mock.Anything, mock.Anything, "u3").Return(&types.WorkoutPlan{
		ID:        "p1",
		UserID:    "u3",
		Exercises: json.RawMessage(`{"1":[{"name":"sentadilla","sets":"4","reps":8}]}`),
	}, nil)
	f.exercises.On("ListExercises", mock.Anything, mock.Anything).
		Return([]types.Exercise{{ID: "e1", Name: "Sentadilla", MuscleGroup: "Piernas"}}, nil)

	w := f.do(jsonRequest(http.MethodGet, "/org/fitba/trainer/users/u3", nil), cookie)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "p1", data["planId"])
	days := data["days"].([]interface{})
	require.Len(t, days, 4)
	first := days[0].(map[string]interface{})["exercises"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "e1", first["exerciseId"])
	assert.Equal(t, "Piernas", first["muscleGroup"])
	assert.EqualValues(t, 4, first["sets"])
	assert.Equal(t, "8", first["reps"])
}

func TestTrainerSavePlan(t *testing.T) {
	f := setupFixture(t)
	cookie := f.signIn(t, types.RoleTrainer)

	f.workouts.On("UpsertPlan", mock.Anything, mock.Anything, mock.MatchedBy(func(req *types.UpsertWorkoutPlanRequest) bool {
		return req.UserID == "u3" && len(req.Exercises) == 1 && req.Exercises[0].Exercises[0].Reps == "10-12"
	})).Return(&types.WorkoutPlan{ID: "p1", UserID: "u3"}, nil)

	w := f.do(jsonRequest(http.MethodPost, "/org/fitba/trainer/users/u3", gin.H{
		"exercises": []gin.H{{"day": 1, "exercises": []gin.H{{"exerciseId": "e1", "name": "Remo", "sets": 3, "reps": "10-12"}}}},
	}), cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "p1", decode(t, w)["plan"].(map[string]interface{})["id"])

	w = f.do(jsonRequest(http.MethodPost, "/org/fitba/trainer/users/u3", gin.H{}), cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	f.workouts.AssertNumberOfCalls(t, "UpsertPlan", 1)
}

func TestAdminSetStatusRefetchesUsers(t *testing.T) {
	f := setupFixture(t)
	cookie := f.signIn(t, types.RoleAdmin)
	f.users.On("SetStatus", mock.Anything, mock.Anything, "u2", false).Return(nil)
	f.users.On("ListUsers", mock.Anything, mock.Anything).
		Return([]types.User{{ID: "u2", Name: "Eva", IsActive: false}}, nil)

	w := f.do(jsonRequest(http.MethodPatch, "/org/fitba/admin/users/u2/status", gin.H{"isActive": false}), cookie)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, true, body["refetched"])
	assert.Equal(t, false, body["items"].([]interface{})[0].(map[string]interface{})["isActive"])

	w = f.do(jsonRequest(http.MethodPatch, "/org/fitba/admin/users/u2/status", gin.H{}), cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	f.users.AssertNumberOfCalls(t, "SetStatus", 1)
}

func dietPlan() *types.DietPlan {
	return &types.DietPlan{
		ID:            "d1",
		DailyCalories: 2000,
		Meals: []types.DietMeal{{
			ID: "m1", Name: "Desayuno", Day: 1, Order: 1,
			Foods: []types.DietFood{{ID: "df1", PortionGram: 100, Food: types.Food{ID: "f1", Name: "Avena", Calories: 389}}},
		}},
	}
}

func TestAdminDietEditing(t *testing.T) {
	f := setupFixture(t)
	cookie := f.signIn(t, types.RoleAdmin)

	f.diets.On("Generate", mock.Anything, mock.Anything, "u2").
		Return(&types.GenerateDietResponse{}, nil)
	f.diets.On("UserPlan", mock.Anything, mock.Anything, "u2").Return(dietPlan(), nil)
	f.diets.On("AddFood", mock.Anything, mock.Anything, "m1", mock.MatchedBy(func(req *types.AddDietFoodRequest) bool {
		return req.FoodID == "f1" && req.PortionGram == 150
	})).Return(nil)
	f.diets.On("RemoveFood", mock.Anything, mock.Anything, "df1").Return(nil)
	f.diets.On("RemoveFood", mock.Anything, mock.Anything, "df9").Return(backendDown)

	t.Run("generate loads the plan when the response has none", func(t *testing.T) {
		w := f.do(jsonRequest(http.MethodPost, "/org/fitba/admin/users/u2/diet", nil), cookie)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		body := decode(t, w)
		assert.Equal(t, "Plan de dieta generado", body["message"])
		assert.Equal(t, "d1", body["plan"].(map[string]interface{})["id"])
	})

	t.Run("add food", func(t *testing.T) {
		w := f.do(jsonRequest(http.MethodPost, "/org/fitba/admin/users/u2/diet/meals/m1/foods", gin.H{"foodId": "f1", "portionGram": 150}), cookie)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		body := decode(t, w)
		assert.Equal(t, "d1", body["plan"].(map[string]interface{})["id"])
		assert.NotNil(t, body["diet"])
	})

	t.Run("add food needs a portion", func(t *testing.T) {
		w := f.do(jsonRequest(http.MethodPost, "/org/fitba/admin/users/u2/diet/meals/m1/foods", gin.H{"foodId": "f1"}), cookie)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("remove food", func(t *testing.T) {
		w := f.do(jsonRequest(http.MethodDelete, "/org/fitba/admin/users/u2/diet/foods/df1", nil), cookie)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "d1", decode(t, w)["plan"].(map[string]interface{})["id"])
	})

	t.Run("remove food failure", func(t *testing.T) {
		w := f.do(jsonRequest(http.MethodDelete, "/org/fitba/admin/users/u2/diet/foods/df9", nil), cookie)
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, "Error interno", decode(t, w)["error"])
	})

	f.diets.AssertNumberOfCalls(t, "AddFood", 1)
}
