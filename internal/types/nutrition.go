package types

import "time"

// Food is a catalog entry; nutrition facts are per 100 g
type Food struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
	Category    string  `json:"category,omitempty"`
	Description string  `json:"description,omitempty"`
}

// FoodRequest is the body of POST /foods and PUT /foods/:id
type FoodRequest struct {
	Name        string  `json:"name" binding:"required"`
	Calories    float64 `json:"calories" binding:"gte=0"`
	Protein     float64 `json:"protein" binding:"gte=0"`
	Carbs       float64 `json:"carbs" binding:"gte=0"`
	Fat         float64 `json:"fat" binding:"gte=0"`
	Category    string  `json:"category,omitempty"`
	Description string  `json:"description,omitempty"`
}

// DietFood is a portion of a catalog food inside a meal
type DietFood struct {
	ID          string  `json:"id"`
	PortionGram float64 `json:"portionGram"`
	Food        Food    `json:"food"`
}

// DietMeal groups the foods eaten at one meal of one plan day
type DietMeal struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Day   int        `json:"day"`
	Order int        `json:"order"`
	Foods []DietFood `json:"foods"`
}

// DietPlan is a member's weekly nutrition plan
type DietPlan struct {
	ID                string     `json:"id"`
	DailyCalories     float64    `json:"dailyCalories"`
	ProteinGrams      float64    `json:"proteinGrams"`
	CarbohydrateGrams float64    `json:"carbohydrateGrams"`
	FatGrams          float64    `json:"fatGrams"`
	Meals             []DietMeal `json:"meals"`
	CreatedAt         *time.Time `json:"createdAt,omitempty"`
}

// GenerateDietRequest is the body of POST /diet. An empty UserID targets the caller.
type GenerateDietRequest struct {
	UserID string `json:"userId,omitempty"`
}

// GenerateDietResponse is returned by POST /diet when acting on another user
type GenerateDietResponse struct {
	Message string    `json:"message"`
	Plan    *DietPlan `json:"plan"`
}

// AddDietFoodRequest is the body of POST /diet/:mealId/food
type AddDietFoodRequest struct {
	FoodID      string  `json:"foodId" binding:"required"`
	PortionGram float64 `json:"portionGram" binding:"required,gt=0"`
}
