package viewmodel

import (
	"sort"

	"github.com/pageza/vitality/web/internal/types"
)

// DefaultCalorieTarget applies when a plan has no daily calorie goal
const DefaultCalorieTarget = 2000.0

// Macros is a calorie and macronutrient total
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

func (m *Macros) add(o Macros) {
	m.Calories += o.Calories
	m.Protein += o.Protein
	m.Carbs += o.Carbs
	m.Fat += o.Fat
}

// FoodMacros is what a portion of food contributes; facts are per 100 g
func FoodMacros(f types.DietFood) Macros {
	ratio := f.PortionGram / 100
	return Macros{
		Calories: f.Food.Calories * ratio,
		Protein:  f.Food.Protein * ratio,
		Carbs:    f.Food.Carbs * ratio,
		Fat:      f.Food.Fat * ratio,
	}
}

// FoodLine is one food of a meal with its contribution
type FoodLine struct {
	DietFoodID  string  `json:"dietFoodId"`
	FoodID      string  `json:"foodId"`
	Name        string  `json:"name"`
	PortionGram float64 `json:"portionGram"`
	Macros      Macros  `json:"macros"`
}

// MealSummary is a meal with its per-food lines and subtotal
type MealSummary struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Order    int        `json:"order"`
	Foods    []FoodLine `json:"foods"`
	Subtotal Macros     `json:"subtotal"`
}

// DaySummary is the derived nutrition view of one plan day
type DaySummary struct {
	Day      int           `json:"day"`
	Meals    []MealSummary `json:"meals"`
	Totals   Macros        `json:"totals"`
	Target   float64       `json:"target"`
	Progress float64       `json:"progress"`
	Percent  float64       `json:"percent"`
	Exceeded bool          `json:"exceeded"`
}

// CalorieTarget returns the plan's daily goal or the default
func CalorieTarget(plan *types.DietPlan) float64 {
	if plan == nil || plan.DailyCalories <= 0 {
		return DefaultCalorieTarget
	}
	return plan.DailyCalories
}

// SummarizeDay aggregates the foods of every meal on day. Progress is
// total/target clamped to 1; Exceeded is set whenever total > target.
func SummarizeDay(plan *types.DietPlan, day int) DaySummary {
	summary := DaySummary{Day: day, Target: CalorieTarget(plan), Meals: []MealSummary{}}
	if plan == nil {
		return summary
	}

	for _, meal := range plan.Meals {
		if meal.Day != day {
			continue
		}
		ms := MealSummary{ID: meal.ID, Name: meal.Name, Order: meal.Order, Foods: make([]FoodLine, 0, len(meal.Foods))}
		for _, f := range meal.Foods {
			m := FoodMacros(f)
			ms.Foods = append(ms.Foods, FoodLine{
				DietFoodID:  f.ID,
				FoodID:      f.Food.ID,
				Name:        f.Food.Name,
				PortionGram: f.PortionGram,
				Macros:      m,
			})
			ms.Subtotal.add(m)
		}
		summary.Totals.add(ms.Subtotal)
		summary.Meals = append(summary.Meals, ms)
	}

	sort.SliceStable(summary.Meals, func(i, j int) bool {
		return summary.Meals[i].Order < summary.Meals[j].Order
	})

	summary.Progress = summary.Totals.Calories / summary.Target
	if summary.Progress > 1 {
		summary.Progress = 1
	}
	summary.Percent = summary.Progress * 100
	summary.Exceeded = summary.Totals.Calories > summary.Target
	return summary
}

// PlanDays returns the days 1..7 of a weekly plan
func PlanDays() []int {
	return []int{1, 2, 3, 4, 5, 6, 7}
}

// ClampDay keeps a requested day inside the week, defaulting to day 1
func ClampDay(day int) int {
	if day < 1 || day > 7 {
		return 1
	}
	return day
}
