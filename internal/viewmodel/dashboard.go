package viewmodel

import (
	"math"
	"sort"

	"github.com/pageza/vitality/web/internal/types"
)

// DashboardStats are the headline figures of the member dashboard
type DashboardStats struct {
	BodyFat          *float64 `json:"bodyFat"`
	BMR              int      `json:"bmr"`
	TDEE             int      `json:"tdee"`
	TargetCalories   int      `json:"targetCalories"`
	TargetFromLatest bool     `json:"targetFromLatest"`
}

// NewestFirst sorts a measurement history newest-first in place
func NewestFirst(history []types.Measurement) []types.Measurement {
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Date.After(history[j].Date)
	})
	return history
}

// Stats derives the dashboard figures from the newest measurement, taking
// the calorie target from the diet plan when the measurement has none.
func Stats(latest *types.Measurement, plan *types.DietPlan) DashboardStats {
	var stats DashboardStats
	if latest != nil {
		stats.BodyFat = latest.BodyFat
		stats.BMR = roundPtr(latest.BMR)
		stats.TDEE = roundPtr(latest.TDEE)
		if latest.TargetCalories != nil && *latest.TargetCalories != 0 {
			stats.TargetCalories = roundPtr(latest.TargetCalories)
			stats.TargetFromLatest = true
			return stats
		}
	}
	if plan != nil {
		stats.TargetCalories = int(math.Round(plan.DailyCalories))
	}
	return stats
}

func roundPtr(v *float64) int {
	if v == nil {
		return 0
	}
	return int(math.Round(*v))
}
