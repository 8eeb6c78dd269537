package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Goal is the training goal attached to a measurement
type Goal string

const (
	GoalBulk     Goal = "VOLUMEN"
	GoalCut      Goal = "DEFINICION"
	GoalMaintain Goal = "MANTENIMIENTO"
)

// goalOrdinals maps the legacy numeric encoding to the enum
var goalOrdinals = []Goal{GoalBulk, GoalCut, GoalMaintain}

// Label returns the display label of the goal
func (g Goal) Label() string {
	switch g {
	case GoalBulk:
		return "Volumen"
	case GoalCut:
		return "Definición"
	case GoalMaintain:
		return "Mantenimiento"
	default:
		return "Sin objetivo"
	}
}

// UnmarshalJSON accepts either the enum name or its legacy ordinal (0, 1, 2).
func (g *Goal) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*g = ""
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*g = Goal(strings.ToUpper(strings.TrimSpace(str)))
		return nil
	}

	var ord int
	if err := json.Unmarshal(data, &ord); err == nil {
		if ord < 0 || ord >= len(goalOrdinals) {
			return fmt.Errorf("unknown goal ordinal %d", ord)
		}
		*g = goalOrdinals[ord]
		return nil
	}

	return fmt.Errorf("invalid goal format")
}

// Measurement is one body-measurement record with the derived energy figures
type Measurement struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	WeightKg       float64   `json:"weightKg"`
	HeightCm       float64   `json:"heightCm"`
	Neck           float64   `json:"neck"`
	Chest          float64   `json:"chest"`
	Arm            float64   `json:"arm"`
	Waist          float64   `json:"waist"`
	Hips           float64   `json:"hips"`
	Glute          float64   `json:"glute"`
	Leg            float64   `json:"leg"`
	BodyFat        *float64  `json:"bodyFat,omitempty"`
	BMR            *float64  `json:"bmr,omitempty"`
	TDEE           *float64  `json:"tdee,omitempty"`
	TargetCalories *float64  `json:"targetCalories,omitempty"`
	Goal           Goal      `json:"goal"`
	Date           time.Time `json:"date"`
}

// MeasurementRequest is the body of POST /measurements
type MeasurementRequest struct {
	WeightKg     float64 `json:"weightKg" form:"weightKg" binding:"required,gt=0"`
	HeightCm     float64 `json:"heightCm" form:"heightCm" binding:"required,gt=0"`
	Waist        float64 `json:"waist" form:"waist" binding:"gte=0"`
	Hips         float64 `json:"hips" form:"hips" binding:"gte=0"`
	Chest        float64 `json:"chest" form:"chest" binding:"gte=0"`
	Arm          float64 `json:"arm" form:"arm" binding:"gte=0"`
	Leg          float64 `json:"leg" form:"leg" binding:"gte=0"`
	Neck         float64 `json:"neck" form:"neck" binding:"gte=0"`
	Glute        float64 `json:"glute" form:"glute" binding:"gte=0"`
	Goal         Goal    `json:"goal" form:"goal" binding:"required,oneof=VOLUMEN DEFINICION MANTENIMIENTO"`
	Age          int     `json:"age" form:"age" binding:"gte=0"`
	Gender       string  `json:"gender" form:"gender"`
	TrainingDays int     `json:"trainingDays" form:"trainingDays" binding:"gte=0,lte=7"`
	UserID       string  `json:"userId,omitempty"`
}

// MonthlyStats is one point of the monthly progress series. HasData is false
// for months without a measurement; their zero values must not be plotted.
type MonthlyStats struct {
	Name    string  `json:"name"`
	Weight  float64 `json:"weight"`
	BodyFat float64 `json:"bodyFat"`
	HasData bool    `json:"hasData"`
}
