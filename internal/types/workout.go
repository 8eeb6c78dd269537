package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Exercise is a catalog entry
type Exercise struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	MuscleGroup string     `json:"muscleGroup"`
	BodyPart    string     `json:"bodyPart"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

// ExerciseRequest is the body of POST /exercises and PUT /exercises/:id
type ExerciseRequest struct {
	Name        string `json:"name" binding:"required"`
	MuscleGroup string `json:"muscleGroup" binding:"required"`
	BodyPart    string `json:"bodyPart" binding:"required"`
}

// WorkoutExercise is one prescribed exercise of a training day
type WorkoutExercise struct {
	ExerciseID  string `json:"exerciseId"`
	Name        string `json:"name"`
	Sets        int    `json:"sets"`
	Reps        Reps   `json:"reps"`
	Notes       string `json:"notes,omitempty"`
	MuscleGroup string `json:"muscleGroup"`
}

// DailyWorkout is the exercise list of one day of the week (1-7)
type DailyWorkout struct {
	Day       int               `json:"day"`
	Exercises []WorkoutExercise `json:"exercises"`
}

// WorkoutPlan is a trainer-authored plan. Exercises is kept raw because the
// backend stores it as free JSON in more than one historical shape.
type WorkoutPlan struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	TrainerID *string         `json:"trainerId,omitempty"`
	Exercises json.RawMessage `json:"exercises"`
	CreatedAt *time.Time      `json:"createdAt,omitempty"`
}

// UpsertWorkoutPlanRequest is the body of POST /trainer/workout-plan
type UpsertWorkoutPlanRequest struct {
	UserID    string         `json:"userId"`
	Exercises []DailyWorkout `json:"exercises"`
}

// Reps is a free-text repetition range such as "10-12". Numbers are accepted
// and kept in their decimal form.
type Reps string

func (r *Reps) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = ""
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*r = Reps(str)
		return nil
	}

	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*r = Reps(strconv.FormatFloat(num, 'f', -1, 64))
		return nil
	}

	return fmt.Errorf("invalid reps format")
}
