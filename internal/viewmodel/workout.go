package viewmodel

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/pageza/vitality/web/internal/types"
)

// Defaults for exercises recovered from the legacy day-keyed format
const (
	DefaultSets        = 3
	DefaultReps        = "10-12"
	UnknownExercise    = "Ejercicio Desconocido"
	MinimumWorkoutDays = 3
	MaximumWorkoutDays = 7
)

// legacyExercise is an entry of the day-keyed format. Sets may be a number
// or a string.
type legacyExercise struct {
	Name  string          `json:"name"`
	Sets  json.RawMessage `json:"sets"`
	Reps  types.Reps      `json:"reps"`
	Notes string          `json:"notes"`
}

// NormalizeWorkout decodes a stored exercises payload into days sorted by
// day number. The payload may be an array of days, an object keyed by day
// number, or a JSON string holding either. Days are appended after the last
// one until there are max(len, trainingDays, 3), never more than 7. Catalog
// entries fill in the id and muscle group of legacy exercises matched by name.
func NormalizeWorkout(raw json.RawMessage, trainingDays int, catalog []types.Exercise) []types.DailyWorkout {
	days := decodeDays(raw, catalog)

	sort.SliceStable(days, func(i, j int) bool { return days[i].Day < days[j].Day })

	target := len(days)
	if trainingDays > target {
		target = trainingDays
	}
	if target > MaximumWorkoutDays {
		target = MaximumWorkoutDays
	}
	if target < MinimumWorkoutDays {
		target = MinimumWorkoutDays
	}

	next := 1
	if len(days) > 0 {
		next = days[len(days)-1].Day + 1
	}
	for len(days) < target {
		days = append(days, types.DailyWorkout{Day: next, Exercises: []types.WorkoutExercise{}})
		next++
	}
	return days
}

func decodeDays(raw json.RawMessage, catalog []types.Exercise) []types.DailyWorkout {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	// A JSON string wraps one of the other two shapes.
	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil
		}
		return decodeDays(json.RawMessage(inner), catalog)
	}

	switch raw[0] {
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(raw, &elems); err != nil {
			return nil
		}
		days := make([]types.DailyWorkout, 0, len(elems))
		for i, elem := range elems {
			if day, ok := decodeDay(elem, i+1); ok {
				days = append(days, day)
			}
		}
		return days
	case '{':
		var legacy map[string]json.RawMessage
		if err := json.Unmarshal(raw, &legacy); err != nil {
			return nil
		}
		return decodeLegacy(legacy, catalog)
	}
	return nil
}

// looseDay is an element of the array format. Elements are decoded one at a
// time so a single bad entry does not hide the rest of the plan.
type looseDay struct {
	Day       json.RawMessage   `json:"day"`
	Exercises []json.RawMessage `json:"exercises"`
}

type looseExercise struct {
	ExerciseID  string          `json:"exerciseId"`
	Name        string          `json:"name"`
	Sets        json.RawMessage `json:"sets"`
	Reps        json.RawMessage `json:"reps"`
	Notes       string          `json:"notes"`
	MuscleGroup string          `json:"muscleGroup"`
}

func decodeDay(raw json.RawMessage, position int) (types.DailyWorkout, bool) {
	var d looseDay
	if err := json.Unmarshal(raw, &d); err != nil {
		return types.DailyWorkout{}, false
	}
	day := types.DailyWorkout{Day: looseInt(d.Day, position), Exercises: []types.WorkoutExercise{}}
	if day.Day > MaximumWorkoutDays {
		return types.DailyWorkout{}, false
	}
	for _, elem := range d.Exercises {
		var e looseExercise
		if err := json.Unmarshal(elem, &e); err != nil {
			continue
		}
		var reps types.Reps
		if len(e.Reps) > 0 && json.Unmarshal(e.Reps, &reps) != nil {
			reps = ""
		}
		day.Exercises = append(day.Exercises, types.WorkoutExercise{
			ExerciseID:  e.ExerciseID,
			Name:        e.Name,
			Sets:        looseInt(e.Sets, 0),
			Reps:        reps,
			Notes:       e.Notes,
			MuscleGroup: e.MuscleGroup,
		})
	}
	return day, true
}

// decodeLegacy fills days 1..maxKey, with maxKey capped at 7; a map without
// numeric keys yields three empty days.
func decodeLegacy(legacy map[string]json.RawMessage, catalog []types.Exercise) []types.DailyWorkout {
	maxKey := 0
	for key := range legacy {
		if n, err := strconv.Atoi(key); err == nil && n > maxKey {
			maxKey = n
		}
	}
	if maxKey > MaximumWorkoutDays {
		maxKey = MaximumWorkoutDays
	}
	if maxKey == 0 {
		maxKey = MinimumWorkoutDays
	}

	byName := make(map[string]types.Exercise, len(catalog))
	for _, ex := range catalog {
		byName[strings.ToLower(ex.Name)] = ex
	}

	days := make([]types.DailyWorkout, 0, maxKey)
	for day := 1; day <= maxKey; day++ {
		var entries []legacyExercise
		if data, ok := legacy[strconv.Itoa(day)]; ok {
			// Anything but a list counts as an empty day.
			_ = json.Unmarshal(data, &entries)
		}

		exercises := make([]types.WorkoutExercise, 0, len(entries))
		for _, e := range entries {
			match := byName[strings.ToLower(e.Name)]
			ex := types.WorkoutExercise{
				ExerciseID:  match.ID,
				Name:        e.Name,
				Sets:        looseInt(e.Sets, DefaultSets),
				Reps:        e.Reps,
				Notes:       e.Notes,
				MuscleGroup: match.MuscleGroup,
			}
			if ex.Name == "" {
				ex.Name = UnknownExercise
			}
			if ex.Reps == "" {
				ex.Reps = DefaultReps
			}
			exercises = append(exercises, ex)
		}
		days = append(days, types.DailyWorkout{Day: day, Exercises: exercises})
	}
	return days
}

// looseInt reads a positive number or numeric string, else def
func looseInt(raw json.RawMessage, def int) int {
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil && n > 0 {
		return int(n)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && v > 0 {
			return v
		}
	}
	return def
}

// LatestPlan picks the newest plan of a list, as returned by GET /workout
func LatestPlan(plans []types.WorkoutPlan) *types.WorkoutPlan {
	if len(plans) == 0 {
		return nil
	}
	latest := &plans[0]
	for i := range plans[1:] {
		p := &plans[i+1]
		if p.CreatedAt != nil && (latest.CreatedAt == nil || p.CreatedAt.After(*latest.CreatedAt)) {
			latest = p
		}
	}
	return latest
}
