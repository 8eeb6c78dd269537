package viewmodel

import (
	"time"

	"github.com/pageza/vitality/web/internal/types"
)

// ProgressMonths is the length of the monthly progress window
const ProgressMonths = 6

var monthNames = [...]string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}

// MonthlyProgress shapes a sparse history into months consecutive months
// ending with the month of ref. Each month carries the latest measurement
// taken in it; months without one have HasData false and zero values.
func MonthlyProgress(history []types.Measurement, ref time.Time, months int) []types.MonthlyStats {
	if months <= 0 {
		months = ProgressMonths
	}

	type slot struct {
		year  int
		month time.Month
	}
	refMonth := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())

	latest := make(map[slot]types.Measurement, len(history))
	for _, m := range history {
		d := m.Date.In(ref.Location())
		key := slot{d.Year(), d.Month()}
		if prev, ok := latest[key]; !ok || m.Date.After(prev.Date) {
			latest[key] = m
		}
	}

	series := make([]types.MonthlyStats, 0, months)
	for i := months - 1; i >= 0; i-- {
		month := refMonth.AddDate(0, -i, 0)
		stats := types.MonthlyStats{Name: monthNames[month.Month()-1]}
		if m, ok := latest[slot{month.Year(), month.Month()}]; ok {
			stats.HasData = true
			stats.Weight = m.WeightKg
			if m.BodyFat != nil {
				stats.BodyFat = *m.BodyFat
			}
		}
		series = append(series, stats)
	}
	return series
}

// AnyData reports whether at least one month of the series has data
func AnyData(series []types.MonthlyStats) bool {
	for _, s := range series {
		if s.HasData {
			return true
		}
	}
	return false
}
