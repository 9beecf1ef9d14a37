package report

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/jakechorley/duty-rota/pkg/core/scheduler"
)

// Spread summarises how evenly duties are shared
type Spread struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Range is the gap between the busiest and the least busy caretaker
func (s Spread) Range() float64 {
	return s.Max - s.Min
}

// FairnessStats is the spread of per-user totals and of each day type
type FairnessStats struct {
	Total  Spread
	ByType map[scheduler.DayType]Spread
}

// Fairness computes the spread of the loads. StdDev is the sample standard
// deviation and is zero for fewer than two users.
func Fairness(loads []UserLoad) FairnessStats {
	stats := FairnessStats{ByType: make(map[scheduler.DayType]Spread, len(scheduler.DayTypeOrder))}
	if len(loads) == 0 {
		return stats
	}

	totals := make([]float64, len(loads))
	for i, load := range loads {
		totals[i] = float64(load.Total)
	}
	stats.Total = spread(totals)

	for _, dayType := range scheduler.DayTypeOrder {
		values := make([]float64, len(loads))
		for i, load := range loads {
			values[i] = float64(load.Counts[dayType])
		}
		stats.ByType[dayType] = spread(values)
	}

	return stats
}

func spread(values []float64) Spread {
	s := Spread{Min: floats.Min(values), Max: floats.Max(values)}
	if len(values) < 2 {
		s.Mean = values[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(values, nil)
	return s
}
