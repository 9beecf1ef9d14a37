package db

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/jakechorley/duty-rota/pkg/core/scheduler"
)

// NewScheduledDays converts schedule entries into rows of the given period
func NewScheduledDays(periodID string, entries []scheduler.Entry) []ScheduledDay {
	days := make([]ScheduledDay, 0, len(entries))
	for _, e := range entries {
		days = append(days, ScheduledDay{
			ID:             uuid.New().String(),
			PeriodID:       periodID,
			Date:           e.Date,
			DayType:        e.Type.String(),
			Primary:        string(e.Primary),
			Secondary:      string(e.Secondary),
			PrimaryLevel:   int(e.PrimaryLevel),
			SecondaryLevel: int(e.SecondaryLevel),
		})
	}
	return days
}

// ToEntries converts stored rows back into schedule entries ordered by date
func ToEntries(days []ScheduledDay) ([]scheduler.Entry, error) {
	entries := make([]scheduler.Entry, 0, len(days))
	for _, d := range days {
		dayType, err := scheduler.ParseDayType(d.DayType)
		if err != nil {
			return nil, fmt.Errorf("scheduled day %s: %w", d.Date, err)
		}
		entries = append(entries, scheduler.Entry{
			Date: d.Date,
			Type: dayType,
			Assignment: scheduler.Assignment{
				Primary:        scheduler.UserID(d.Primary),
				Secondary:      scheduler.UserID(d.Secondary),
				PrimaryLevel:   scheduler.PreferenceLevel(d.PrimaryLevel),
				SecondaryLevel: scheduler.PreferenceLevel(d.SecondaryLevel),
			},
		})
	}

	slices.SortStableFunc(entries, func(a, b scheduler.Entry) int {
		return strings.Compare(a.Date, b.Date)
	})
	return entries, nil
}

// LatestPeriod returns the period with the latest start date, or nil
func LatestPeriod(periods []Period) *Period {
	if len(periods) == 0 {
		return nil
	}
	latest := slices.MaxFunc(periods, func(a, b Period) int {
		if c := strings.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return strings.Compare(a.CreatedAt, b.CreatedAt)
	})
	return &latest
}

// FindPeriod returns the period with the given ID, or the latest period when id is empty
func FindPeriod(periods []Period, id string) (*Period, error) {
	if id == "" {
		latest := LatestPeriod(periods)
		if latest == nil {
			return nil, fmt.Errorf("no periods found")
		}
		return latest, nil
	}
	for _, p := range periods {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("period %s not found", id)
}

// PreviousPeriod returns the latest period starting before p, or nil
func PreviousPeriod(periods []Period, p *Period) *Period {
	var earlier []Period
	for _, candidate := range periods {
		if candidate.ID != p.ID && candidate.Start < p.Start {
			earlier = append(earlier, candidate)
		}
	}
	return LatestPeriod(earlier)
}
