package preferences

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/jakechorley/duty-rota/internal/config"
	"github.com/jakechorley/duty-rota/pkg/core/scheduler"
)

// OverrideChange records how an override altered one date
type OverrideChange struct {
	Date   string
	From   scheduler.DayType
	To     scheduler.DayType
	Closed bool
}

// ApplyOverrides reclassifies or removes the table's dates matched by each
// override's rrule. Closing a date beats reclassifying it, and among
// reclassifications the last match wins. The table is modified in place.
func ApplyOverrides(table *Table, overrides []config.DayOverride) ([]OverrideChange, error) {
	if len(overrides) == 0 || len(table.Days) == 0 {
		return nil, nil
	}

	first, last, err := dateRange(table.Days)
	if err != nil {
		return nil, err
	}

	matches := make([]map[string]bool, len(overrides))
	types := make([]scheduler.DayType, len(overrides))
	for i, override := range overrides {
		if !override.Closed {
			types[i], err = scheduler.ParseDayType(override.DayType)
			if err != nil {
				return nil, fmt.Errorf("override %d: %w", i, err)
			}
		}

		rule, err := rrule.StrToRRule(override.RRule)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rrule for override %d: %w", i, err)
		}
		rule.DTStart(first)

		matches[i] = make(map[string]bool)
		for _, occurrence := range rule.Between(first, last, true) {
			matches[i][occurrence.Format(scheduler.DateLayout)] = true
		}
	}

	var changes []OverrideChange
	kept := table.Days[:0]
	for _, day := range table.Days {
		change := OverrideChange{Date: day.Date, From: day.Type, To: day.Type}
		matched := false

		for i, override := range overrides {
			if !matches[i][day.Date] {
				continue
			}
			matched = true
			if override.Closed {
				change.Closed = true
				continue
			}
			change.To = types[i]
		}

		if matched {
			changes = append(changes, change)
		}
		if change.Closed {
			continue
		}
		day.Type = change.To
		kept = append(kept, day)
	}
	table.Days = kept

	return changes, nil
}

func dateRange(days []scheduler.DayRecord) (time.Time, time.Time, error) {
	var first, last time.Time
	for _, day := range days {
		t, err := time.Parse(scheduler.DateLayout, day.Date)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid date %q: %w", day.Date, err)
		}
		if first.IsZero() || t.Before(first) {
			first = t
		}
		if t.After(last) {
			last = t
		}
	}
	return first, last, nil
}
